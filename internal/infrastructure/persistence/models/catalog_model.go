package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/turrs/bank-skd/internal/domain/catalog"
)

// PackageModel is the GORM database model for question packages
type PackageModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	Title           string    `gorm:"not null;type:varchar(200)"`
	Description     string    `gorm:"type:text"`
	Price           int64     `gorm:"not null;default:0"`
	DurationMinutes int       `gorm:"not null"`
	IsActive        bool      `gorm:"not null;default:true;index"`
	MaxAttempts     int       `gorm:"not null;default:0"`
	PassingTWK      int       `gorm:"column:passing_twk;not null"`
	PassingTIU      int       `gorm:"column:passing_tiu;not null"`
	PassingTKP      int       `gorm:"column:passing_tkp;not null"`
	CreatedBy       string    `gorm:"not null;index;type:uuid"`
	DateTimeCreated time.Time `gorm:"not null"`

	QuestionCount int64 `gorm:"->;-:migration"`
}

// TableName specifies the table name for GORM
func (PackageModel) TableName() string {
	return "question_packages"
}

// ToDomain converts GORM model to domain entity
func (m *PackageModel) ToDomain() *catalog.Package {
	return &catalog.Package{
		ID:              m.ID,
		Title:           m.Title,
		Description:     m.Description,
		Price:           m.Price,
		DurationMinutes: m.DurationMinutes,
		IsActive:        m.IsActive,
		MaxAttempts:     m.MaxAttempts,
		PassingTWK:      m.PassingTWK,
		PassingTIU:      m.PassingTIU,
		PassingTKP:      m.PassingTKP,
		CreatedBy:       m.CreatedBy,
		DateTimeCreated: m.DateTimeCreated,
		QuestionCount:   m.QuestionCount,
	}
}

// FromDomain converts domain entity to GORM model
func (m *PackageModel) FromDomain(p *catalog.Package) {
	m.ID = p.ID
	m.Title = p.Title
	m.Description = p.Description
	m.Price = p.Price
	m.DurationMinutes = p.DurationMinutes
	m.IsActive = p.IsActive
	m.MaxAttempts = p.MaxAttempts
	m.PassingTWK = p.PassingTWK
	m.PassingTIU = p.PassingTIU
	m.PassingTKP = p.PassingTKP
	m.CreatedBy = p.CreatedBy
	m.DateTimeCreated = p.DateTimeCreated
}

// QuestionModel is the GORM database model for questions. Options are kept
// as one JSON column since they are always read and written with the question.
type QuestionModel struct {
	ID            string                               `gorm:"primaryKey;type:uuid"`
	PackageID     string                               `gorm:"not null;index:idx_questions_package_position,priority:1;type:uuid"`
	Category      string                               `gorm:"not null;type:varchar(3)"`
	Tag           string                               `gorm:"type:varchar(100)"`
	Content       string                               `gorm:"not null;type:text"`
	ImageMediaID  *string                              `gorm:"type:uuid"`
	Options       datatypes.JSONType[[]catalog.Option] `gorm:"not null"`
	CorrectOption string                               `gorm:"type:varchar(1)"`
	Explanation   string                               `gorm:"type:text"`
	Position      int                                  `gorm:"not null;index:idx_questions_package_position,priority:2"`
}

// TableName specifies the table name for GORM
func (QuestionModel) TableName() string {
	return "questions"
}

// ToDomain converts GORM model to domain entity
func (m *QuestionModel) ToDomain() *catalog.Question {
	return &catalog.Question{
		ID:            m.ID,
		PackageID:     m.PackageID,
		Category:      m.Category,
		Tag:           m.Tag,
		Content:       m.Content,
		ImageMediaID:  m.ImageMediaID,
		Options:       m.Options.Data(),
		CorrectOption: m.CorrectOption,
		Explanation:   m.Explanation,
		Position:      m.Position,
	}
}

// FromDomain converts domain entity to GORM model
func (m *QuestionModel) FromDomain(q *catalog.Question) {
	m.ID = q.ID
	m.PackageID = q.PackageID
	m.Category = q.Category
	m.Tag = q.Tag
	m.Content = q.Content
	m.ImageMediaID = q.ImageMediaID
	m.Options = datatypes.NewJSONType(q.Options)
	m.CorrectOption = q.CorrectOption
	m.Explanation = q.Explanation
	m.Position = q.Position
}
