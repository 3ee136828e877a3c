package models

import (
	"time"

	"github.com/turrs/bank-skd/internal/domain/tryout"
)

// TryoutSessionModel is the GORM database model for tryout sessions. A user
// holds at most one in_progress session per package.
type TryoutSessionModel struct {
	ID            string    `gorm:"primaryKey;type:uuid"`
	UserID        string    `gorm:"not null;index:idx_sessions_user_package,priority:1;uniqueIndex:idx_sessions_open,priority:1,where:status = 'in_progress';type:uuid"`
	PackageID     string    `gorm:"not null;index:idx_sessions_user_package,priority:2;uniqueIndex:idx_sessions_open,priority:2,where:status = 'in_progress';type:uuid"`
	Status        string    `gorm:"not null;index:idx_sessions_status_ends,priority:1;type:varchar(20)"`
	StartedAt     time.Time `gorm:"not null"`
	EndsAt        time.Time `gorm:"not null;index:idx_sessions_status_ends,priority:2"`
	CompletedAt   *time.Time
	CurrentIndex  int  `gorm:"not null;default:0"`
	ScoreTWK      int  `gorm:"column:score_twk;not null;default:0"`
	ScoreTIU      int  `gorm:"column:score_tiu;not null;default:0"`
	ScoreTKP      int  `gorm:"column:score_tkp;not null;default:0"`
	TotalScore    int  `gorm:"not null;default:0"`
	Passed        bool `gorm:"not null;default:false"`
	AutoSubmitted bool `gorm:"not null;default:false"`
}

// TableName specifies the table name for GORM
func (TryoutSessionModel) TableName() string {
	return "tryout_sessions"
}

// ToDomain converts GORM model to domain entity
func (m *TryoutSessionModel) ToDomain() *tryout.Session {
	return &tryout.Session{
		ID:            m.ID,
		UserID:        m.UserID,
		PackageID:     m.PackageID,
		Status:        m.Status,
		StartedAt:     m.StartedAt,
		EndsAt:        m.EndsAt,
		CompletedAt:   m.CompletedAt,
		CurrentIndex:  m.CurrentIndex,
		ScoreTWK:      m.ScoreTWK,
		ScoreTIU:      m.ScoreTIU,
		ScoreTKP:      m.ScoreTKP,
		TotalScore:    m.TotalScore,
		Passed:        m.Passed,
		AutoSubmitted: m.AutoSubmitted,
	}
}

// FromDomain converts domain entity to GORM model
func (m *TryoutSessionModel) FromDomain(s *tryout.Session) {
	m.ID = s.ID
	m.UserID = s.UserID
	m.PackageID = s.PackageID
	m.Status = s.Status
	m.StartedAt = s.StartedAt
	m.EndsAt = s.EndsAt
	m.CompletedAt = s.CompletedAt
	m.CurrentIndex = s.CurrentIndex
	m.ScoreTWK = s.ScoreTWK
	m.ScoreTIU = s.ScoreTIU
	m.ScoreTKP = s.ScoreTKP
	m.TotalScore = s.TotalScore
	m.Passed = s.Passed
	m.AutoSubmitted = s.AutoSubmitted
}

// UserAnswerModel is the GORM database model for saved answers
type UserAnswerModel struct {
	ID             string    `gorm:"primaryKey;type:uuid"`
	SessionID      string    `gorm:"not null;uniqueIndex:idx_answers_session_question,priority:1;type:uuid"`
	QuestionID     string    `gorm:"not null;uniqueIndex:idx_answers_session_question,priority:2;type:uuid"`
	SelectedOption string    `gorm:"type:varchar(1)"`
	Flagged        bool      `gorm:"not null;default:false"`
	Score          int       `gorm:"not null;default:0"`
	IsCorrect      bool      `gorm:"not null;default:false"`
	AnsweredAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserAnswerModel) TableName() string {
	return "user_answers"
}

// ToDomain converts GORM model to domain entity
func (m *UserAnswerModel) ToDomain() *tryout.Answer {
	return &tryout.Answer{
		ID:             m.ID,
		SessionID:      m.SessionID,
		QuestionID:     m.QuestionID,
		SelectedOption: m.SelectedOption,
		Flagged:        m.Flagged,
		Score:          m.Score,
		IsCorrect:      m.IsCorrect,
		AnsweredAt:     m.AnsweredAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserAnswerModel) FromDomain(a *tryout.Answer) {
	m.ID = a.ID
	m.SessionID = a.SessionID
	m.QuestionID = a.QuestionID
	m.SelectedOption = a.SelectedOption
	m.Flagged = a.Flagged
	m.Score = a.Score
	m.IsCorrect = a.IsCorrect
	m.AnsweredAt = a.AnsweredAt
}

// QuestionTagStatModel is the GORM database model for per tag performance
type QuestionTagStatModel struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	UserID     string    `gorm:"not null;uniqueIndex:idx_tag_stats_user_tag,priority:1;type:uuid"`
	Category   string    `gorm:"not null;uniqueIndex:idx_tag_stats_user_tag,priority:2;type:varchar(3)"`
	Tag        string    `gorm:"not null;uniqueIndex:idx_tag_stats_user_tag,priority:3;type:varchar(100)"`
	Attempts   int       `gorm:"not null;default:0"`
	Correct    int       `gorm:"not null;default:0"`
	TotalScore int       `gorm:"not null;default:0"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (QuestionTagStatModel) TableName() string {
	return "question_tag_stats"
}

// ToDomain converts GORM model to domain entity
func (m *QuestionTagStatModel) ToDomain() *tryout.TagStat {
	return &tryout.TagStat{
		UserID:     m.UserID,
		Category:   m.Category,
		Tag:        m.Tag,
		Attempts:   m.Attempts,
		Correct:    m.Correct,
		TotalScore: m.TotalScore,
		UpdatedAt:  m.UpdatedAt,
	}
}
