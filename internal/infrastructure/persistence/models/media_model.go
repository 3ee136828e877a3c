package models

import (
	"time"

	"github.com/turrs/bank-skd/internal/domain/media"
)

// MediaModel is the GORM database model for uploaded file metadata
type MediaModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	OwnerID         string    `gorm:"not null;index;type:uuid"`
	Name            string    `gorm:"not null;type:varchar(255)"`
	ContentType     string    `gorm:"not null;type:varchar(100)"`
	Size            int64     `gorm:"not null"`
	Purpose         string    `gorm:"not null;type:varchar(20)"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (MediaModel) TableName() string {
	return "media"
}

// ToDomain converts GORM model to domain entity
func (m *MediaModel) ToDomain() *media.Media {
	return &media.Media{
		ID:              m.ID,
		OwnerID:         m.OwnerID,
		Name:            m.Name,
		ContentType:     m.ContentType,
		Size:            m.Size,
		Purpose:         m.Purpose,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *MediaModel) FromDomain(md *media.Media) {
	m.ID = md.ID
	m.OwnerID = md.OwnerID
	m.Name = md.Name
	m.ContentType = md.ContentType
	m.Size = md.Size
	m.Purpose = md.Purpose
	m.DateTimeCreated = md.DateTimeCreated
}
