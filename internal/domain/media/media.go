package media

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/pkg/validators"
)

// Upload purposes
const (
	PurposeQuestionImage = "question_image"
	PurposePaymentProof  = "payment_proof"
	PurposeAvatar        = "avatar"
)

var allowedTypes = map[string][]string{
	PurposeQuestionImage: {"image/png", "image/jpeg", "image/webp"},
	PurposeAvatar:        {"image/png", "image/jpeg", "image/webp"},
	PurposePaymentProof:  {"image/png", "image/jpeg", "image/webp", "application/pdf"},
}

// Media is the metadata of an uploaded file
type Media struct {
	ID              string    `json:"id" validate:"required,uuid4"`
	OwnerID         string    `json:"owner_id" validate:"required,uuid4"`
	Name            string    `json:"name" validate:"required,min=1,max=255"`
	ContentType     string    `json:"content_type" validate:"required,max=100"`
	Size            int64     `json:"size" validate:"required,min=1"`
	Purpose         string    `json:"purpose" validate:"required,oneof=question_image payment_proof avatar"`
	DateTimeCreated time.Time `json:"date_time_created" validate:"required"`
}

// NewMedia builds metadata for an upload. The name is reduced to its base.
func NewMedia(ownerID, purpose, name, contentType string, size int64, now time.Time) *Media {
	return &Media{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		Name:            path.Base(strings.ReplaceAll(name, "\\", "/")),
		ContentType:     strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])),
		Size:            size,
		Purpose:         purpose,
		DateTimeCreated: now,
	}
}

// Validate checks fields and that the content type suits the purpose
func (m *Media) Validate() error {
	if err := validators.Struct(m); err != nil {
		return err
	}
	for _, t := range allowedTypes[m.Purpose] {
		if t == m.ContentType {
			return nil
		}
	}
	return validators.Field("content_type", "content type "+m.ContentType+" is not allowed for "+m.Purpose)
}

// ObjectName is the key used in the object store
func (m *Media) ObjectName() string {
	return m.ID + "/" + m.Name
}

// VisibleTo reports whether the actor may read the file without further
// checks: owners, admins and anyone for avatars. Question images also
// open up to users with access to a package that shows them.
func (m *Media) VisibleTo(actor users.Actor) bool {
	return m.OwnerID == actor.UserID || actor.IsAdmin() || m.Purpose == PurposeAvatar
}
