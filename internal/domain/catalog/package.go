package catalog

import (
	"time"

	"github.com/turrs/bank-skd/internal/pkg/validators"
)

// SKD categories
const (
	CategoryTWK = "TWK"
	CategoryTIU = "TIU"
	CategoryTKP = "TKP"
)

// Categories in display order
var Categories = []string{CategoryTWK, CategoryTIU, CategoryTKP}

// Default passing thresholds of the national SKD
const (
	DefaultPassingTWK = 65
	DefaultPassingTIU = 80
	DefaultPassingTKP = 166
)

// Package is a purchasable set of questions taken as one timed tryout
type Package struct {
	ID              string    `json:"id" validate:"required,uuid4"`
	Title           string    `json:"title" validate:"required,min=3,max=200"`
	Description     string    `json:"description" validate:"max=2000"`
	Price           int64     `json:"price" validate:"gte=0"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,min=1,max=600"`
	IsActive        bool      `json:"is_active"`
	MaxAttempts     int       `json:"max_attempts" validate:"gte=0"`
	PassingTWK      int       `json:"passing_twk" validate:"gte=0"`
	PassingTIU      int       `json:"passing_tiu" validate:"gte=0"`
	PassingTKP      int       `json:"passing_tkp" validate:"gte=0"`
	CreatedBy       string    `json:"created_by" validate:"required,uuid4"`
	DateTimeCreated time.Time `json:"date_time_created" validate:"required"`

	// QuestionCount is filled on reads only.
	QuestionCount int64 `json:"question_count"`
}

// Validate for validating Package struct
func (p *Package) Validate() error {
	return validators.Struct(p)
}

// IsFree reports whether the package can be taken without purchase
func (p *Package) IsFree() bool {
	return p.Price == 0
}

// Duration is the time allowed for one attempt
func (p *Package) Duration() time.Duration {
	return time.Duration(p.DurationMinutes) * time.Minute
}

// Threshold returns the passing score for category
func (p *Package) Threshold(category string) int {
	switch category {
	case CategoryTWK:
		return p.PassingTWK
	case CategoryTIU:
		return p.PassingTIU
	case CategoryTKP:
		return p.PassingTKP
	}
	return 0
}

// PackageQuery filters package listings
type PackageQuery struct {
	Title           string `validate:"omitempty,max=200"`
	CreatedBy       string `validate:"omitempty,uuid4"`
	IncludeInactive bool
	Limit           int    `validate:"gte=0,lte=200"`
	Offset          int    `validate:"gte=0"`
	SortBy          string `validate:"omitempty,oneof=date_time_created price title"`
	SortOrder       string `validate:"omitempty,oneof=asc desc"`
}

// NewPackageQuery returns a query for the public catalog
func NewPackageQuery() *PackageQuery {
	return &PackageQuery{Limit: 50, SortBy: "date_time_created", SortOrder: "desc"}
}

// Validate for validating PackageQuery struct
func (q *PackageQuery) Validate() error {
	return validators.Struct(q)
}
