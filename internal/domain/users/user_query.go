package users

import "github.com/turrs/bank-skd/internal/pkg/validators"

// UserQuery filters the admin user listing
type UserQuery struct {
	Role      string `json:"role" validate:"omitempty,oneof=user mentor admin"`
	Email     string `json:"email" validate:"omitempty,max=255"`
	Limit     int    `json:"limit" validate:"gte=0,lte=200"`
	Offset    int    `json:"offset" validate:"gte=0"`
	SortBy    string `json:"sort_by" validate:"omitempty,oneof=date_time_created email full_name"`
	SortOrder string `json:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// NewUserQuery returns a query with the default page size
func NewUserQuery() *UserQuery {
	return &UserQuery{Limit: 50, SortBy: "date_time_created", SortOrder: "desc"}
}

// Validate for validating UserQuery struct
func (q *UserQuery) Validate() error {
	return validators.Struct(q)
}
