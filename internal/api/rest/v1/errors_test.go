//go:build unit
// +build unit

package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turrs/bank-skd/internal/domain/billing"
	"github.com/turrs/bank-skd/internal/domain/catalog"
	"github.com/turrs/bank-skd/internal/domain/tryout"
	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/pkg/validators"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{validators.Field("email", "email is required"), http.StatusBadRequest},
		{users.ErrInvalidCredentials, http.StatusUnauthorized},
		{catalog.ErrNoAccess, http.StatusForbidden},
		{fmt.Errorf("failed to load: %w", catalog.ErrPackageNotFound), http.StatusNotFound},
		{tryout.ErrSessionExpired, http.StatusConflict},
		{billing.ErrVoucherExhausted, http.StatusBadRequest},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, statusOf(tt.err))
		})
	}
}

func TestRespondError_ValidationFields(t *testing.T) {
	c, w := newTestContext("POST", "/", "", nil)

	respondError(c, validators.Field("email", "email is required"))

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation failed", body.Message)
	assert.Equal(t, "email is required", body.Fields["email"])
}

func TestRespondError_InternalHidesCause(t *testing.T) {
	c, w := newTestContext("GET", "/", "", nil)

	respondError(c, errors.New("dial tcp 10.0.0.1:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.1")
	assert.Len(t, c.Errors, 1)
}
