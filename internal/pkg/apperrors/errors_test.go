//go:build unit
// +build unit

package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	errSessionExpired := Kind(ErrConflict, "tryout session has expired")

	wrapped := fmt.Errorf("save answer: %w", errSessionExpired)

	assert.True(t, errors.Is(wrapped, errSessionExpired))
	assert.True(t, errors.Is(wrapped, ErrConflict))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, "save answer: tryout session has expired", wrapped.Error())
}
