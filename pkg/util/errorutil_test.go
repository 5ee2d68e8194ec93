package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-admin/internal/store"
)

func TestToDomainError(t *testing.T) {
	t.Parallel()

	t.Run("passes through existing domain errors", func(t *testing.T) {
		orig := NewConflict("email already registered", nil)
		mapped := ToDomainError(orig)
		require.Equal(t, "CONFLICT", mapped.Code)
		require.Equal(t, http.StatusConflict, mapped.HTTPStatus)
	})

	t.Run("maps store not-found to 404", func(t *testing.T) {
		mapped := ToDomainError(fmt.Errorf("get: %w", store.ErrNotFound))
		require.Equal(t, "NOT_FOUND", mapped.Code)
		require.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
	})

	t.Run("maps duplicate id to 409", func(t *testing.T) {
		mapped := ToDomainError(store.ErrDuplicateID)
		require.Equal(t, "CONFLICT", mapped.Code)
	})

	t.Run("everything else is a 500", func(t *testing.T) {
		mapped := ToDomainError(errors.New("disk on fire"))
		require.Equal(t, "INTERNAL_ERROR", mapped.Code)
		require.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		require.Nil(t, ToDomainError(nil))
	})
}

func TestInvalidCredentialsMessage(t *testing.T) {
	t.Parallel()
	err := NewInvalidCredentials()
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, http.StatusUnauthorized, domainErr.HTTPStatus)
	require.Contains(t, domainErr.Message, "incorrect")
}
