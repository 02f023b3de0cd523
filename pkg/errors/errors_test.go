package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppErrorMessageAndUnwrap(t *testing.T) {
	base := errors.New("disk exploded")
	appErr := ErrInternalServer.WithInternal(base)

	require.Contains(t, appErr.Error(), "disk exploded")
	require.ErrorIs(t, appErr, base)

	// WithInternal must not mutate the shared sentinel.
	require.Nil(t, ErrInternalServer.Internal)
}

func TestFromError(t *testing.T) {
	require.Nil(t, FromError(nil))

	require.Equal(t, ErrOrganizationExists, FromError(ErrOrganizationExists))

	wrapped := FromError(errors.New("boom"))
	require.Equal(t, ErrInternalServer.Code, wrapped.Code)
	require.Equal(t, http.StatusInternalServerError, wrapped.StatusCode)
}

func TestTaxonomyStatusCodes(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, ErrOrganizationExists.StatusCode)
	require.Equal(t, http.StatusNotFound, ErrOrganizationNotFound.StatusCode)
	require.Equal(t, http.StatusUnauthorized, ErrInvalidCredentials.StatusCode)
	require.Equal(t, http.StatusForbidden, ErrForbidden.StatusCode)
}

func TestNewBadRequest(t *testing.T) {
	err := NewBadRequest("name is required")
	require.Equal(t, ErrBadRequest.Code, err.Code)
	require.Equal(t, http.StatusBadRequest, err.StatusCode)
	require.Equal(t, "name is required", err.Message)
}
