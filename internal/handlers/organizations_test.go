package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orgdhq/orgd/internal/services"
	appErrors "github.com/orgdhq/orgd/pkg/errors"
)

func TestMapServiceError(t *testing.T) {
	cases := []struct {
		in   error
		want *appErrors.AppError
	}{
		{services.ErrOrganizationNotFound, appErrors.ErrOrganizationNotFound},
		{services.ErrOrganizationExists, appErrors.ErrOrganizationExists},
		{services.ErrInvalidCredentials, appErrors.ErrInvalidCredentials},
		{services.ErrForbidden, appErrors.ErrForbidden},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, mapServiceError(tc.in))
	}

	unknown := mapServiceError(errors.New("boom"))
	appErr := appErrors.FromError(unknown)
	require.Equal(t, appErrors.ErrInternalServer.Code, appErr.Code)
}

func TestFormatValidationError(t *testing.T) {
	require.Equal(t, "invalid request payload", formatValidationError(nil))
	require.Equal(t, "invalid request payload", formatValidationError(errors.New("opaque")))
}
