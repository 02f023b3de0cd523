package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	OrganizationName string `json:"organization_name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
}

func TestValidateStructPasses(t *testing.T) {
	err := ValidateStruct(sampleRequest{
		OrganizationName: "Acme Corp",
		Email:            "admin@acme.test",
	})
	require.NoError(t, err)
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	err := ValidateStruct(sampleRequest{Email: "not-an-email"})
	require.Error(t, err)

	failures, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, failures, 2)

	fields := map[string]string{}
	for _, failure := range failures {
		fields[failure.Field] = failure.Tag
	}
	require.Equal(t, "required", fields["organization_name"])
	require.Equal(t, "email", fields["email"])

	require.Contains(t, err.Error(), "organization_name failed on required")
}
