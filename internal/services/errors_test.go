package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsUniqueConstraintError(t *testing.T) {
	require.False(t, isUniqueConstraintError(nil))
	require.False(t, isUniqueConstraintError(errors.New("connection refused")))

	require.True(t, isUniqueConstraintError(gorm.ErrDuplicatedKey))
	require.True(t, isUniqueConstraintError(errors.New("UNIQUE constraint failed: organizations.name")))
	require.True(t, isUniqueConstraintError(errors.New("Duplicate entry 'Acme' for key 'name'")))
}
