package passwordhasher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskminder/internal/core/domain/user"
)

func TestHashAndValidate(t *testing.T) {
	hasher := NewBcrypt("test-secret", 4)

	hash, err := hasher.HashPassword(user.RawPassword("s3cure-password"))
	require.NoError(t, err)
	assert.NotEqual(t, "s3cure-password", string(hash))

	assert.True(t, hasher.ValidatePassword("s3cure-password", hash))
	assert.False(t, hasher.ValidatePassword("wrong-password", hash))
}

func TestDifferentSecretsDoNotValidate(t *testing.T) {
	hasher := NewBcrypt("secret-one", 4)
	otherHasher := NewBcrypt("secret-two", 4)

	hash, err := hasher.HashPassword("password")
	require.NoError(t, err)

	assert.False(t, otherHasher.ValidatePassword("password", hash))
}
