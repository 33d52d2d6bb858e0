package security_test

import (
	"testing"

	"dropsync/core/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	t.Run("HashAndCheck", func(t *testing.T) {
		hash, err := security.HashPassword("hunter22")
		require.NoError(t, err)
		require.NotEmpty(t, hash)
		assert.NotEqual(t, "hunter22", hash)

		assert.True(t, security.CheckPassword(hash, "hunter22"))
		assert.False(t, security.CheckPassword(hash, "hunter23"))
	})

	t.Run("SaltedHashesDiffer", func(t *testing.T) {
		first, err := security.HashPassword("hunter22")
		require.NoError(t, err)
		second, err := security.HashPassword("hunter22")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("GarbageHash", func(t *testing.T) {
		assert.False(t, security.CheckPassword("not-a-bcrypt-hash", "hunter22"))
	})
}
