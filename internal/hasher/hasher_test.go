package hasher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/foodtrace/backend/internal/types"
)

func TestSHA256Deterministic(t *testing.T) {
	h := SHA256Hasher{}
	a, err := h.Hash("secret1")
	require.NoError(t, err)
	b, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	// sha256("secret1")
	assert.Equal(t, "5b11618c2e44027877d0cd0921ed166b9f176f50587fc91e7534dd2946db77d6", a)
}

func TestSHA256DistinctInputs(t *testing.T) {
	h := SHA256Hasher{}
	a, _ := h.Hash("secret1")
	b, _ := h.Hash("secret2")
	assert.NotEqual(t, a, b)
}

func TestHashRejectsEmpty(t *testing.T) {
	for name, h := range map[string]Hasher{"sha256": SHA256Hasher{}, "bcrypt": BcryptHasher{Cost: bcrypt.MinCost}} {
		t.Run(name, func(t *testing.T) {
			_, err := h.Hash("")
			assert.ErrorIs(t, err, types.ErrInvalidInput)
		})
	}
}

func TestVerify(t *testing.T) {
	for name, h := range map[string]Hasher{"sha256": SHA256Hasher{}, "bcrypt": BcryptHasher{Cost: bcrypt.MinCost}} {
		t.Run(name, func(t *testing.T) {
			stored, err := h.Hash("secret1")
			require.NoError(t, err)
			assert.True(t, h.Verify("secret1", stored))
			assert.False(t, h.Verify("wrong", stored))
			assert.False(t, h.Verify("", stored))
		})
	}
}

func TestNew(t *testing.T) {
	h, err := New("")
	require.NoError(t, err)
	assert.IsType(t, SHA256Hasher{}, h)

	h, err = New(Bcrypt)
	require.NoError(t, err)
	assert.IsType(t, BcryptHasher{}, h)

	_, err = New("md5")
	assert.Error(t, err)
}
