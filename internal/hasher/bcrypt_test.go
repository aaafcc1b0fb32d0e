package hasher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashVerify(t *testing.T) {
	h := New(WithCost(bcrypt.MinCost))

	tests := []struct {
		name     string
		password string
		attempt  string
		want     bool
	}{
		{name: "matching password", password: "secret1", attempt: "secret1", want: true},
		{name: "different password", password: "secret1", attempt: "secret2", want: false},
		{name: "case differs", password: "Secret1", attempt: "secret1", want: false},
		{name: "empty attempt", password: "secret1", attempt: "", want: false},
		{name: "unicode password", password: "пароль-密码", attempt: "пароль-密码", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)
			assert.Equal(t, tt.want, h.Verify(tt.attempt, hash))
		})
	}
}

func TestBcryptHasher_Salted(t *testing.T) {
	h := New(WithCost(bcrypt.MinCost))

	first, err := h.Hash("secret1")
	require.NoError(t, err)
	second, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("secret1", first))
	assert.True(t, h.Verify("secret1", second))
}

func TestBcryptHasher_TooLong(t *testing.T) {
	h := New(WithCost(bcrypt.MinCost))

	_, err := h.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = h.Hash(strings.Repeat("a", 72))
	assert.NoError(t, err)
}

func TestBcryptHasher_VerifyMalformedHash(t *testing.T) {
	h := New()
	assert.False(t, h.Verify("secret1", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("secret1", ""))
}

func TestWithCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, New().cost)
	assert.Equal(t, bcrypt.MinCost, New(WithCost(bcrypt.MinCost)).cost)
	assert.Equal(t, bcrypt.DefaultCost, New(WithCost(1)).cost)
	assert.Equal(t, bcrypt.DefaultCost, New(WithCost(bcrypt.MaxCost+1)).cost)

	hash, err := New(WithCost(5)).Hash("secret1")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
}
