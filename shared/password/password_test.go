package password_test

import (
	"strings"
	"testing"

	"roomslot/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, password.Verify("s3cret-pass", hash))
	assert.ErrorIs(t, password.Verify("wrong-pass", hash), password.ErrInvalidPassword)
}

func TestHashRejectsEmpty(t *testing.T) {
	_, err := password.Hash("")
	assert.ErrorIs(t, err, password.ErrEmptyPassword)
}

func TestVerifyRejectsEmptyInput(t *testing.T) {
	assert.ErrorIs(t, password.Verify("", "hash"), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.Verify("pass", ""), password.ErrInvalidPassword)
}

func TestVerifyMalformedHash(t *testing.T) {
	err := password.Verify("pass", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, password.ErrInvalidPassword)
}

func TestHashRejectsTooLong(t *testing.T) {
	_, err := password.Hash(strings.Repeat("a", password.MaxBytes+1))
	assert.ErrorIs(t, err, password.ErrTooLong)

	_, err = password.Hash(strings.Repeat("a", password.MaxBytes))
	assert.NoError(t, err)
}
