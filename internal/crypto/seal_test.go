package crypto

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	SetScryptWorkFactor(10)
	os.Exit(m.Run())
}

func TestSealOpen(t *testing.T) {
	secret := []byte("abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about")
	pass := []byte("correct horse")

	sealed, err := Seal(secret, pass)
	require.NoError(t, err)
	assert.NotEmpty(t, sealed.Salt)
	assert.NotEmpty(t, sealed.Nonce)
	assert.NotContains(t, sealed.CipherText, "abandon")

	opened, err := Open(sealed, pass)
	require.NoError(t, err)
	assert.Equal(t, secret, opened)
}

func TestSeal_FreshSaltAndNonce(t *testing.T) {
	a, err := Seal([]byte("same"), []byte("pass"))
	require.NoError(t, err)
	b, err := Seal([]byte("same"), []byte("pass"))
	require.NoError(t, err)

	assert.NotEqual(t, a.Salt, b.Salt)
	assert.NotEqual(t, a.Nonce, b.Nonce)
	assert.NotEqual(t, a.CipherText, b.CipherText)
}

func TestOpen_WrongPassphrase(t *testing.T) {
	sealed, err := Seal([]byte("secret"), []byte("right"))
	require.NoError(t, err)

	_, err = Open(sealed, []byte("wrong"))
	assert.ErrorIs(t, err, ErrWrongPassphrase)
}

func TestOpen_Corrupt(t *testing.T) {
	sealed, err := Seal([]byte("secret"), []byte("pass"))
	require.NoError(t, err)

	bad := *sealed
	bad.Salt = "%%%"
	_, err = Open(&bad, []byte("pass"))
	assert.Error(t, err)

	bad = *sealed
	bad.Nonce = "AAAA"
	_, err = Open(&bad, []byte("pass"))
	assert.ErrorContains(t, err, "invalid nonce length")

	_, err = Open(nil, []byte("pass"))
	assert.Error(t, err)
}

func TestSeal_EmptyPassphrase(t *testing.T) {
	_, err := Seal([]byte("secret"), nil)
	assert.Error(t, err)
}

func TestPassphraseSealer(t *testing.T) {
	pass := []byte("hunter2")
	s, err := NewPassphraseSealer(pass)
	require.NoError(t, err)
	clear(pass)

	sealed, err := s.Seal("my private key")
	require.NoError(t, err)

	secret, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "my private key", secret)

	other, err := NewPassphraseSealer([]byte("other"))
	require.NoError(t, err)
	_, err = other.Open(sealed)
	assert.ErrorIs(t, err, ErrWrongPassphrase)

	s.Close()
	_, err = NewPassphraseSealer(nil)
	assert.Error(t, err)
}
