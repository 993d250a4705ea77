package crypto

import (
	"errors"

	"github.com/AlexZinkM/wallet-link/internal/model"
)

// PassphraseSealer seals wallet secrets with a fixed passphrase.
type PassphraseSealer struct {
	passphrase []byte
}

// NewPassphraseSealer copies passphrase; the caller may clear its own slice.
func NewPassphraseSealer(passphrase []byte) (*PassphraseSealer, error) {
	if len(passphrase) == 0 {
		return nil, errors.New("passphrase cannot be empty")
	}
	p := make([]byte, len(passphrase))
	copy(p, passphrase)
	return &PassphraseSealer{passphrase: p}, nil
}

// Seal encrypts secret.
func (s *PassphraseSealer) Seal(secret string) (*model.SealedSecret, error) {
	plaintext := []byte(secret)
	defer clear(plaintext)
	return Seal(plaintext, s.passphrase)
}

// Open decrypts a sealed secret.
func (s *PassphraseSealer) Open(sealed *model.SealedSecret) (string, error) {
	plaintext, err := Open(sealed, s.passphrase)
	if err != nil {
		return "", err
	}
	defer clear(plaintext)
	return string(plaintext), nil
}

// Close wipes the passphrase from memory.
func (s *PassphraseSealer) Close() {
	clear(s.passphrase)
}
