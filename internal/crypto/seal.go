package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/AlexZinkM/wallet-link/internal/model"

	"golang.org/x/crypto/scrypt"
)

const (
	// scrypt parameters for secrets at rest
	// Security is prioritized over performance
	//
	// N=2^18 (~256MB RAM, 0.5-2s per operation). Sealing happens once per
	// import and opening only on an explicit reveal, so the cost is paid rarely.
	defaultScryptLogN = 18
	scryptR           = 8
	scryptP           = 1
	scryptKeyLen      = 32
	saltLen           = 32
	nonceLen          = 12
)

// ErrWrongPassphrase is returned when a sealed secret does not open.
var ErrWrongPassphrase = errors.New("invalid passphrase")

var scryptN = 1 << defaultScryptLogN

// SetScryptWorkFactor sets N = 2^logN. Tests use a small value.
func SetScryptWorkFactor(logN int) {
	scryptN = 1 << logN
}

// Seal encrypts plaintext with a key derived from passphrase (scrypt + AES-256-GCM).
// passphrase must be []byte for security (caller should zero it after use)
func Seal(plaintext, passphrase []byte) (*model.SealedSecret, error) {
	if len(passphrase) == 0 {
		return nil, errors.New("passphrase cannot be empty")
	}

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	return &model.SealedSecret{
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

// Open decrypts a sealed secret. The caller should clear the result after use.
func Open(sealed *model.SealedSecret, passphrase []byte) ([]byte, error) {
	if sealed == nil {
		return nil, errors.New("nothing to open")
	}

	salt, err := base64.StdEncoding.DecodeString(sealed.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(sealed.Nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to decode nonce: %w", err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(sealed.CipherText)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	aesGCM, err := newGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aesGCM.NonceSize() {
		return nil, fmt.Errorf("invalid nonce length %d", len(nonce))
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return plaintext, nil
}

func newGCM(passphrase, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
