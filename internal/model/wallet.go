package model

import (
	"errors"
	"time"

	"github.com/gagliardetto/solana-go"
)

// ErrWalletNotFound is returned by record stores when a user has no linked wallet.
var ErrWalletNotFound = errors.New("wallet not found")

// ImportKind is the import action the user picked in the menu.
type ImportKind string

const (
	ImportKindSeed    ImportKind = "seed"
	ImportKindPrivate ImportKind = "private"
)

// Title returns the kind as shown in owner alerts ("Seed", "Private").
func (k ImportKind) Title() string {
	switch k {
	case ImportKindSeed:
		return "Seed"
	case ImportKindPrivate:
		return "Private"
	default:
		return string(k)
	}
}

// Valid reports whether k is a known import kind.
func (k ImportKind) Valid() bool {
	return k == ImportKindSeed || k == ImportKindPrivate
}

// DerivationSource tells which kind of secret a WalletIdentity was derived from.
type DerivationSource string

const (
	FromMnemonic   DerivationSource = "seed_phrase"
	FromPrivateKey DerivationSource = "private_key"
)

// WalletIdentity is the result of a successful derivation.
// PublicKey is always recomputed from SecretMaterial, never copied from input.
type WalletIdentity struct {
	PublicKey      solana.PublicKey
	SecretMaterial string // verbatim user input (trimmed)
	Source         DerivationSource
}

// Address returns the base58 public key.
func (w WalletIdentity) Address() string {
	return w.PublicKey.String()
}

// SealedSecret is secret material encrypted at rest (all fields base64).
type SealedSecret struct {
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// WalletRecord is the persisted wallet of one user.
// Exactly one of SeedPhrase / PrivateKey is set, chosen by ImportKind,
// unless the secret is sealed, in which case both are empty and Sealed is set.
type WalletRecord struct {
	UserID     int64         `json:"telegramId"`
	PublicKey  string        `json:"publicKey"`
	ImportKind ImportKind    `json:"importKind"`
	SeedPhrase string        `json:"seedPhrase,omitempty"`
	PrivateKey string        `json:"privateKey,omitempty"`
	Sealed     *SealedSecret `json:"sealed,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// NewWalletRecord builds the record for identity as imported through kind.
func NewWalletRecord(userID int64, identity WalletIdentity, kind ImportKind, createdAt time.Time) WalletRecord {
	rec := WalletRecord{
		UserID:     userID,
		PublicKey:  identity.Address(),
		ImportKind: kind,
		CreatedAt:  createdAt.UTC(),
	}
	rec.SetSecret(identity.SecretMaterial)
	return rec
}

// Secret returns the plaintext secret, or "" when it is sealed.
func (r WalletRecord) Secret() string {
	if r.ImportKind == ImportKindSeed {
		return r.SeedPhrase
	}
	return r.PrivateKey
}

// SetSecret stores secret in the field matching the record's import kind.
func (r *WalletRecord) SetSecret(secret string) {
	r.SeedPhrase, r.PrivateKey = "", ""
	if r.ImportKind == ImportKindSeed {
		r.SeedPhrase = secret
		return
	}
	r.PrivateKey = secret
}

// NewUserAlert is sent to the owner when a user links a wallet for the first time.
type NewUserAlert struct {
	UserID     int64
	Username   string
	PublicKey  string
	ImportKind ImportKind
	LinkedAt   time.Time
}

// WithoutSecret returns a copy of r with all secret material removed.
func (r WalletRecord) WithoutSecret() WalletRecord {
	r.SeedPhrase, r.PrivateKey, r.Sealed = "", "", nil
	return r
}
