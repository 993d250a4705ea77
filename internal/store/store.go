// Package store persists wallet records, one per chat user.
//
// Secret material is written in clear unless a Sealer is configured; sealing
// happens here and nowhere else, so the derivation code never sees ciphertext.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/AlexZinkM/wallet-link/internal/model"

	"github.com/gagliardetto/solana-go"
)

// ErrSealed is returned by Reveal when a record is sealed and no Sealer is configured.
var ErrSealed = errors.New("secret is sealed and no passphrase is configured")

// Sealer encrypts secret material at rest.
type Sealer interface {
	Seal(secret string) (*model.SealedSecret, error)
	Open(sealed *model.SealedSecret) (string, error)
}

type options struct {
	sealer Sealer
	now    func() time.Time
}

// Option configures a store.
type Option func(*options)

// WithSealer seals secrets on save and opens them on Reveal.
func WithSealer(s Sealer) Option {
	return func(o *options) {
		o.sealer = s
	}
}

// WithClock replaces time.Now for CreatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// buildRecord creates the record to persist, sealing its secret when configured.
func (o options) buildRecord(userID int64, identity model.WalletIdentity, kind model.ImportKind) (model.WalletRecord, error) {
	if !kind.Valid() {
		return model.WalletRecord{}, fmt.Errorf("unknown import kind %q", kind)
	}

	rec := model.NewWalletRecord(userID, identity, kind, o.now())
	if o.sealer == nil {
		return rec, nil
	}

	sealed, err := o.sealer.Seal(identity.SecretMaterial)
	if err != nil {
		return model.WalletRecord{}, fmt.Errorf("failed to seal secret: %w", err)
	}
	rec = rec.WithoutSecret()
	rec.Sealed = sealed
	return rec, nil
}

// reveal returns rec with its secret in clear.
func (o options) reveal(rec model.WalletRecord) (model.WalletRecord, error) {
	if rec.Sealed == nil {
		return rec, nil
	}
	if o.sealer == nil {
		return model.WalletRecord{}, ErrSealed
	}

	secret, err := o.sealer.Open(rec.Sealed)
	if err != nil {
		return model.WalletRecord{}, fmt.Errorf("failed to open secret: %w", err)
	}
	rec.Sealed = nil
	rec.SetSecret(secret)
	return rec, nil
}

// checkPublicKey rejects records whose stored key is not a 32-byte address.
func checkPublicKey(rec model.WalletRecord) error {
	if _, err := solana.PublicKeyFromBase58(rec.PublicKey); err != nil {
		return fmt.Errorf("%w: stored public key of user %d is invalid", model.ErrWalletNotFound, rec.UserID)
	}
	return nil
}
