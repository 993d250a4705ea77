package solana

import (
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/AlexZinkM/wallet-link/internal/model"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/tyler-smith/go-bip39"
)

// DeriveFromMnemonic derives the wallet of a BIP-39 phrase: the phrase is
// checked against the English wordlist and its checksum, stretched into a
// 64-byte seed with an empty passphrase, and the first 32 bytes of that seed
// are used as the ed25519 signing seed.
func DeriveFromMnemonic(phrase string) (model.WalletIdentity, error) {
	phrase = strings.TrimSpace(phrase)
	words, verr := ValidateMnemonicShape(phrase)
	if verr != nil {
		return model.WalletIdentity{}, verr
	}
	normalized := strings.Join(words, " ")

	if _, err := bip39.EntropyFromMnemonic(normalized); err != nil {
		return model.WalletIdentity{}, &DerivationError{
			Code:   InvalidChecksum,
			Source: model.FromMnemonic,
			Err:    err,
		}
	}

	seed := bip39.NewSeed(normalized, "")
	defer clear(seed)

	return identityFromSeed(seed[:ed25519.SeedSize], phrase, model.FromMnemonic), nil
}

// DeriveFromPrivateKey derives the wallet of a base58 private key. A 64-byte
// key is seed||public key; its trailing half is ignored and the public key is
// recomputed from the seed.
func DeriveFromPrivateKey(keyText string) (model.WalletIdentity, error) {
	keyText = strings.TrimSpace(keyText)
	if keyText == "" {
		return model.WalletIdentity{}, &DerivationError{
			Code:   DecodeError,
			Source: model.FromPrivateKey,
			Err:    ErrEmpty,
		}
	}

	raw, err := base58.Decode(keyText)
	if err != nil {
		return model.WalletIdentity{}, &DerivationError{
			Code:   DecodeError,
			Source: model.FromPrivateKey,
			Err:    err,
		}
	}
	defer clear(raw)

	var seed []byte
	switch len(raw) {
	case keypairLen:
		seed = raw[:seedLen]
	case seedLen:
		seed = raw
	default:
		return model.WalletIdentity{}, &DerivationError{
			Code:   InvalidKeyLength,
			Source: model.FromPrivateKey,
			Err:    fmt.Errorf("decoded %d bytes, want %d or %d", len(raw), seedLen, keypairLen),
		}
	}

	return identityFromSeed(seed, keyText, model.FromPrivateKey), nil
}

// ParseSecret derives a wallet from whatever secret the user typed: a base58
// private key is tried first, then a seed phrase.
func ParseSecret(text string) (model.WalletIdentity, error) {
	text = strings.TrimSpace(text)

	out := Classify(text)
	switch {
	case out.KeyMaterial():
		return DeriveFromPrivateKey(text)
	case out.Kind == OutcomeMnemonic:
		return DeriveFromMnemonic(text)
	default:
		return model.WalletIdentity{}, out.Err
	}
}

// ExpandedKey returns the 64-byte seed||public key encoding of identity's
// signing key, as base58.
func ExpandedKey(identity model.WalletIdentity) (string, error) {
	var seed []byte
	switch identity.Source {
	case model.FromMnemonic:
		words, verr := ValidateMnemonicShape(identity.SecretMaterial)
		if verr != nil {
			return "", verr
		}
		full, err := bip39.NewSeedWithErrorChecking(strings.Join(words, " "), "")
		if err != nil {
			return "", &DerivationError{Code: InvalidChecksum, Source: model.FromMnemonic, Err: err}
		}
		defer clear(full)
		seed = full[:ed25519.SeedSize]
	case model.FromPrivateKey:
		raw, verr := ValidatePrivateKey(strings.TrimSpace(identity.SecretMaterial))
		if verr != nil {
			return "", verr
		}
		defer clear(raw)
		seed = raw[:seedLen]
	default:
		return "", fmt.Errorf("unknown derivation source %q", identity.Source)
	}

	key := solana.PrivateKey(ed25519.NewKeyFromSeed(seed))
	defer clear(key)
	return key.String(), nil
}

func identityFromSeed(seed []byte, secret string, source model.DerivationSource) model.WalletIdentity {
	key := solana.PrivateKey(ed25519.NewKeyFromSeed(seed))
	defer clear(key)

	return model.WalletIdentity{
		PublicKey:      key.PublicKey(),
		SecretMaterial: secret,
		Source:         source,
	}
}
