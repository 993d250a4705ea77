package solana

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mr-tron/base58"
)

const (
	addressLen     = 32
	seedLen        = 32
	keypairLen     = 64
	minMintAddrLen = 32
	maxMintAddrLen = 50
)

// mnemonicWordCounts are the word counts allowed by BIP-39.
var mnemonicWordCounts = map[int]bool{12: true, 15: true, 18: true, 21: true, 24: true}

// OutcomeKind is the class Classify assigns to an input.
type OutcomeKind int

const (
	OutcomeInvalid OutcomeKind = iota
	OutcomeAddress
	OutcomePrivateKey
	OutcomeMnemonic
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAddress:
		return "address"
	case OutcomePrivateKey:
		return "private_key"
	case OutcomeMnemonic:
		return "mnemonic"
	default:
		return "invalid"
	}
}

// Outcome is the result of Classify. Exactly one kind holds per input.
type Outcome struct {
	Kind  OutcomeKind
	Bytes []byte           // decoded bytes for OutcomeAddress and OutcomePrivateKey
	Words []string         // words for OutcomeMnemonic
	Err   *ValidationError // set for OutcomeInvalid only
}

// KeyMaterial reports whether the outcome can be fed to DeriveFromPrivateKey.
// A 32-byte value is shape-identical for an address and a bare seed.
func (o Outcome) KeyMaterial() bool {
	return o.Kind == OutcomeAddress || o.Kind == OutcomePrivateKey
}

// Classify sorts text into an address, a private key, a mnemonic or invalid.
// It is pure and total. Multi-word input is judged as a mnemonic by word count
// only; wordlist and checksum are verified later by DeriveFromMnemonic.
// A single token is base58-decoded: 32 bytes is an address, 64 bytes an
// expanded keypair.
func Classify(text string) Outcome {
	text = strings.TrimSpace(text)
	if text == "" {
		return invalid(&ValidationError{Check: CheckInput, Reason: ErrEmpty})
	}

	if len(strings.Fields(text)) > 1 {
		words, err := ValidateMnemonicShape(text)
		if err != nil {
			return invalid(err)
		}
		return Outcome{Kind: OutcomeMnemonic, Words: words}
	}

	if raw, err := ValidateAddress(text); err == nil {
		return Outcome{Kind: OutcomeAddress, Bytes: raw}
	}

	raw, err := ValidatePrivateKey(text)
	if err != nil {
		return invalid(err)
	}
	return Outcome{Kind: OutcomePrivateKey, Bytes: raw}
}

func invalid(err *ValidationError) Outcome {
	return Outcome{Kind: OutcomeInvalid, Err: err}
}

// ValidateAddress checks that text base58-decodes to exactly 32 bytes.
func ValidateAddress(text string) ([]byte, *ValidationError) {
	raw, verr := decode(CheckAddress, text)
	if verr != nil {
		return nil, verr
	}
	if len(raw) != addressLen {
		return nil, &ValidationError{
			Check:  CheckAddress,
			Reason: ErrLength,
			Detail: fmt.Sprintf("got %d bytes, want %d", len(raw), addressLen),
		}
	}
	return raw, nil
}

// IsValidAddress reports whether text is a base58 32-byte public key.
func IsValidAddress(text string) bool {
	_, err := ValidateAddress(strings.TrimSpace(text))
	return err == nil
}

// ValidatePrivateKey checks that text base58-decodes to a 32-byte seed or a
// 64-byte expanded keypair.
func ValidatePrivateKey(text string) ([]byte, *ValidationError) {
	raw, verr := decode(CheckPrivateKey, text)
	if verr != nil {
		return nil, verr
	}
	if len(raw) != seedLen && len(raw) != keypairLen {
		return nil, &ValidationError{
			Check:  CheckPrivateKey,
			Reason: ErrLength,
			Detail: fmt.Sprintf("got %d bytes, want %d or %d", len(raw), seedLen, keypairLen),
		}
	}
	return raw, nil
}

// ValidateMnemonicShape checks only that the word count is one of 12, 15, 18, 21 or 24.
func ValidateMnemonicShape(text string) ([]string, *ValidationError) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, &ValidationError{Check: CheckMnemonic, Reason: ErrEmpty}
	}
	if !mnemonicWordCounts[len(words)] {
		return nil, &ValidationError{
			Check:  CheckMnemonic,
			Reason: ErrWordCount,
			Detail: fmt.Sprintf("got %d words, want 12, 15, 18, 21 or 24", len(words)),
		}
	}
	return words, nil
}

// ValidateMintAddress applies the loose length check used for token mint input.
func ValidateMintAddress(text string) *ValidationError {
	n := utf8.RuneCountInString(strings.TrimSpace(text))
	if n < minMintAddrLen || n > maxMintAddrLen {
		return &ValidationError{
			Check:  CheckAddress,
			Reason: ErrLength,
			Detail: fmt.Sprintf("got %d characters, want %d to %d", n, minMintAddrLen, maxMintAddrLen),
		}
	}
	return nil
}

func decode(check Check, text string) ([]byte, *ValidationError) {
	if text == "" {
		return nil, &ValidationError{Check: check, Reason: ErrEmpty}
	}
	raw, err := base58.Decode(text)
	if err != nil {
		return nil, &ValidationError{Check: check, Reason: ErrDecode, Detail: err.Error()}
	}
	return raw, nil
}
