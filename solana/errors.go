package solana

import (
	"errors"
	"fmt"

	"github.com/AlexZinkM/wallet-link/internal/model"
)

// Check names the shape check that rejected an input.
type Check string

const (
	CheckInput      Check = "input"
	CheckAddress    Check = "address"
	CheckPrivateKey Check = "private key"
	CheckMnemonic   Check = "seed phrase"
)

var (
	ErrEmpty     = errors.New("empty input")
	ErrDecode    = errors.New("not valid base58")
	ErrLength    = errors.New("wrong decoded length")
	ErrWordCount = errors.New("word count mismatch")
)

// ValidationError is a shape failure of user input. It is user-correctable
// and never a system fault.
type ValidationError struct {
	Check  Check
	Reason error  // one of ErrEmpty, ErrDecode, ErrLength, ErrWordCount
	Detail string // e.g. "got 31 bytes, want 32 or 64"
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("invalid %s: %v", e.Check, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %v (%s)", e.Check, e.Reason, e.Detail)
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// DerivationCode identifies why a key derivation failed.
type DerivationCode string

const (
	InvalidChecksum  DerivationCode = "invalid_checksum"
	InvalidKeyLength DerivationCode = "invalid_key_length"
	DecodeError      DerivationCode = "decode_error"
)

// Sentinels for errors.Is; they match any DerivationError with the same code.
var (
	ErrInvalidChecksum  = &DerivationError{Code: InvalidChecksum}
	ErrInvalidKeyLength = &DerivationError{Code: InvalidKeyLength}
	ErrDecodeError      = &DerivationError{Code: DecodeError}
)

// DerivationError is a rejected cryptographic input. It is shown to the user
// verbatim and never retried.
type DerivationError struct {
	Code   DerivationCode
	Source model.DerivationSource
	Err    error
}

func (e *DerivationError) Error() string {
	what := "private key"
	if e.Source == model.FromMnemonic {
		what = "seed phrase"
	}

	var msg string
	switch e.Code {
	case InvalidChecksum:
		msg = "mnemonic verification failed"
	case InvalidKeyLength:
		msg = "invalid private key length"
	case DecodeError:
		msg = "not valid base58"
	default:
		msg = string(e.Code)
	}

	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s: %v", what, msg, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", what, msg)
}

func (e *DerivationError) Unwrap() error {
	return e.Err
}

// Is matches on Code, and on Source when the target sets one.
func (e *DerivationError) Is(target error) bool {
	t, ok := target.(*DerivationError)
	if !ok {
		return false
	}
	if t.Code != e.Code {
		return false
	}
	return t.Source == "" || t.Source == e.Source
}

// StoreError is a record store failure seen by the import flow.
type StoreError struct {
	Op     string
	UserID int64
	Err    error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s for user %d: %v", e.Op, e.UserID, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ErrorCode returns a short machine-readable code for err, or "" when err
// is not one of the typed errors of this package.
func ErrorCode(err error) string {
	var derr *DerivationError
	if errors.As(err, &derr) {
		return string(derr.Code)
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		switch {
		case errors.Is(verr.Reason, ErrEmpty):
			return "empty_input"
		case errors.Is(verr.Reason, ErrDecode):
			return "decode_error"
		case errors.Is(verr.Reason, ErrLength):
			return "invalid_length"
		case errors.Is(verr.Reason, ErrWordCount):
			return "invalid_word_count"
		}
		return "invalid_input"
	}

	var serr *StoreError
	if errors.As(err, &serr) {
		return "store_error"
	}
	return ""
}
