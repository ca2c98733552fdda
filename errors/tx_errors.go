package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/mezonai/mina-connector/jsonx"
)

// ErrorCode is the stable identifier a UI uses to pick a message for a failed normalization
type ErrorCode string

const (
	ErrCodeInternal ErrorCode = "internal_error"

	// Validation errors
	ErrCodeMissingField      ErrorCode = "missing_field"
	ErrCodeInvalidAmount     ErrorCode = "invalid_amount"
	ErrCodeInvalidNonce      ErrorCode = "invalid_nonce"
	ErrCodeInvalidValidUntil ErrorCode = "invalid_valid_until"
	ErrCodeMemoTooLong       ErrorCode = "memo_too_long"

	// Kind errors
	ErrCodeInvalidKind     ErrorCode = "invalid_kind"
	ErrCodeUnsupportedKind ErrorCode = "unsupported_kind"

	// Command line errors
	ErrCodeInvalidArgument   ErrorCode = "invalid_argument"
	ErrCodeUnsupportedFormat ErrorCode = "unsupported_format"
)

// Error message constants - user-friendly and concise
const (
	ErrMsgInternal          = "Transaction could not be prepared"
	ErrMsgMissingField      = "Field '%s' is required"
	ErrMsgInvalidAmount     = "Field '%s' must be a non-negative whole amount, got %q"
	ErrMsgInvalidNonce      = "Nonce must be a whole number between 0 and 4294967295, got %q"
	ErrMsgInvalidValidUntil = "Valid-until must be a block height between 0 and 4294967295, got %q"
	ErrMsgMemoTooLong       = "Memo is %d bytes, maximum is %d"
	ErrMsgInvalidKind       = "Transaction kind %q is not one of payment, delegation, zkApp"
	ErrMsgUnsupportedKind   = "Transaction kind %q cannot be prepared yet"
	ErrMsgInvalidArgument   = "Invalid arguments: %s"
	ErrMsgUnsupportedFormat = "Format %q for --%s is not one of json, cbor"
)

// coded is implemented by every error of this package
type coded interface {
	error
	Code() ErrorCode
}

// MissingFieldError reports one of to, from, fee, nonce absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string   { return fmt.Sprintf(ErrMsgMissingField, e.Field) }
func (e *MissingFieldError) Code() ErrorCode { return ErrCodeMissingField }

// InvalidAmountError reports an amount or fee that is not a non-negative integer,
// or an amount on a kind that carries none.
type InvalidAmountError struct {
	Field string
	Value string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf(ErrMsgInvalidAmount, e.Field, e.Value)
}
func (e *InvalidAmountError) Code() ErrorCode { return ErrCodeInvalidAmount }

type InvalidNonceError struct {
	Value string
}

func (e *InvalidNonceError) Error() string   { return fmt.Sprintf(ErrMsgInvalidNonce, e.Value) }
func (e *InvalidNonceError) Code() ErrorCode { return ErrCodeInvalidNonce }

type InvalidValidUntilError struct {
	Value string
}

func (e *InvalidValidUntilError) Error() string {
	return fmt.Sprintf(ErrMsgInvalidValidUntil, e.Value)
}
func (e *InvalidValidUntilError) Code() ErrorCode { return ErrCodeInvalidValidUntil }

type MemoTooLongError struct {
	Length int
	Max    int
}

func (e *MemoTooLongError) Error() string   { return fmt.Sprintf(ErrMsgMemoTooLong, e.Length, e.Max) }
func (e *MemoTooLongError) Code() ErrorCode { return ErrCodeMemoTooLong }

type InvalidKindError struct {
	Value string
}

func (e *InvalidKindError) Error() string   { return fmt.Sprintf(ErrMsgInvalidKind, e.Value) }
func (e *InvalidKindError) Code() ErrorCode { return ErrCodeInvalidKind }

type UnsupportedKindError struct {
	Kind string
}

func (e *UnsupportedKindError) Error() string   { return fmt.Sprintf(ErrMsgUnsupportedKind, e.Kind) }
func (e *UnsupportedKindError) Code() ErrorCode { return ErrCodeUnsupportedKind }

// InvalidArgumentError reports a command line the CLI could not parse.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string   { return fmt.Sprintf(ErrMsgInvalidArgument, e.Reason) }
func (e *InvalidArgumentError) Code() ErrorCode { return ErrCodeInvalidArgument }

// UnsupportedFormatError reports an unknown wire format named by Flag.
type UnsupportedFormatError struct {
	Flag  string
	Value string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf(ErrMsgUnsupportedFormat, e.Value, e.Flag)
}
func (e *UnsupportedFormatError) Code() ErrorCode { return ErrCodeUnsupportedFormat }

// CodeOf returns the code of the first error in err's chain that carries one,
// ErrCodeInternal otherwise.
func CodeOf(err error) ErrorCode {
	var c coded
	if stderrors.As(err, &c) {
		return c.Code()
	}
	return ErrCodeInternal
}

// TxError is the display form of a normalization failure
type TxError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	// Detail carries the underlying text of an internal error for operators.
	// ToTxError never sets it.
	Detail  string    `json:"detail,omitempty"`
}

// Error implements the error interface
func (e *TxError) Error() string {
	b, _ := jsonx.Marshal(TxError{
		Code:    e.Code,
		Message: e.Message,
		Field:   e.Field,
		Detail:  e.Detail,
	})
	return string(b)
}

// ToTxError flattens err for display. Errors outside this package keep their
// text out of the message and report ErrCodeInternal.
func ToTxError(err error) *TxError {
	if err == nil {
		return nil
	}
	var c coded
	if !stderrors.As(err, &c) {
		return &TxError{Code: ErrCodeInternal, Message: ErrMsgInternal}
	}
	out := &TxError{Code: c.Code(), Message: c.Error()}
	switch e := c.(type) {
	case *MissingFieldError:
		out.Field = e.Field
	case *InvalidAmountError:
		out.Field = e.Field
	case *InvalidNonceError:
		out.Field = "nonce"
	case *InvalidValidUntilError:
		out.Field = "validUntil"
	case *MemoTooLongError:
		out.Field = "memo"
	case *InvalidKindError, *UnsupportedKindError:
		out.Field = "kind"
	case *UnsupportedFormatError:
		out.Field = e.Flag
	}
	return out
}
