package transaction

import "github.com/holiman/uint256"

// Description is a caller-supplied, partially optional transaction body as built by
// form handling code. Nil pointers mean absent; zero values are real values.
type Description struct {
	To    string
	From  string
	Fee   *uint256.Int
	Nonce *uint32

	Amount     *uint256.Int
	Memo       *string
	ValidUntil *uint32

	// Display and history fields, carried through and never canonicalized.
	BlockHeight   *uint64
	Token         *string
	Hash          *string
	FailureReason *string
	DateTime      *string
	IsDelegation  *bool
	Kind          *Kind
	Type          *Kind
}

// Ptr returns a pointer to v, for filling optional Description fields.
func Ptr[T any](v T) *T {
	return &v
}

// Amount returns a base-unit amount for v.
func Amount(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

func cloneAmount(v *uint256.Int) *uint256.Int {
	if v == nil {
		return nil
	}
	return new(uint256.Int).Set(v)
}

// carry copies the display and history fields of d onto out.
func (d Description) carry(out *Description) {
	out.BlockHeight = d.BlockHeight
	out.Token = d.Token
	out.Hash = d.Hash
	out.FailureReason = d.FailureReason
	out.DateTime = d.DateTime
	out.IsDelegation = d.IsDelegation
	out.Kind = d.Kind
	out.Type = d.Type
}
