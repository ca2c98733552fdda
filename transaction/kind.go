package transaction

import (
	"fmt"

	txerrors "github.com/mezonai/mina-connector/errors"
)

// Kind tags which canonicalization rules apply to a transaction.
// The zero value is not a valid kind.
type Kind uint8

const (
	KindPayment Kind = iota + 1
	KindDelegation
	KindZkApp
)

// wire literals, part of the signer and history contract
const (
	kindPaymentName    = "payment"
	kindDelegationName = "delegation"
	kindZkAppName      = "zkApp"
)

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindPayment, KindDelegation, KindZkApp}
}

func (k Kind) String() string {
	switch k {
	case KindPayment:
		return kindPaymentName
	case KindDelegation:
		return kindDelegationName
	case KindZkApp:
		return kindZkAppName
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

func (k Kind) Valid() bool {
	return k >= KindPayment && k <= KindZkApp
}

// ParseKind maps a wire literal to its Kind. Matching is exact: "zkapp" is rejected.
func ParseKind(s string) (Kind, error) {
	switch s {
	case kindPaymentName:
		return KindPayment, nil
	case kindDelegationName:
		return KindDelegation, nil
	case kindZkAppName:
		return KindZkApp, nil
	}
	return 0, &txerrors.InvalidKindError{Value: s}
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, &txerrors.InvalidKindError{Value: k.String()}
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
