package codec

import (
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"
	txerrors "github.com/mezonai/mina-connector/errors"
	"github.com/mezonai/mina-connector/jsonx"
	"github.com/mezonai/mina-connector/transaction"
)

// descriptionJSON is the form wallets and UI code post. Numbers stay json.Number
// until validated so amounts beyond float64 precision survive.
type descriptionJSON struct {
	To    string       `json:"to"`
	From  string       `json:"from"`
	Fee   *json.Number `json:"fee"`
	Nonce *json.Number `json:"nonce"`

	Amount     *json.Number `json:"amount"`
	Memo       *string      `json:"memo"`
	ValidUntil *json.Number `json:"validUntil"`

	BlockHeight   *json.Number `json:"blockHeight"`
	Token         *string      `json:"token"`
	Hash          *string      `json:"hash"`
	FailureReason *string      `json:"failureReason"`
	DateTime      *string      `json:"dateTime"`
	IsDelegation  *bool        `json:"isDelegation"`
	Kind          *string      `json:"kind"`
	Type          *string      `json:"type"`
}

// DecodeDescriptionJSON parses a description, tolerating a leading UTF-8 BOM
// (0xEF,0xBB,0xBF) as written by some editors. JSON null means absent.
func DecodeDescriptionJSON(b []byte) (transaction.Description, error) {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		b = b[3:]
	}
	var raw descriptionJSON
	if err := jsonx.UnmarshalExact(b, &raw); err != nil {
		return transaction.Description{}, fmt.Errorf("codec: decode description: %w", err)
	}
	return raw.description()
}

func (r *descriptionJSON) description() (transaction.Description, error) {
	d := transaction.Description{
		To:            r.To,
		From:          r.From,
		Memo:          r.Memo,
		Token:         r.Token,
		Hash:          r.Hash,
		FailureReason: r.FailureReason,
		DateTime:      r.DateTime,
		IsDelegation:  r.IsDelegation,
	}
	var err error
	if d.Fee, err = parseAmount("fee", numberText(r.Fee)); err != nil {
		return d, err
	}
	if d.Amount, err = parseAmount("amount", numberText(r.Amount)); err != nil {
		return d, err
	}
	if d.Nonce, err = parseNonce(numberText(r.Nonce)); err != nil {
		return d, err
	}
	if d.ValidUntil, err = parseValidUntil(numberText(r.ValidUntil)); err != nil {
		return d, err
	}
	if d.BlockHeight, err = parseBlockHeight(numberText(r.BlockHeight)); err != nil {
		return d, err
	}
	if d.Kind, err = parseKind(r.Kind); err != nil {
		return d, err
	}
	if d.Type, err = parseKind(r.Type); err != nil {
		return d, err
	}
	return d, nil
}

// EncodeCanonicalJSON returns the signer-facing JSON of c.
func EncodeCanonicalJSON(c transaction.Canonical) ([]byte, error) {
	return jsonx.Marshal(c)
}

func numberText(n *json.Number) *string {
	if n == nil {
		return nil
	}
	s := n.String()
	return &s
}

func parseAmount(field string, s *string) (*uint256.Int, error) {
	if s == nil {
		return nil, nil
	}
	v, ok := wholeNumber(*s)
	if !ok {
		return nil, &txerrors.InvalidAmountError{Field: field, Value: *s}
	}
	return v, nil
}

func parseNonce(s *string) (*uint32, error) {
	if s == nil {
		return nil, nil
	}
	v, ok := wholeUint32(*s)
	if !ok {
		return nil, &txerrors.InvalidNonceError{Value: *s}
	}
	return &v, nil
}

func parseValidUntil(s *string) (*uint32, error) {
	if s == nil {
		return nil, nil
	}
	v, ok := wholeUint32(*s)
	if !ok {
		return nil, &txerrors.InvalidValidUntilError{Value: *s}
	}
	return &v, nil
}

func parseBlockHeight(s *string) (*uint64, error) {
	if s == nil {
		return nil, nil
	}
	v, ok := wholeNumber(*s)
	if !ok || !v.IsUint64() {
		return nil, fmt.Errorf("codec: invalid blockHeight %q", *s)
	}
	h := v.Uint64()
	return &h, nil
}

func parseKind(s *string) (*transaction.Kind, error) {
	if s == nil {
		return nil, nil
	}
	k, err := transaction.ParseKind(*s)
	if err != nil {
		return nil, err
	}
	return &k, nil
}
