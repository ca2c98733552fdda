package codec

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"github.com/mezonai/mina-connector/transaction"
)

type descriptionCBOR struct {
	To    string      `cbor:"to"`
	From  string      `cbor:"from"`
	Fee   *cborNumber `cbor:"fee,omitempty"`
	Nonce *cborNumber `cbor:"nonce,omitempty"`

	Amount     *cborNumber `cbor:"amount,omitempty"`
	Memo       *string     `cbor:"memo,omitempty"`
	ValidUntil *cborNumber `cbor:"validUntil,omitempty"`

	BlockHeight   *cborNumber `cbor:"blockHeight,omitempty"`
	Token         *string     `cbor:"token,omitempty"`
	Hash          *string     `cbor:"hash,omitempty"`
	FailureReason *string     `cbor:"failureReason,omitempty"`
	DateTime      *string     `cbor:"dateTime,omitempty"`
	IsDelegation  *bool       `cbor:"isDelegation,omitempty"`
	Kind          *string     `cbor:"kind,omitempty"`
	Type          *string     `cbor:"type,omitempty"`
}

// cborNumber is a numeric description field. It is written as an unsigned
// integer when it fits in 64 bits and as decimal text otherwise, so no CBOR
// integer width caps an amount. Reading accepts any integer, float or text
// item; the text form then goes through the same validation as JSON.
type cborNumber string

func newCBORNumber(s string) *cborNumber {
	n := cborNumber(s)
	return &n
}

func (n cborNumber) MarshalCBOR() ([]byte, error) {
	if v, err := strconv.ParseUint(string(n), 10, 64); err == nil {
		return encMode.Marshal(v)
	}
	return encMode.Marshal(string(n))
}

func (n *cborNumber) UnmarshalCBOR(b []byte) error {
	var v interface{}
	if err := cbor.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case string:
		*n = cborNumber(x)
	case uint64:
		*n = cborNumber(strconv.FormatUint(x, 10))
	case int64:
		*n = cborNumber(strconv.FormatInt(x, 10))
	case big.Int:
		*n = cborNumber(x.String())
	case *big.Int:
		*n = cborNumber(x.String())
	case float64:
		*n = cborNumber(strconv.FormatFloat(x, 'g', -1, 64))
	default:
		// left for validation to reject with the field's typed error
		*n = cborNumber(fmt.Sprint(x))
	}
	return nil
}

func (n *cborNumber) number() *json.Number {
	if n == nil {
		return nil
	}
	v := json.Number(*n)
	return &v
}

type canonicalCBOR struct {
	To         string  `cbor:"to"`
	From       string  `cbor:"from"`
	Amount     *string `cbor:"amount,omitempty"`
	Fee        string  `cbor:"fee"`
	Nonce      uint32  `cbor:"nonce"`
	Memo       string  `cbor:"memo"`
	ValidUntil uint32  `cbor:"validUntil"`
	Type       string  `cbor:"type"`
}

var encMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

func DecodeDescriptionCBOR(b []byte) (transaction.Description, error) {
	var raw descriptionCBOR
	if err := cbor.Unmarshal(b, &raw); err != nil {
		return transaction.Description{}, fmt.Errorf("codec: decode cbor description: %w", err)
	}
	// reuse the JSON validation path so both formats fail the same way
	j := descriptionJSON{
		To:            raw.To,
		From:          raw.From,
		Memo:          raw.Memo,
		Token:         raw.Token,
		Hash:          raw.Hash,
		FailureReason: raw.FailureReason,
		DateTime:      raw.DateTime,
		IsDelegation:  raw.IsDelegation,
		Kind:          raw.Kind,
		Type:          raw.Type,
	}
	j.Fee = raw.Fee.number()
	j.Amount = raw.Amount.number()
	j.Nonce = raw.Nonce.number()
	j.ValidUntil = raw.ValidUntil.number()
	j.BlockHeight = raw.BlockHeight.number()
	return j.description()
}

func EncodeDescriptionCBOR(d transaction.Description) ([]byte, error) {
	raw := descriptionCBOR{
		To:            d.To,
		From:          d.From,
		Memo:          d.Memo,
		Token:         d.Token,
		Hash:          d.Hash,
		FailureReason: d.FailureReason,
		DateTime:      d.DateTime,
		IsDelegation:  d.IsDelegation,
	}
	if d.Fee != nil {
		raw.Fee = newCBORNumber(d.Fee.Dec())
	}
	if d.Amount != nil {
		raw.Amount = newCBORNumber(d.Amount.Dec())
	}
	if d.Nonce != nil {
		raw.Nonce = newCBORNumber(strconv.FormatUint(uint64(*d.Nonce), 10))
	}
	if d.ValidUntil != nil {
		raw.ValidUntil = newCBORNumber(strconv.FormatUint(uint64(*d.ValidUntil), 10))
	}
	if d.BlockHeight != nil {
		raw.BlockHeight = newCBORNumber(strconv.FormatUint(*d.BlockHeight, 10))
	}
	if d.Kind != nil {
		raw.Kind = transaction.Ptr(d.Kind.String())
	}
	if d.Type != nil {
		raw.Type = transaction.Ptr(d.Type.String())
	}
	return encMode.Marshal(raw)
}

// EncodeCanonicalCBOR encodes c deterministically (RFC 8949 core deterministic
// encoding), so equal records produce equal bytes.
func EncodeCanonicalCBOR(c transaction.Canonical) ([]byte, error) {
	var raw canonicalCBOR
	switch v := c.(type) {
	case *transaction.Payment:
		raw = canonicalCBOR{
			To:         v.To,
			From:       v.From,
			Amount:     transaction.Ptr(decimal(v.Amount)),
			Fee:        decimal(v.Fee),
			Nonce:      v.Nonce,
			Memo:       v.Memo,
			ValidUntil: v.ValidUntil,
		}
	case *transaction.Delegation:
		raw = canonicalCBOR{
			To:         v.To,
			From:       v.From,
			Fee:        decimal(v.Fee),
			Nonce:      v.Nonce,
			Memo:       v.Memo,
			ValidUntil: v.ValidUntil,
		}
	default:
		return nil, fmt.Errorf("codec: no cbor form for %T", c)
	}
	raw.Type = c.Kind().String()
	return encMode.Marshal(raw)
}

// DecodeCanonicalCBOR reads a record written by EncodeCanonicalCBOR and
// normalizes it again, so anything returned is canonical.
func DecodeCanonicalCBOR(b []byte) (transaction.Canonical, error) {
	var raw canonicalCBOR
	if err := cbor.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("codec: decode cbor record: %w", err)
	}
	kind, err := transaction.ParseKind(raw.Type)
	if err != nil {
		return nil, err
	}
	j := descriptionJSON{
		To:         raw.To,
		From:       raw.From,
		Fee:        textNumber(&raw.Fee),
		Amount:     textNumber(raw.Amount),
		Nonce:      uintNumber(transaction.Ptr(uint64(raw.Nonce))),
		Memo:       &raw.Memo,
		ValidUntil: uintNumber(transaction.Ptr(uint64(raw.ValidUntil))),
	}
	d, err := j.description()
	if err != nil {
		return nil, err
	}
	return transaction.Normalize(kind, d)
}
