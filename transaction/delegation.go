package transaction

import (
	"encoding/json"

	"github.com/holiman/uint256"
	"github.com/mezonai/mina-connector/jsonx"
)

// Delegation is the canonical stake delegation record. It moves no value, so it
// has no amount; To is the delegate.
type Delegation struct {
	To         string
	From       string
	Fee        *uint256.Int
	Nonce      uint32
	Memo       string
	ValidUntil uint32
}

type delegationJSON struct {
	To         string      `json:"to"`
	From       string      `json:"from"`
	Fee        json.Number `json:"fee"`
	Nonce      uint32      `json:"nonce"`
	Memo       string      `json:"memo"`
	ValidUntil uint32      `json:"validUntil"`
	Type       string      `json:"type"`
}

func (d *Delegation) Kind() Kind {
	return KindDelegation
}

func (d *Delegation) MarshalJSON() ([]byte, error) {
	return jsonx.Marshal(&delegationJSON{
		To:         d.To,
		From:       d.From,
		Fee:        amountNumber(d.Fee),
		Nonce:      d.Nonce,
		Memo:       d.Memo,
		ValidUntil: d.ValidUntil,
		Type:       KindDelegation.String(),
	})
}

func (d *Delegation) Bytes() []byte {
	b, _ := jsonx.Marshal(d)
	return b
}

func (d *Delegation) Hash() string {
	return fingerprint(d.Bytes())
}

// Describe turns d back into a Description, taking display and history fields
// from orig.
func (d *Delegation) Describe(orig Description) Description {
	out := Description{
		To:         d.To,
		From:       d.From,
		Fee:        cloneAmount(d.Fee),
		Nonce:      Ptr(d.Nonce),
		Memo:       Ptr(d.Memo),
		ValidUntil: Ptr(d.ValidUntil),
	}
	orig.carry(&out)
	return out
}
