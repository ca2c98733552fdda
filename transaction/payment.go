package transaction

import (
	"encoding/json"

	"github.com/holiman/uint256"
	"github.com/mezonai/mina-connector/jsonx"
)

// Payment is the canonical transfer-of-value record handed to the signer.
// Every field is populated; its kind is always KindPayment.
type Payment struct {
	To         string
	From       string
	Amount     *uint256.Int
	Fee        *uint256.Int
	Nonce      uint32
	Memo       string
	ValidUntil uint32
}

// paymentJSON fixes the field order and set the signer expects
type paymentJSON struct {
	To         string      `json:"to"`
	From       string      `json:"from"`
	Amount     json.Number `json:"amount"`
	Fee        json.Number `json:"fee"`
	Nonce      uint32      `json:"nonce"`
	Memo       string      `json:"memo"`
	ValidUntil uint32      `json:"validUntil"`
	Type       string      `json:"type"`
}

func (p *Payment) Kind() Kind {
	return KindPayment
}

func (p *Payment) MarshalJSON() ([]byte, error) {
	return jsonx.Marshal(&paymentJSON{
		To:         p.To,
		From:       p.From,
		Amount:     amountNumber(p.Amount),
		Fee:        amountNumber(p.Fee),
		Nonce:      p.Nonce,
		Memo:       p.Memo,
		ValidUntil: p.ValidUntil,
		Type:       KindPayment.String(),
	})
}

// Bytes is the canonical JSON encoding of the record.
func (p *Payment) Bytes() []byte {
	b, _ := jsonx.Marshal(p)
	return b
}

func (p *Payment) Hash() string {
	return fingerprint(p.Bytes())
}

// Describe turns p back into a Description, taking display and history fields
// from orig. Normalizing the result yields p again.
func (p *Payment) Describe(orig Description) Description {
	d := Description{
		To:         p.To,
		From:       p.From,
		Fee:        cloneAmount(p.Fee),
		Nonce:      Ptr(p.Nonce),
		Amount:     cloneAmount(p.Amount),
		Memo:       Ptr(p.Memo),
		ValidUntil: Ptr(p.ValidUntil),
	}
	orig.carry(&d)
	return d
}

func amountNumber(v *uint256.Int) json.Number {
	if v == nil {
		return "0"
	}
	return json.Number(v.Dec())
}
