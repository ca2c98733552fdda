package transaction

import (
	"math/rand"
	"strings"
	"sync"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/holiman/uint256"
	txerrors "github.com/mezonai/mina-connector/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseDescription() Description {
	return Description{
		To:    "B62A",
		From:  "B62B",
		Fee:   Amount(1_000_000),
		Nonce: Ptr(uint32(3)),
	}
}

func TestNormalizePayment_DefaultsOptionalFields(t *testing.T) {
	p, err := NormalizePayment(baseDescription())
	require.NoError(t, err)

	assert.Equal(t, &Payment{
		To:         "B62A",
		From:       "B62B",
		Amount:     uint256.NewInt(0),
		Fee:        uint256.NewInt(1_000_000),
		Nonce:      3,
		Memo:       "",
		ValidUntil: 4294967295,
	}, p)
	assert.Equal(t, KindPayment, p.Kind())
	assert.JSONEq(t,
		`{"to":"B62A","from":"B62B","amount":0,"fee":1000000,"nonce":3,"memo":"","validUntil":4294967295,"type":"payment"}`,
		string(p.Bytes()))
}

func TestNormalizePayment_KeepsProvidedFields(t *testing.T) {
	d := baseDescription()
	d.Amount = Amount(5_000_000)
	d.Memo = Ptr("thanks")
	d.ValidUntil = Ptr(uint32(500_000))

	p, err := NormalizePayment(d)
	require.NoError(t, err)

	assert.Equal(t, "5000000", p.Amount.Dec())
	assert.Equal(t, "thanks", p.Memo)
	assert.Equal(t, uint32(500_000), p.ValidUntil)
	assert.Equal(t, "1000000", p.Fee.Dec())
	assert.Equal(t, uint32(3), p.Nonce)
	assert.JSONEq(t,
		`{"to":"B62A","from":"B62B","amount":5000000,"fee":1000000,"nonce":3,"memo":"thanks","validUntil":500000,"type":"payment"}`,
		string(p.Bytes()))
}

func TestNormalizePayment_ZeroValidUntilMeansNoExpiry(t *testing.T) {
	d := baseDescription()
	d.ValidUntil = Ptr(uint32(0))

	p, err := NormalizePayment(d)
	require.NoError(t, err)
	assert.Equal(t, DefaultValidUntil, p.ValidUntil)
}

func TestNormalizePayment_EmptyMemoEqualsAbsent(t *testing.T) {
	withEmpty := baseDescription()
	withEmpty.Memo = Ptr("")

	a, err := NormalizePayment(withEmpty)
	require.NoError(t, err)
	b, err := NormalizePayment(baseDescription())
	require.NoError(t, err)

	assert.Equal(t, "", a.Memo)
	assert.Equal(t, b, a)
}

func TestNormalizePayment_ExplicitZeroAmount(t *testing.T) {
	d := baseDescription()
	d.Amount = Amount(0)

	p, err := NormalizePayment(d)
	require.NoError(t, err)
	assert.True(t, p.Amount.IsZero())
}

func TestNormalizePayment_LargeAmountIsExact(t *testing.T) {
	big, err := uint256.FromDecimal("123456789012345678901234567890")
	require.NoError(t, err)
	d := baseDescription()
	d.Amount = big

	p, err := NormalizePayment(d)
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890", p.Amount.Dec())
	assert.Contains(t, string(p.Bytes()), `"amount":123456789012345678901234567890`)
}

func TestNormalizePayment_IgnoresKindHints(t *testing.T) {
	d := baseDescription()
	d.Kind = Ptr(KindDelegation)
	d.Type = Ptr(KindZkApp)
	d.IsDelegation = Ptr(true)

	p, err := NormalizePayment(d)
	require.NoError(t, err)
	assert.Equal(t, KindPayment, p.Kind())
	assert.Contains(t, string(p.Bytes()), `"type":"payment"`)
}

func TestNormalizePayment_DropsHistoryFields(t *testing.T) {
	d := baseDescription()
	d.BlockHeight = Ptr(uint64(42))
	d.Token = Ptr("wMINA")
	d.Hash = Ptr("CkpZ")
	d.FailureReason = Ptr("none")
	d.DateTime = Ptr("2024-01-01T00:00:00Z")

	p, err := NormalizePayment(d)
	require.NoError(t, err)

	body := string(p.Bytes())
	for _, field := range []string{"blockHeight", "token", "hash", "failureReason", "dateTime", "isDelegation", "kind"} {
		assert.NotContains(t, body, `"`+field+`"`)
	}
}

func TestNormalizePayment_MissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Description)
		field  string
	}{
		{"to", func(d *Description) { d.To = "" }, "to"},
		{"from", func(d *Description) { d.From = "" }, "from"},
		{"fee", func(d *Description) { d.Fee = nil }, "fee"},
		{"nonce", func(d *Description) { d.Nonce = nil }, "nonce"},
		{"first missing wins", func(d *Description) {
			d.From = ""
			d.Nonce = nil
		}, "from"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := baseDescription()
			tc.mutate(&d)

			p, err := NormalizePayment(d)
			assert.Nil(t, p)
			var missing *txerrors.MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tc.field, missing.Field)
			assert.Equal(t, txerrors.ErrCodeMissingField, txerrors.CodeOf(err))
		})
	}
}

func TestNormalizePayment_MemoLimit(t *testing.T) {
	d := baseDescription()
	d.Memo = Ptr(strings.Repeat("m", DefaultMaxMemoBytes))
	_, err := NormalizePayment(d)
	require.NoError(t, err)

	d.Memo = Ptr(strings.Repeat("m", DefaultMaxMemoBytes+1))
	_, err = NormalizePayment(d)
	var tooLong *txerrors.MemoTooLongError
	require.ErrorAs(t, err, &tooLong)
	assert.Equal(t, DefaultMaxMemoBytes+1, tooLong.Length)

	unlimited := NewNormalizer(NormalizerConfig{MaxMemoBytes: 0})
	p, err := unlimited.NormalizePayment(d)
	require.NoError(t, err)
	assert.Len(t, p.Memo, DefaultMaxMemoBytes+1)
}

func TestNewNormalizer_CustomValidUntil(t *testing.T) {
	n := NewNormalizer(NormalizerConfig{DefaultValidUntil: 290_000})
	p, err := n.NormalizePayment(baseDescription())
	require.NoError(t, err)
	assert.Equal(t, uint32(290_000), p.ValidUntil)

	zero := NewNormalizer(NormalizerConfig{})
	assert.Equal(t, DefaultValidUntil, zero.Config().DefaultValidUntil)
}

func TestNormalizePayment_DoesNotMutateOrAliasInput(t *testing.T) {
	d := baseDescription()
	d.Amount = Amount(7)
	d.Memo = Ptr("hi")

	p, err := NormalizePayment(d)
	require.NoError(t, err)

	p.Amount.SetUint64(99)
	p.Fee.SetUint64(99)
	assert.Equal(t, uint64(7), d.Amount.Uint64())
	assert.Equal(t, uint64(1_000_000), d.Fee.Uint64())
	assert.Equal(t, "hi", *d.Memo)
}

func TestNormalizePayment_Idempotent(t *testing.T) {
	d := baseDescription()
	d.Token = Ptr("MINA")
	d.BlockHeight = Ptr(uint64(10))

	first, err := NormalizePayment(d)
	require.NoError(t, err)
	again, err := NormalizePayment(first.Describe(d))
	require.NoError(t, err)

	assert.Equal(t, first, again)
	assert.Equal(t, first.Hash(), again.Hash())
}

type fuzzedDescription struct {
	To          string
	From        string
	Fee         uint64
	Nonce       uint32
	Amount      *uint64
	Memo        *string
	ValidUntil  *uint32
	BlockHeight *uint64
	Token       *string
}

func (f fuzzedDescription) description() Description {
	d := Description{
		To:          "B62" + f.To,
		From:        "B62" + f.From,
		Fee:         Amount(f.Fee),
		Nonce:       Ptr(f.Nonce),
		Memo:        f.Memo,
		ValidUntil:  f.ValidUntil,
		BlockHeight: f.BlockHeight,
		Token:       f.Token,
	}
	if f.Amount != nil {
		d.Amount = Amount(*f.Amount)
	}
	return d
}

func TestNormalizePayment_Properties(t *testing.T) {
	n := NewNormalizer(NormalizerConfig{MaxMemoBytes: 0})
	f := fuzz.New().NilChance(0.4).RandSource(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		var in fuzzedDescription
		f.Fuzz(&in)
		d := in.description()

		p, err := n.NormalizePayment(d)
		require.NoError(t, err)

		if in.Amount != nil {
			assert.Equal(t, *in.Amount, p.Amount.Uint64())
		} else {
			assert.True(t, p.Amount.IsZero())
		}
		if in.Memo != nil {
			assert.Equal(t, *in.Memo, p.Memo)
		} else {
			assert.Equal(t, "", p.Memo)
		}
		if in.ValidUntil != nil && *in.ValidUntil != 0 {
			assert.Equal(t, *in.ValidUntil, p.ValidUntil)
		} else {
			assert.Equal(t, DefaultValidUntil, p.ValidUntil)
		}
		assert.Equal(t, KindPayment, p.Kind())

		again, err := n.NormalizePayment(p.Describe(d))
		require.NoError(t, err)
		assert.Equal(t, p, again)
	}
}

func TestNormalizePayment_Concurrent(t *testing.T) {
	want, err := NormalizePayment(baseDescription())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Payment, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = NormalizePayment(baseDescription())
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestNormalizeDelegation(t *testing.T) {
	d := baseDescription()
	d.Memo = Ptr("stake")

	del, err := NormalizeDelegation(d)
	require.NoError(t, err)
	assert.Equal(t, KindDelegation, del.Kind())
	assert.Equal(t, DefaultValidUntil, del.ValidUntil)
	assert.JSONEq(t,
		`{"to":"B62A","from":"B62B","fee":1000000,"nonce":3,"memo":"stake","validUntil":4294967295,"type":"delegation"}`,
		string(del.Bytes()))

	again, err := NormalizeDelegation(del.Describe(d))
	require.NoError(t, err)
	assert.Equal(t, del, again)
}

func TestNormalizeDelegation_RejectsAmount(t *testing.T) {
	d := baseDescription()
	d.Amount = Amount(0)
	_, err := NormalizeDelegation(d)
	require.NoError(t, err)

	d.Amount = Amount(5)
	_, err = NormalizeDelegation(d)
	var invalid *txerrors.InvalidAmountError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "amount", invalid.Field)
	assert.Equal(t, "5", invalid.Value)
}

func TestNormalizeZkApp_Unsupported(t *testing.T) {
	c, err := NormalizeZkApp(baseDescription())
	assert.Nil(t, c)
	var unsupported *txerrors.UnsupportedKindError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "zkApp", unsupported.Kind)
}

func TestNormalize_Dispatch(t *testing.T) {
	c, err := Normalize(KindPayment, baseDescription())
	require.NoError(t, err)
	assert.IsType(t, &Payment{}, c)

	c, err = Normalize(KindDelegation, baseDescription())
	require.NoError(t, err)
	assert.IsType(t, &Delegation{}, c)

	c, err = Normalize(KindZkApp, baseDescription())
	assert.Nil(t, c)
	assert.Equal(t, txerrors.ErrCodeUnsupportedKind, txerrors.CodeOf(err))

	c, err = Normalize(Kind(0), baseDescription())
	assert.Nil(t, c)
	assert.Equal(t, txerrors.ErrCodeInvalidKind, txerrors.CodeOf(err))

	d := baseDescription()
	d.To = ""
	c, err = Normalize(KindPayment, d)
	assert.Nil(t, c)
	assert.Error(t, err)
}

func TestHash_StableAndDistinct(t *testing.T) {
	a, err := NormalizePayment(baseDescription())
	require.NoError(t, err)
	b, err := NormalizePayment(baseDescription())
	require.NoError(t, err)
	assert.Equal(t, a.Hash(), b.Hash())

	d := baseDescription()
	d.Nonce = Ptr(uint32(4))
	c, err := NormalizePayment(d)
	require.NoError(t, err)
	assert.NotEqual(t, a.Hash(), c.Hash())
	assert.NotEmpty(t, a.Hash())
}
