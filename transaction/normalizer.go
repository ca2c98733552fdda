package transaction

import (
	"math"

	"github.com/holiman/uint256"
	txerrors "github.com/mezonai/mina-connector/errors"
)

const (
	// DefaultValidUntil is the "never expires" block height. It must equal the
	// signer's own defaultValidUntil so the signed payload and the recomputed hash agree.
	DefaultValidUntil uint32 = math.MaxUint32

	// DefaultMaxMemoBytes is the signer's memo capacity.
	DefaultMaxMemoBytes = 32
)

// Canonical is a fully populated record ready for the signer.
type Canonical interface {
	Kind() Kind
	Bytes() []byte
	Hash() string
}

type NormalizerConfig struct {
	// DefaultValidUntil replaces an absent or zero validUntil. Zero here means
	// DefaultValidUntil ("never expires"); any other value turns an absent
	// validUntil into a finite expiry at that block height.
	DefaultValidUntil uint32
	// MaxMemoBytes bounds memo length. Zero or negative disables the check.
	MaxMemoBytes int
}

func DefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		DefaultValidUntil: DefaultValidUntil,
		MaxMemoBytes:      DefaultMaxMemoBytes,
	}
}

// Normalizer turns descriptions into canonical records. It holds no mutable
// state and is safe for concurrent use.
type Normalizer struct {
	cfg NormalizerConfig
}

func NewNormalizer(cfg NormalizerConfig) *Normalizer {
	if cfg.DefaultValidUntil == 0 {
		cfg.DefaultValidUntil = DefaultValidUntil
	}
	return &Normalizer{cfg: cfg}
}

func (n *Normalizer) Config() NormalizerConfig {
	return n.cfg
}

var defaultNormalizer = NewNormalizer(DefaultNormalizerConfig())

// NormalizePayment builds the canonical payment for d with the default configuration.
// Besides MissingFieldError it returns MemoTooLongError for a memo over
// DefaultMaxMemoBytes; use a Normalizer with MaxMemoBytes <= 0 to skip that check.
func NormalizePayment(d Description) (*Payment, error) {
	return defaultNormalizer.NormalizePayment(d)
}

func NormalizeDelegation(d Description) (*Delegation, error) {
	return defaultNormalizer.NormalizeDelegation(d)
}

func NormalizeZkApp(d Description) (Canonical, error) {
	return defaultNormalizer.NormalizeZkApp(d)
}

func Normalize(kind Kind, d Description) (Canonical, error) {
	return defaultNormalizer.Normalize(kind, d)
}

// Normalize dispatches d to the rules of kind.
func (n *Normalizer) Normalize(kind Kind, d Description) (Canonical, error) {
	switch kind {
	case KindPayment:
		p, err := n.NormalizePayment(d)
		if err != nil {
			return nil, err
		}
		return p, nil
	case KindDelegation:
		del, err := n.NormalizeDelegation(d)
		if err != nil {
			return nil, err
		}
		return del, nil
	case KindZkApp:
		return n.NormalizeZkApp(d)
	default:
		return nil, &txerrors.InvalidKindError{Value: kind.String()}
	}
}

// NormalizePayment fills amount, memo and validUntil with their defaults and tags
// the result as a payment, whatever kind or type hint d carries.
//
// It fails with MissingFieldError when to, from, fee or nonce is absent, checked
// in that order. When MaxMemoBytes is positive (DefaultMaxMemoBytes by default)
// a longer memo fails with MemoTooLongError, since the signer cannot encode it.
func (n *Normalizer) NormalizePayment(d Description) (*Payment, error) {
	if err := requireCommon(d); err != nil {
		return nil, err
	}
	memo, err := n.memo(d)
	if err != nil {
		return nil, err
	}

	amount := cloneAmount(d.Amount)
	if amount == nil {
		amount = new(uint256.Int)
	}

	return &Payment{
		To:         d.To,
		From:       d.From,
		Amount:     amount,
		Fee:        cloneAmount(d.Fee),
		Nonce:      *d.Nonce,
		Memo:       memo,
		ValidUntil: n.validUntil(d),
	}, nil
}

// NormalizeDelegation applies the memo and validUntil defaults. A delegation
// carrying a non-zero amount is rejected rather than silently dropping value.
func (n *Normalizer) NormalizeDelegation(d Description) (*Delegation, error) {
	if err := requireCommon(d); err != nil {
		return nil, err
	}
	if d.Amount != nil && !d.Amount.IsZero() {
		return nil, &txerrors.InvalidAmountError{Field: "amount", Value: d.Amount.Dec()}
	}
	memo, err := n.memo(d)
	if err != nil {
		return nil, err
	}

	return &Delegation{
		To:         d.To,
		From:       d.From,
		Fee:        cloneAmount(d.Fee),
		Nonce:      *d.Nonce,
		Memo:       memo,
		ValidUntil: n.validUntil(d),
	}, nil
}

// NormalizeZkApp always fails: zkApp commands have no canonicalization rules yet
// and must not fall back to payment defaults.
func (n *Normalizer) NormalizeZkApp(Description) (Canonical, error) {
	return nil, &txerrors.UnsupportedKindError{Kind: KindZkApp.String()}
}

func requireCommon(d Description) error {
	switch {
	case d.To == "":
		return &txerrors.MissingFieldError{Field: "to"}
	case d.From == "":
		return &txerrors.MissingFieldError{Field: "from"}
	case d.Fee == nil:
		return &txerrors.MissingFieldError{Field: "fee"}
	case d.Nonce == nil:
		return &txerrors.MissingFieldError{Field: "nonce"}
	}
	return nil
}

func (n *Normalizer) memo(d Description) (string, error) {
	if d.Memo == nil {
		return "", nil
	}
	if n.cfg.MaxMemoBytes > 0 && len(*d.Memo) > n.cfg.MaxMemoBytes {
		return "", &txerrors.MemoTooLongError{Length: len(*d.Memo), Max: n.cfg.MaxMemoBytes}
	}
	return *d.Memo, nil
}

// validUntil treats an explicit zero as absent, matching what wallets send for "no expiry".
func (n *Normalizer) validUntil(d Description) uint32 {
	if d.ValidUntil == nil || *d.ValidUntil == 0 {
		return n.cfg.DefaultValidUntil
	}
	return *d.ValidUntil
}
