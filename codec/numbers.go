package codec

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
)

// maxExponent bounds the decimal exponent wholeNumber expands. Anything past
// it cannot land in 256 bits with a mantissa of sane length.
const maxExponent = 256

// wholeNumber parses s as a non-negative integer that fits in 256 bits.
// Exponent and fraction forms are accepted when they denote a whole number,
// so 1e6 and 5.0 parse while 1.5 and 1e-3 do not.
func wholeNumber(s string) (*uint256.Int, bool) {
	if v, err := uint256.FromDecimal(s); err == nil {
		return v, true
	}
	if !strings.ContainsAny(s, ".eE") || strings.HasPrefix(s, "-") {
		return nil, false
	}
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		exp, err := strconv.Atoi(s[i+1:])
		if err != nil || exp > maxExponent || exp < -maxExponent {
			return nil, false
		}
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok || !r.IsInt() {
		return nil, false
	}
	v, overflow := uint256.FromBig(r.Num())
	if overflow {
		return nil, false
	}
	return v, true
}

func wholeUint32(s string) (uint32, bool) {
	v, ok := wholeNumber(s)
	if !ok || !v.IsUint64() || v.Uint64() > math.MaxUint32 {
		return 0, false
	}
	return uint32(v.Uint64()), true
}

func textNumber(s *string) *json.Number {
	if s == nil {
		return nil
	}
	n := json.Number(*s)
	return &n
}

func uintNumber(v *uint64) *json.Number {
	if v == nil {
		return nil
	}
	n := json.Number(strconv.FormatUint(*v, 10))
	return &n
}

func decimal(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}
