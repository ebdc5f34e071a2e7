// Package fixedpoint implements the 128-bit fixed-point arithmetic the
// pricing engine is built on. All values are uint256.Int instances that stay
// within the 128-bit domain; the helpers here reproduce unsigned 128-bit
// semantics (saturation, wrap-around) so results are deterministic and
// bit-stable across replays.
package fixedpoint

import (
	"github.com/holiman/uint256"
)

var (
	// Q96 is 2^96, the scaling factor for sqrt-price representation.
	Q96 = new(uint256.Int).Lsh(uint256.NewInt(1), 96)

	// MaxU128 is 2^128 - 1, the ceiling of the engine's numeric domain.
	MaxU128 = new(uint256.Int).SubUint64(new(uint256.Int).Lsh(uint256.NewInt(1), 128), 1)

	two128 = new(uint256.Int).Lsh(uint256.NewInt(1), 128)
)

// MulDiv computes floor(a*b/c) without overflowing and without trapping.
// If c is zero the result is zero. The product of two 128-bit operands
// always fits the 256-bit intermediate, so the quotient itself is exact;
// when it exceeds the 128-bit domain the result saturates to MaxU128. The
// saturating path trades precision for totality and callers must treat its
// result as an approximation, not an exact quotient.
func MulDiv(a, b, c *uint256.Int) *uint256.Int {
	if c.IsZero() {
		return new(uint256.Int)
	}

	product := new(uint256.Int).Mul(a, b)
	product.Div(product, c)
	if product.BitLen() > 128 {
		return MaxU128.Clone()
	}
	return product
}

// Sqrt returns floor(sqrt(x)) via Newton's method. The iteration is
// monotonically decreasing, so it terminates in O(log x) steps.
func Sqrt(x *uint256.Int) *uint256.Int {
	if x.IsZero() {
		return new(uint256.Int)
	}

	z := x.Clone()
	y := new(uint256.Int).AddUint64(x, 1)
	y.Rsh(y, 1)

	quot := new(uint256.Int)
	for y.Lt(z) {
		z.Set(y)
		quot.Div(x, y)
		y.Add(y, quot)
		y.Rsh(y, 1)
	}
	return z
}

// SatMul returns a*b clamped to MaxU128.
func SatMul(a, b *uint256.Int) *uint256.Int {
	product := new(uint256.Int).Mul(a, b)
	if product.BitLen() > 128 {
		return MaxU128.Clone()
	}
	return product
}

// SatAdd returns a+b clamped to MaxU128.
func SatAdd(a, b *uint256.Int) *uint256.Int {
	sum := new(uint256.Int).Add(a, b)
	if sum.BitLen() > 128 {
		return MaxU128.Clone()
	}
	return sum
}

// SatSub returns a-b, or zero when b exceeds a.
func SatSub(a, b *uint256.Int) *uint256.Int {
	if b.Gt(a) {
		return new(uint256.Int)
	}
	return new(uint256.Int).Sub(a, b)
}

// Trunc128 reduces x modulo 2^128, matching unsigned 128-bit wrap-around.
func Trunc128(x *uint256.Int) *uint256.Int {
	return new(uint256.Int).Mod(x, two128)
}
