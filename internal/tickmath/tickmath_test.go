package tickmath

import (
	"testing"

	"github.com/holiman/uint256"

	"clmmCore/internal/fixedpoint"
)

func TestSqrtRatioAtTickZeroIsQ96(t *testing.T) {
	want := uint256.MustFromDecimal("79228162514264337593543950336") // 2^96
	got := SqrtRatioAtTick(0)
	if !got.Eq(want) {
		t.Fatalf("SqrtRatioAtTick(0) = %s, want %s", got.Dec(), want.Dec())
	}
	if !fixedpoint.Q96.Eq(want) {
		t.Fatalf("Q96 constant = %s, want %s", fixedpoint.Q96.Dec(), want.Dec())
	}
}

func TestSqrtRatioAtTickOutOfRange(t *testing.T) {
	for _, tick := range []int32{MinTick - 1, MaxTick + 1, -2_000_000, 2_000_000} {
		if got := SqrtRatioAtTick(tick); !got.IsZero() {
			t.Fatalf("SqrtRatioAtTick(%d) = %s, want sentinel 0", tick, got.Dec())
		}
	}
}

func TestSqrtRatioAtTickBounds(t *testing.T) {
	if got := SqrtRatioAtTick(MinTick); got.Lt(MinSqrtRatio) {
		t.Fatalf("SqrtRatioAtTick(MinTick) = %s below MinSqrtRatio", got.Dec())
	}
	if got := SqrtRatioAtTick(MaxTick); got.Gt(MaxSqrtRatio) {
		t.Fatalf("SqrtRatioAtTick(MaxTick) = %s above MaxSqrtRatio", got.Dec())
	}
}

// The mapping is strictly increasing tick by tick; the sweep crosses the
// bit-8 boundary at |tick| = 256 where every low table bit flips at once.
func TestSqrtRatioAtTickStrictlyMonotone(t *testing.T) {
	prev := SqrtRatioAtTick(-600)
	for tick := int32(-599); tick <= 600; tick++ {
		cur := SqrtRatioAtTick(tick)
		if !cur.Gt(prev) {
			t.Fatalf("ratio did not increase from tick %d to %d: %s >= %s", tick-1, tick, prev.Dec(), cur.Dec())
		}
		prev = cur
	}
}

// Across the whole domain the mapping never decreases; near the ends it may
// plateau on the clamps.
func TestSqrtRatioAtTickMonotoneFullDomain(t *testing.T) {
	prev := SqrtRatioAtTick(MinTick)
	for tick := MinTick + 97; tick <= MaxTick; tick += 97 {
		cur := SqrtRatioAtTick(tick)
		if cur.Lt(prev) {
			t.Fatalf("ratio decreased at tick %d: %s > %s", tick, prev.Dec(), cur.Dec())
		}
		prev = cur
	}
}

func TestTickAtSqrtRatioRoundTrip(t *testing.T) {
	check := func(tick int32) {
		ratio := SqrtRatioAtTick(tick)
		got := TickAtSqrtRatio(ratio)
		diff := got - tick
		if diff < -1 || diff > 1 {
			t.Fatalf("round trip tick %d -> %s -> %d", tick, ratio.Dec(), got)
		}
	}

	// Every tick in the low range, including the old bit-8 boundary.
	for tick := int32(-255); tick <= 255; tick++ {
		check(tick)
	}

	// Samples across the domain up to where the ratio hits the 128-bit
	// ceiling (about tick 443636); beyond that all ticks clamp to
	// MaxSqrtRatio and the mapping is not invertible.
	for tick := int32(-887272); tick <= 443000; tick += 7919 {
		check(tick)
	}
}

func TestTickAtSqrtRatioFloorSemantics(t *testing.T) {
	// Exactly Q96 is tick 0; one unit above still floors to 0.
	if got := TickAtSqrtRatio(fixedpoint.Q96); got != 0 {
		t.Fatalf("TickAtSqrtRatio(Q96) = %d, want 0", got)
	}
	aboveQ96 := new(uint256.Int).AddUint64(fixedpoint.Q96, 1)
	if got := TickAtSqrtRatio(aboveQ96); got != 0 {
		t.Fatalf("TickAtSqrtRatio(Q96+1) = %d, want 0", got)
	}

	// Just above the tick-50 ratio floors to 50.
	ratio50 := SqrtRatioAtTick(50)
	if got := TickAtSqrtRatio(new(uint256.Int).AddUint64(ratio50, 1)); got != 50 {
		t.Fatalf("TickAtSqrtRatio(ratio(50)+1) = %d, want 50", got)
	}
}

// Crossing from tick 255 to 256 moves the decomposition onto the k=8 table
// entry; the ratio must keep growing rather than fall back toward Q96.
func TestSqrtRatioAtTickBit8Boundary(t *testing.T) {
	r255 := SqrtRatioAtTick(255)
	r256 := SqrtRatioAtTick(256)
	if !r256.Gt(r255) {
		t.Fatalf("ratio(256) = %s, not above ratio(255) = %s", r256.Dec(), r255.Dec())
	}
	if !r256.Gt(fixedpoint.Q96) {
		t.Fatalf("ratio(256) = %s, want above Q96", r256.Dec())
	}

	if got := TickAtSqrtRatio(SqrtRatioAtTick(-255)); got != -255 {
		t.Fatalf("TickAtSqrtRatio(ratio(-255)) = %d, want -255", got)
	}
}

func TestTickAtSqrtRatioDomainEnds(t *testing.T) {
	if got := TickAtSqrtRatio(MaxSqrtRatio); got != MaxTick {
		t.Fatalf("TickAtSqrtRatio(MaxSqrtRatio) = %d, want %d", got, MaxTick)
	}
	if got := TickAtSqrtRatio(MinSqrtRatio); got != MinTick {
		t.Fatalf("TickAtSqrtRatio(MinSqrtRatio) = %d, want %d", got, MinTick)
	}
}

func TestTickAtSqrtRatioOutOfDomain(t *testing.T) {
	below := new(uint256.Int).SubUint64(MinSqrtRatio, 1)
	if got := TickAtSqrtRatio(below); got != 0 {
		t.Fatalf("TickAtSqrtRatio(below MinSqrtRatio) = %d, want sentinel 0", got)
	}
}

func TestPriceConversions(t *testing.T) {
	q96 := fixedpoint.Q96

	// Price 1.0 round-trips exactly.
	if got := PriceFromSqrtPrice(q96); !got.Eq(q96) {
		t.Fatalf("PriceFromSqrtPrice(Q96) = %s, want Q96", got.Dec())
	}
	if got := SqrtPriceFromPrice(q96); !got.Eq(q96) {
		t.Fatalf("SqrtPriceFromPrice(Q96) = %s, want Q96", got.Dec())
	}

	// Price 4.0 has sqrt-price 2.0.
	price4 := new(uint256.Int).Lsh(q96, 2)
	twoQ96 := new(uint256.Int).Lsh(q96, 1)
	if got := SqrtPriceFromPrice(price4); !got.Eq(twoQ96) {
		t.Fatalf("SqrtPriceFromPrice(4*Q96) = %s, want 2*Q96", got.Dec())
	}
	if got := PriceFromSqrtPrice(twoQ96); !got.Eq(price4) {
		t.Fatalf("PriceFromSqrtPrice(2*Q96) = %s, want 4*Q96", got.Dec())
	}

	if got := SqrtPriceFromPrice(new(uint256.Int)); !got.IsZero() {
		t.Fatalf("SqrtPriceFromPrice(0) = %s, want 0", got.Dec())
	}
}

func TestSqrtRatioAtTickIdempotent(t *testing.T) {
	for _, tick := range []int32{-887272, -255, -1, 0, 1, 100, 887272} {
		first := SqrtRatioAtTick(tick)
		second := SqrtRatioAtTick(tick)
		if !first.Eq(second) {
			t.Fatalf("SqrtRatioAtTick(%d) not idempotent: %s != %s", tick, first.Dec(), second.Dec())
		}
	}
}

func TestTickAtSqrtRatioDoesNotMutateInput(t *testing.T) {
	in := SqrtRatioAtTick(42)
	saved := in.Clone()
	TickAtSqrtRatio(in)
	if !in.Eq(saved) {
		t.Fatalf("TickAtSqrtRatio mutated its input")
	}
}
