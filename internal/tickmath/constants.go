package tickmath

import (
	"github.com/holiman/uint256"

	"clmmCore/internal/fixedpoint"
)

const (
	// MinTick and MaxTick bound the discrete price index. price = 1.0001^tick.
	MinTick int32 = -887272
	MaxTick int32 = 887272
)

var (
	// MinSqrtRatio is the sqrt-price at MinTick, the smallest valid Q96 price.
	MinSqrtRatio = uint256.NewInt(4295128739)

	// MaxSqrtRatio caps the sqrt-price domain at the 128-bit ceiling.
	MaxSqrtRatio = fixedpoint.MaxU128.Clone()
)

// sqrtMultipliers[k] holds sqrt(1.0001^(2^k)) scaled by multiplierScale, so
// applying the entries selected by the binary expansion of |tick| yields
// sqrt(1.0001^|tick|). The table covers every bit of |tick| <= MaxTick
// (2^19 < 887272 < 2^20), keeping the mapping monotone over the whole tick
// domain. Each value is round(1.0001^(2^(k-1)) * 1e8):
//
//	k=0:  1.0001^0.5    = 1.00004999...
//	k=1:  1.0001^1      = 1.00010000
//	k=2:  1.0001^2      = 1.00020001
//	k=3:  1.0001^4      = 1.00040006
//	k=4:  1.0001^8      = 1.00080028
//	k=5:  1.0001^16     = 1.00160120
//	k=6:  1.0001^32     = 1.00320496
//	k=7:  1.0001^64     = 1.00642020
//	k=8:  1.0001^128    = 1.01288162
//	k=9:  1.0001^256    = 1.02592918
//	k=10: 1.0001^512    = 1.05253068
//	k=11: 1.0001^1024   = 1.10782084
//	k=12: 1.0001^2048   = 1.22726702
//	k=13: 1.0001^4096   = 1.50618433
//	k=14: 1.0001^8192   = 2.26859125
//	k=15: 1.0001^16384  = 5.14650625
//	k=16: 1.0001^32768  = 26.48652653
//	k=17: 1.0001^65536  = 701.53608770
//	k=18: 1.0001^131072 = 492152.88234891
//	k=19: 1.0001^262144 = 242214459604.34106565
var sqrtMultipliers = [20]*uint256.Int{
	uint256.NewInt(100005000),
	uint256.NewInt(100010000),
	uint256.NewInt(100020001),
	uint256.NewInt(100040006),
	uint256.NewInt(100080028),
	uint256.NewInt(100160120),
	uint256.NewInt(100320496),
	uint256.NewInt(100642020),
	uint256.NewInt(101288162),
	uint256.NewInt(102592918),
	uint256.NewInt(105253068),
	uint256.NewInt(110782084),
	uint256.NewInt(122726702),
	uint256.NewInt(150618433),
	uint256.NewInt(226859125),
	uint256.NewInt(514650625),
	uint256.NewInt(2648652653),
	uint256.NewInt(70153608770),
	uint256.NewInt(49215288234891),
	uint256.MustFromDecimal("24221445960434106565"),
}

// multiplierScale is the 1e8 fixed-point scale of sqrtMultipliers.
var multiplierScale = uint256.NewInt(100000000)

// tickSearchIterations bounds the binary search in TickAtSqrtRatio:
// ceil(log2(MaxTick-MinTick)) = 21. The bound is fixed so execution cost
// does not depend on the input.
const tickSearchIterations = 21
