package primitives

import "math/big"

func bigFromByte(b byte) *big.Int {
	return big.NewInt(int64(b))
}
