package searcher

import (
	"errors"
	"math"
)

var ErrInvalidDepth = errors.New("invalid depth")

// Search window sentinels, beyond any finite leaf value
var (
	NegInf = math.Inf(-1)
	PosInf = math.Inf(1)
)
