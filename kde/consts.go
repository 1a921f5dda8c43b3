package kde

const (
	DefaultGridSize = 101

	// MinPointCnt is the fewest finite values a density is estimated from.
	MinPointCnt = 2

	// bandwidth used when the values have no spread
	minBandWidth = 1e-3
)
