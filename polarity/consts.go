package polarity

const (
	// UpsampleFactor is the integer resampling factor applied before extrema detection.
	UpsampleFactor = 4
	// BaselineSamples is the number of leading samples averaged for baseline removal.
	BaselineSamples = 3

	// ThresholdCount is the number of values a threshold vector must carry.
	ThresholdCount = 4
)

const (
	DefaultZPBiphasic = 1.25
	DefaultZNBiphasic = -1.0
	DefaultZPPositive = 1.75
	DefaultZNNegative = -1.75

	DefaultBPILower = -0.6
	DefaultBPIUpper = 0.8
)
