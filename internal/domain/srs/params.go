package srs

import "time"

// Params defines all configurable parameters for the scheduling engine.
//
// One Params instance describes one learning domain. The three domains share
// the same formulas and differ only in their base interval and, potentially,
// their response-time limit.
type Params struct {
	// BaseInterval is the review interval granted at proficiency 0; the
	// exponential schedule maps proficiency 1 to BaseInterval * 2^GrowthRange.
	BaseInterval time.Duration

	// TimeLimit is the response time beyond which an attempt earns no speed
	// credit.
	TimeLimit time.Duration

	// FailureRetry is the fixed retry delay after a confidence-0 miss.
	FailureRetry time.Duration

	// Proficiency component weights. They should sum to 1.
	EasinessWeight float64
	IntervalWeight float64
	SpeedWeight    float64

	// EasinessFloor is the easiness credit granted at confidence 0. Together
	// with the weights it caps what confidence alone can contribute, so a
	// single tap can never certify total mastery.
	EasinessFloor float64

	// GrowthRange is the log2 span of the interval component and the exponent
	// range of the due-date schedule: the interval credit saturates once the
	// gap reaches BaseInterval * 2^GrowthRange.
	GrowthRange float64

	// ModeThreshold is the proficiency-track imbalance beyond which the mode
	// selector stops sampling and deterministically drills the weaker side.
	ModeThreshold float64

	// Review-load backpressure knee points: below LoadSoftLimit the schedule
	// is unstretched, between the limits the stretch grows linearly, above
	// LoadHardLimit it is capped at MaxLoadFactor.
	LoadSoftLimit int
	LoadHardLimit int
	MaxLoadFactor float64
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero-valued fields keep their defaults.
type ParamsConfig struct {
	BaseInterval time.Duration
	TimeLimit    time.Duration
	FailureRetry time.Duration

	EasinessWeight float64
	IntervalWeight float64
	SpeedWeight    float64
	EasinessFloor  float64
	GrowthRange    float64

	ModeThreshold float64

	LoadSoftLimit int
	LoadHardLimit int
	MaxLoadFactor float64
}

// NewDefaultParams creates a new Params instance with default values.
// The defaults are the vocabulary/kana tuning: a six-hour base interval and
// a ten-second response limit.
func NewDefaultParams() *Params {
	return &Params{
		BaseInterval: 360 * time.Minute,
		TimeLimit:    10 * time.Second,
		FailureRetry: 5 * time.Minute,

		EasinessWeight: 0.4,
		IntervalWeight: 0.4,
		SpeedWeight:    0.2,
		EasinessFloor:  0.1,
		GrowthRange:    8,

		ModeThreshold: 0.4,

		LoadSoftLimit: 100,
		LoadHardLimit: 500,
		MaxLoadFactor: 3.0,
	}
}

// NewSentenceParams creates the sentence-domain tuning: the same curve on a
// twelve-hour base interval.
func NewSentenceParams() *Params {
	params := NewDefaultParams()
	params.BaseInterval = 720 * time.Minute
	return params
}

// NewParams creates a new Params instance, applying any non-zero overrides
// from the given configuration on top of the defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.BaseInterval > 0 {
		params.BaseInterval = config.BaseInterval
	}
	if config.TimeLimit > 0 {
		params.TimeLimit = config.TimeLimit
	}
	if config.FailureRetry > 0 {
		params.FailureRetry = config.FailureRetry
	}

	if config.EasinessWeight > 0 {
		params.EasinessWeight = config.EasinessWeight
	}
	if config.IntervalWeight > 0 {
		params.IntervalWeight = config.IntervalWeight
	}
	if config.SpeedWeight > 0 {
		params.SpeedWeight = config.SpeedWeight
	}
	if config.EasinessFloor > 0 {
		params.EasinessFloor = config.EasinessFloor
	}
	if config.GrowthRange > 0 {
		params.GrowthRange = config.GrowthRange
	}

	if config.ModeThreshold > 0 {
		params.ModeThreshold = config.ModeThreshold
	}

	if config.LoadSoftLimit > 0 {
		params.LoadSoftLimit = config.LoadSoftLimit
	}
	if config.LoadHardLimit > 0 {
		params.LoadHardLimit = config.LoadHardLimit
	}
	if config.MaxLoadFactor > 0 {
		params.MaxLoadFactor = config.MaxLoadFactor
	}

	return params
}
