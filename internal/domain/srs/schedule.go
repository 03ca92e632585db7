package srs

import (
	"math"
	"time"
)

// nextDueAt converts a proficiency score and the learner's current backlog
// pressure into the next due timestamp.
//
// A confidence-0 miss bypasses everything and gets a fast fixed retry. Any
// other outcome is scheduled on an exponential curve from BaseInterval at
// proficiency 0 to BaseInterval * 2^GrowthRange at proficiency 1, stretched
// by the load factor when the learner's backlog is large. The result is
// always after now.
func nextDueAt(
	confidence int,
	proficiency float64,
	reviewLoad int,
	now time.Time,
	params *Params,
) time.Time {
	if confidence == 0 {
		return now.Add(params.FailureRetry)
	}

	baseMinutes := params.BaseInterval.Minutes() *
		math.Pow(2, params.GrowthRange*proficiency)
	minutes := baseMinutes * loadFactor(reviewLoad, params)

	return now.Add(time.Duration(minutes * float64(time.Minute)))
}

// loadFactor stretches future intervals when a learner's review backlog is
// large, spreading load out instead of letting it compound. It only affects
// scheduling; nothing is ever dropped.
//
// The factor is 1.0 up to the soft limit, grows linearly between the soft
// and hard limits, and is capped above the hard limit.
func loadFactor(reviewLoad int, params *Params) float64 {
	if reviewLoad <= params.LoadSoftLimit {
		return 1.0
	}
	if reviewLoad <= params.LoadHardLimit {
		return float64(reviewLoad+params.LoadSoftLimit) / float64(2*params.LoadSoftLimit)
	}
	return params.MaxLoadFactor
}
