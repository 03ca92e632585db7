package srs

import (
	"math"
	"time"
)

// estimateProficiency converts a single learning attempt into a 0..1 mastery
// score. It blends three signals:
//
//   - easiness: the learner's self-rated confidence, floored so a miss still
//     scores something and capped so confidence alone cannot reach 1.
//   - interval: how long the learner went without seeing the unit before
//     recalling it. Zero on the first attempt, saturating once the gap
//     reaches BaseInterval * 2^GrowthRange.
//   - speed: how quickly the learner answered, zero once the response time
//     exceeds the limit.
//
// lastUpdated is the previous record's update time, or the zero time when no
// previous record exists.
func estimateProficiency(
	confidence int,
	responseTime time.Duration,
	lastUpdated time.Time,
	now time.Time,
	params *Params,
) float64 {
	easiness := params.EasinessFloor +
		(float64(confidence)/3.0)*(1.0-2.0*params.EasinessFloor)
	easiness = clip01(easiness)

	interval := 0.0
	if !lastUpdated.IsZero() {
		elapsedMinutes := now.Sub(lastUpdated).Minutes()
		baseMinutes := params.BaseInterval.Minutes()
		if elapsedMinutes > 0 {
			interval = clip01(math.Log2(elapsedMinutes/baseMinutes) / params.GrowthRange)
		}
	}

	speed := clip01((params.TimeLimit - responseTime).Seconds() / params.TimeLimit.Seconds())

	return params.EasinessWeight*easiness +
		params.IntervalWeight*interval +
		params.SpeedWeight*speed
}

// clip01 clamps v to the closed interval [0, 1].
func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
