package srs

import (
	"github.com/kotonoha/kotonoha-api/internal/domain"
)

// selectMode chooses which recall direction to drill next for a vocabulary
// unit, based on the imbalance between the two proficiency tracks.
//
// Past the threshold the choice is deterministic: the weaker direction is
// drilled. Inside the threshold the imbalance is mapped linearly to a
// probability of choosing backward and sampled, so there is no hard cutover
// a learner could game while practice still biases toward the weaker side.
func selectMode(forward, backward float64, rng RNG, params *Params) domain.RecallMode {
	diff := forward - backward

	if diff <= -params.ModeThreshold {
		return domain.ModeForward
	}
	if diff >= params.ModeThreshold {
		return domain.ModeBackward
	}

	backwardProbability := (diff + params.ModeThreshold) / (2 * params.ModeThreshold)
	if rng.Float64() < backwardProbability {
		return domain.ModeBackward
	}
	return domain.ModeForward
}
