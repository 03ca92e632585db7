package srs

import (
	"testing"

	"github.com/kotonoha/kotonoha-api/internal/domain"
)

func TestSelectModeDeterministicOutsideThreshold(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		forward  float64
		backward float64
		expected domain.RecallMode
	}{
		{"forward far behind drills forward", 0.1, 0.9, domain.ModeForward},
		{"exactly at negative threshold drills forward", 0.2, 0.6, domain.ModeForward},
		{"backward far behind drills backward", 0.9, 0.1, domain.ModeBackward},
		{"exactly at positive threshold drills backward", 0.6, 0.2, domain.ModeBackward},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// An adversarial RNG proves the decision is not sampled.
			for _, draw := range []float64{0, 0.5, 0.999999} {
				rng := &stubRNG{floats: []float64{draw}}
				got := selectMode(tc.forward, tc.backward, rng, params)
				if got != tc.expected {
					t.Errorf("draw=%f: expected %s, got %s", draw, tc.expected, got)
				}
			}
		})
	}
}

func TestSelectModeSampledInsideThreshold(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	// diff = 0.2 maps to backward probability (0.2+0.4)/0.8 = 0.75.
	testCases := []struct {
		name     string
		draw     float64
		expected domain.RecallMode
	}{
		{"draw below probability picks backward", 0.74, domain.ModeBackward},
		{"draw above probability picks forward", 0.76, domain.ModeForward},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rng := &stubRNG{floats: []float64{tc.draw}}
			got := selectMode(0.7, 0.5, rng, params)
			if got != tc.expected {
				t.Errorf("expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestSelectModeBalancedTracksAreACoinFlip(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	// diff = 0 maps to backward probability 0.5.
	rng := &stubRNG{floats: []float64{0.49}}
	if got := selectMode(0.5, 0.5, rng, params); got != domain.ModeBackward {
		t.Errorf("draw 0.49: expected backward, got %s", got)
	}

	rng = &stubRNG{floats: []float64{0.51}}
	if got := selectMode(0.5, 0.5, rng, params); got != domain.ModeForward {
		t.Errorf("draw 0.51: expected forward, got %s", got)
	}
}
