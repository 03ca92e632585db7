package domain

import (
	"encoding/json"
	"errors"
)

// LearningDomain identifies which of the three learnable catalogs a unit or
// record belongs to.
type LearningDomain string

// Supported learning domains.
const (
	DomainWord     LearningDomain = "word"
	DomainSentence LearningDomain = "sentence"
	DomainKana     LearningDomain = "kana"
)

// ErrInvalidDomain is returned when a learning domain tag is not recognized.
var ErrInvalidDomain = errors.New("invalid learning domain")

// ParseLearningDomain converts the external representation of a learning
// domain into a LearningDomain.
func ParseLearningDomain(s string) (LearningDomain, error) {
	switch LearningDomain(s) {
	case DomainWord, DomainSentence, DomainKana:
		return LearningDomain(s), nil
	default:
		return "", ErrInvalidDomain
	}
}

// DualTrack reports whether the domain drills two independent recall
// directions. Only vocabulary does; sentences and kana track a single score.
func (d LearningDomain) DualTrack() bool {
	return d == DomainWord
}

// LearningUnit is a catalog entry the scheduling engine can propose.
// The engine only ever needs the unit's identity and tier; the payload
// (definitions, readings, audio keys, ...) is opaque to it.
type LearningUnit interface {
	UnitID() string
	UnitLevel() Level
}

// Word is a vocabulary catalog entry. Words are drilled in two recall
// directions (forward and backward).
type Word struct {
	ID      string          `json:"id"`
	Level   Level           `json:"level"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (w Word) UnitID() string   { return w.ID }
func (w Word) UnitLevel() Level { return w.Level }

// Sentence is an example-sentence catalog entry.
type Sentence struct {
	ID      string          `json:"id"`
	Level   Level           `json:"level"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (s Sentence) UnitID() string   { return s.ID }
func (s Sentence) UnitLevel() Level { return s.Level }

// Kana is a single kana glyph catalog entry. Its ID is the glyph itself.
type Kana struct {
	Char    string          `json:"char"`
	Level   Level           `json:"level"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (k Kana) UnitID() string   { return k.Char }
func (k Kana) UnitLevel() Level { return k.Level }
