package domain

import (
	"errors"
	"fmt"
	"strconv"
)

// Level is an ordinal difficulty tier grouping catalog units.
// Word levels run 1..14, sentence levels 1..N, and kana uses exactly two
// tiers (hiragana and katakana).
type Level int

// Pseudo-levels used by selection and listing operations. They are never
// stored on a record.
const (
	// LevelReviewAll selects the single globally-earliest-due unit across
	// every level of a user's record set.
	LevelReviewAll Level = -1

	// LevelAll requests an unscoped listing (every level).
	LevelAll Level = 0
)

// Kana catalog tiers.
const (
	KanaLevelHiragana Level = 1
	KanaLevelKatakana Level = 2
)

// ErrInvalidLevel is returned when a level cannot be parsed or is out of range.
var ErrInvalidLevel = errors.New("invalid level")

// ParseLevel converts the external representation of a level into a Level.
// Accepted forms are a positive integer, the literal "REVIEW_ALL", and the
// literal "ALL".
func ParseLevel(s string) (Level, error) {
	switch s {
	case "REVIEW_ALL":
		return LevelReviewAll, nil
	case "ALL":
		return LevelAll, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLevel, n)
	}
	return Level(n), nil
}

// String returns the external representation of the level.
func (l Level) String() string {
	switch l {
	case LevelReviewAll:
		return "REVIEW_ALL"
	case LevelAll:
		return "ALL"
	default:
		return strconv.Itoa(int(l))
	}
}

// IsConcrete reports whether the level names a real catalog tier rather than
// a pseudo-level.
func (l Level) IsConcrete() bool {
	return l >= 1
}
