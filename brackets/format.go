package brackets

import (
	"fmt"

	"github.com/germarr/fifaworldcup2026/models"
)

// SlotPair is one fixture of the opening knockout round, both sides given
// as placeholder codes.
type SlotPair struct {
	Slot1 string
	Slot2 string
}

// RoundSpec describes one knockout round of a format: how many matches it
// has and which tournament-wide sequence number its first match carries.
type RoundSpec struct {
	Name             models.Round
	Matches          int
	FirstMatchNumber int
}

// Format captures the shape of a tournament: its groups, how many teams
// qualify out of them, and the opening knockout pairings. Everything the
// engine needs to size the bracket derives from it.
type Format struct {
	Groups               []string
	TeamsPerGroup        int
	ThirdPlaceQualifiers int // 0 when third-placed teams do not advance
	GroupMatchCount      int
	OpeningPairings      []SlotPair
}

// WorldCup2026 is the 48-team format: 12 groups of four, the top two of
// each group plus the eight best third-placed teams reach a round of 32.
// Opening pairings follow the official match schedule, matches 73-88.
func WorldCup2026() *Format {
	return &Format{
		Groups:               splitLetters("ABCDEFGHIJKL"),
		TeamsPerGroup:        4,
		ThirdPlaceQualifiers: 8,
		GroupMatchCount:      72,
		OpeningPairings: []SlotPair{
			{"2A", "2B"},
			{"1C", "2F"},
			{"1E", "3ABCDF"},
			{"1F", "2C"},
			{"2E", "2I"},
			{"1I", "3CDFGH"},
			{"1A", "3CEFHI"},
			{"1L", "3EHIJK"},
			{"1G", "3AEHIJ"},
			{"1D", "3BEFIJ"},
			{"1H", "2J"},
			{"2K", "2L"},
			{"1B", "3EFGIJ"},
			{"2D", "2G"},
			{"1J", "2H"},
			{"1K", "3DEIJL"},
		},
	}
}

// ClassicWorldCup is the 32-team format used through 2022: 8 groups of
// four, top two qualify, round of 16 starts at match 49.
func ClassicWorldCup() *Format {
	return &Format{
		Groups:          splitLetters("ABCDEFGH"),
		TeamsPerGroup:   4,
		GroupMatchCount: 48,
		OpeningPairings: []SlotPair{
			{"1A", "2B"},
			{"1C", "2D"},
			{"1E", "2F"},
			{"1G", "2H"},
			{"1B", "2A"},
			{"1D", "2C"},
			{"1F", "2E"},
			{"1H", "2G"},
		},
	}
}

// QualifierCount is the number of teams entering the knockout stage.
func (f *Format) QualifierCount() int {
	return len(f.Groups)*2 + f.ThirdPlaceQualifiers
}

// KnockoutStructure lays out every knockout round with its match numbering,
// halving the field down to the semi-finals and appending the third-place
// match and the final.
func (f *Format) KnockoutStructure() ([]RoundSpec, error) {
	qualifiers := f.QualifierCount()
	if qualifiers < 4 || qualifiers&(qualifiers-1) != 0 {
		return nil, fmt.Errorf("knockout stage needs a power-of-two field of at least 4 teams, got %d", qualifiers)
	}

	var rounds []RoundSpec
	matchNum := f.GroupMatchCount + 1
	for teams := qualifiers; teams >= 4; teams /= 2 {
		var name models.Round
		switch teams {
		case 32:
			name = models.RoundOf32
		case 16:
			name = models.RoundOf16
		case 8:
			name = models.RoundQuarterFinals
		case 4:
			name = models.RoundSemiFinals
		default:
			name = models.Round(fmt.Sprintf("Round of %d", teams))
		}
		rounds = append(rounds, RoundSpec{Name: name, Matches: teams / 2, FirstMatchNumber: matchNum})
		matchNum += teams / 2
	}
	rounds = append(rounds, RoundSpec{Name: models.RoundThirdPlace, Matches: 1, FirstMatchNumber: matchNum})
	matchNum++
	rounds = append(rounds, RoundSpec{Name: models.RoundFinal, Matches: 1, FirstMatchNumber: matchNum})
	return rounds, nil
}

// ThirdPlaceSlots extracts the multi-group third-place slots from the
// opening pairings, in schedule order.
func (f *Format) ThirdPlaceSlots() []ThirdPlaceSlot {
	var slots []ThirdPlaceSlot
	for _, pair := range f.OpeningPairings {
		for _, raw := range []string{pair.Slot1, pair.Slot2} {
			code := ParseCode(raw)
			if code.Kind == CodeBestThird {
				slots = append(slots, ThirdPlaceSlot{Code: raw, Groups: code.Groups})
			}
		}
	}
	return slots
}

func splitLetters(s string) []string {
	letters := make([]string, 0, len(s))
	for _, r := range s {
		letters = append(letters, string(r))
	}
	return letters
}
