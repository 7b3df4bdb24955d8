package brackets

import (
	"sort"

	"github.com/germarr/fifaworldcup2026/models"
)

// ThirdPlaceSlot is one knockout berth reserved for a best third-placed
// team. Each slot only accepts thirds from the listed groups.
type ThirdPlaceSlot struct {
	Code   string
	Groups []string
}

func (s ThirdPlaceSlot) accepts(group string) bool {
	for _, g := range s.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// SolveThirdPlace assigns qualifying third-place candidates to slots so
// that every slot gets a team from a group it accepts and no team fills
// two slots. Candidates arrive in qualification order and are never
// re-ranked here; callers slice them to the qualifying cutoff first.
//
// The search is backtracking over slots ordered by how few eligible
// candidates remain, tightest first, so dead ends surface early. Within a
// slot, candidates are tried in their ranked order, which makes the
// result deterministic for identical inputs. When no complete assignment
// exists the result is an empty map, not a partial one: an incomplete
// group stage is a normal state, and callers treat every such slot as
// unresolved.
func SolveThirdPlace(slots []ThirdPlaceSlot, candidates []*ThirdPlaceCandidate) map[string]*models.Team {
	assignment := make(map[string]*models.Team)
	if len(slots) == 0 {
		return assignment
	}

	ordered := make([]ThirdPlaceSlot, len(slots))
	copy(ordered, slots)
	eligible := func(s ThirdPlaceSlot) int {
		n := 0
		for _, c := range candidates {
			if s.accepts(c.Group) {
				n++
			}
		}
		return n
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return eligible(ordered[i]) < eligible(ordered[j])
	})

	used := make([]bool, len(candidates))
	picked := make(map[string]*ThirdPlaceCandidate, len(ordered))

	var assign func(i int) bool
	assign = func(i int) bool {
		if i == len(ordered) {
			return true
		}
		slot := ordered[i]
		for ci, c := range candidates {
			if used[ci] || !slot.accepts(c.Group) {
				continue
			}
			used[ci] = true
			picked[slot.Code] = c
			if assign(i + 1) {
				return true
			}
			// Undo and try the next candidate.
			used[ci] = false
			delete(picked, slot.Code)
		}
		return false
	}

	if !assign(0) {
		return assignment
	}
	for code, c := range picked {
		assignment[code] = c.Standing.Team
	}
	return assignment
}
