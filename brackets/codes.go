package brackets

import (
	"regexp"
	"strconv"
)

// CodeKind classifies a placeholder string.
type CodeKind int

const (
	// CodeFreeText is any string outside the placeholder grammar. It
	// stands for an unresolved/TBD team and always resolves to no team.
	CodeFreeText CodeKind = iota
	CodeGroupRank
	CodeBestThird
	CodeMatchWinner
	CodeMatchLoser
)

// The placeholder grammar is compatibility-critical: existing match data
// stores these codes verbatim.
var (
	groupRankPattern = regexp.MustCompile(`^[123][A-L]$`)
	bestThirdPattern = regexp.MustCompile(`^3[A-L]{2,}$`)
	matchRefPattern  = regexp.MustCompile(`^[WL]\d+$`)
)

// Code is a parsed placeholder. Only the fields relevant to Kind are set.
type Code struct {
	Raw  string
	Kind CodeKind

	Rank  int    // CodeGroupRank: 1, 2 or 3
	Group string // CodeGroupRank: single group letter

	Groups []string // CodeBestThird: groups the slot accepts a third from

	MatchNumber int // CodeMatchWinner / CodeMatchLoser
}

// ParseCode classifies a raw placeholder string. Strings outside the
// grammar are not an error; they parse as CodeFreeText.
func ParseCode(raw string) Code {
	switch {
	case groupRankPattern.MatchString(raw):
		return Code{
			Raw:   raw,
			Kind:  CodeGroupRank,
			Rank:  int(raw[0] - '0'),
			Group: raw[1:],
		}
	case bestThirdPattern.MatchString(raw):
		groups := make([]string, 0, len(raw)-1)
		for _, g := range raw[1:] {
			groups = append(groups, string(g))
		}
		return Code{Raw: raw, Kind: CodeBestThird, Groups: groups}
	case matchRefPattern.MatchString(raw):
		n, err := strconv.Atoi(raw[1:])
		if err != nil {
			// Unreachable given the pattern, but fall back to free text
			// rather than guessing a match number.
			return Code{Raw: raw, Kind: CodeFreeText}
		}
		kind := CodeMatchWinner
		if raw[0] == 'L' {
			kind = CodeMatchLoser
		}
		return Code{Raw: raw, Kind: kind, MatchNumber: n}
	default:
		return Code{Raw: raw, Kind: CodeFreeText}
	}
}
