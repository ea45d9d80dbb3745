package skills

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchNames resolves name arguments against discovered skills. Each pattern
// is either a literal name or a glob such as "algorand-*". Literal names are
// returned even when no skill has that name so callers can report them as
// unknown; unmatched lists globs that selected nothing. Names are returned
// once each, in skill order followed by unknown literals in argument order.
func MatchNames(skills []*Skill, patterns []string) (names, unmatched []string) {
	selected := make(map[string]bool)
	known := make(map[string]bool, len(skills))
	for _, skill := range skills {
		known[skill.Name] = true
	}

	var unknownLiterals []string
	for _, pattern := range patterns {
		if !isGlob(pattern) {
			if known[pattern] {
				selected[pattern] = true
			} else if !selected[pattern] {
				selected[pattern] = true
				unknownLiterals = append(unknownLiterals, pattern)
			}
			continue
		}

		matched := false
		for _, skill := range skills {
			if ok, err := doublestar.Match(pattern, skill.Name); err == nil && ok {
				selected[skill.Name] = true
				matched = true
			}
		}
		if !matched {
			unmatched = append(unmatched, pattern)
		}
	}

	for _, skill := range skills {
		if selected[skill.Name] {
			names = append(names, skill.Name)
		}
	}
	names = append(names, unknownLiterals...)

	return names, unmatched
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
