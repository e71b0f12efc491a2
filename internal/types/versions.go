package types

import "strings"

// VersionPattern matches content versions against a package's declared
// version list. Matching is positional: the declared list order is the
// canonical order, not any semantic comparison.
type VersionPattern struct {
	Kind  PatternKind
	Value string
	// End is the inclusive upper bound for range patterns.
	End string
}

func AnyVersion() VersionPattern {
	return VersionPattern{Kind: PatternAny}
}

// ParseVersionPattern reads a pattern from its text form: "*" or empty
// for any, "latest", "1.2-" for before, "1.2+" for after, "1.2..1.4"
// for an inclusive range, anything else for a single version.
func ParseVersionPattern(text string) VersionPattern {
	text = strings.TrimSpace(text)
	switch text {
	case "", "*":
		return VersionPattern{Kind: PatternAny}
	case "latest":
		return VersionPattern{Kind: PatternLatest}
	}
	if strings.HasSuffix(text, "-") {
		return VersionPattern{Kind: PatternBefore, Value: strings.TrimSuffix(text, "-")}
	}
	if strings.HasSuffix(text, "+") {
		return VersionPattern{Kind: PatternAfter, Value: strings.TrimSuffix(text, "+")}
	}
	if start, end, found := strings.Cut(text, ".."); found && start != "" && end != "" {
		return VersionPattern{Kind: PatternRange, Value: start, End: end}
	}
	return VersionPattern{Kind: PatternSingle, Value: text}
}

func (p VersionPattern) IsAny() bool {
	return p.Kind == PatternAny || p.Kind == ""
}

// Matches returns the subset of versions the pattern allows, in the
// order of the input list.
func (p VersionPattern) Matches(versions []string) []string {
	switch p.Kind {
	case PatternLatest:
		if len(versions) == 0 {
			return nil
		}
		return []string{versions[len(versions)-1]}
	case PatternSingle:
		for _, v := range versions {
			if v == p.Value {
				return []string{v}
			}
		}
		return nil
	case PatternBefore:
		if pos := indexOf(versions, p.Value); pos >= 0 {
			return append([]string(nil), versions[:pos+1]...)
		}
		return nil
	case PatternAfter:
		if pos := indexOf(versions, p.Value); pos >= 0 {
			return append([]string(nil), versions[pos:]...)
		}
		return nil
	case PatternRange:
		start := indexOf(versions, p.Value)
		end := indexOf(versions, p.End)
		if start < 0 || end < 0 || end < start {
			return nil
		}
		return append([]string(nil), versions[start:end+1]...)
	default:
		return append([]string(nil), versions...)
	}
}

// MatchesSingle reports whether one version satisfies the pattern given
// the canonical list.
func (p VersionPattern) MatchesSingle(version string, versions []string) bool {
	for _, match := range p.Matches(versions) {
		if match == version {
			return true
		}
	}
	return false
}

func (p VersionPattern) String() string {
	switch p.Kind {
	case PatternLatest:
		return "latest"
	case PatternSingle:
		return p.Value
	case PatternBefore:
		return p.Value + "-"
	case PatternAfter:
		return p.Value + "+"
	case PatternRange:
		return p.Value + ".." + p.End
	default:
		return "*"
	}
}

func indexOf(versions []string, value string) int {
	for i, v := range versions {
		if v == value {
			return i
		}
	}
	return -1
}
