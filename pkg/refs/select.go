package refs

import "slices"

// Reserved filter keywords. They select whole ref classes and are
// checked against the list as a whole before any pattern matching.
const (
	KeywordBranches = "branches"
	KeywordTags     = "tags"
)

// ShouldRun decides whether a job with the given only/except lists runs
// for ref. A nil list means the filter was not declared; an empty
// non-nil list is a declared, empty filter. When both lists are
// declared, only wins and except is ignored.
//
// The two filters fall back differently once the keywords are checked:
// with only declared, the job runs iff some pattern matches; with
// except declared, the job runs unless some pattern matches.
func ShouldRun(only, except []string, ref string, tag bool) (bool, error) {
	switch {
	case only != nil:
		if tag && slices.Contains(only, KeywordTags) {
			return true, nil
		}
		if !tag && slices.Contains(only, KeywordBranches) {
			return true, nil
		}
		return matchAny(only, ref)
	case except != nil:
		if tag && slices.Contains(except, KeywordTags) {
			return false, nil
		}
		if !tag && slices.Contains(except, KeywordBranches) {
			return false, nil
		}
		matched, err := matchAny(except, ref)
		if err != nil {
			return false, err
		}
		return !matched, nil
	default:
		return true, nil
	}
}

func matchAny(patterns []string, ref string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := Match(pattern, ref)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
