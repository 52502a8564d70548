package models

// When controls the condition under which a job runs relative to the
// outcome of earlier stages.
type When string

const (
	WhenOnSuccess When = "on_success"
	WhenOnFailure When = "on_failure"
	WhenAlways    When = "always"
)

// Options carries settings a job inherits from the document when it does
// not declare its own. An empty Image or nil Services means the option
// resolved to nothing and should be treated as absent.
type Options struct {
	Image    string
	Services []string
}

// Job is the final descriptor produced for one job definition. It is
// built once during document construction and never mutated afterwards.
// Only and Except keep the raw filter strings; nil means the filter was
// not declared, while an empty non-nil slice is a declared empty filter.
type Job struct {
	Name         string
	Stage        string
	StageIndex   int
	Commands     string
	TagList      []string
	Only         []string
	Except       []string
	AllowFailure bool
	When         When
	Options      Options
}
