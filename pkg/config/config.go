// Package config parses a declarative pipeline definition into a
// validated, immutable set of jobs grouped by stage. The input is the
// generic mapping produced by a markup parser such as yaml.v3; this
// package never sees raw text.
package config

import (
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/opnlabs/gantry/pkg/models"
	"github.com/opnlabs/gantry/pkg/refs"
)

// DefaultStage is assigned to jobs that declare neither stage nor type.
const DefaultStage = "test"

// DefaultStages is the stage list used when the document declares none.
var DefaultStages = []string{"build", "test", "deploy"}

var globalKeys = []string{"before_script", "image", "services", "types", "stages", "variables"}

var jobKeys = []string{"tags", "script", "only", "except", "type", "image", "services", "allow_failure", "stage", "when"}

type jobDefinition struct {
	name  string
	stage string
	raw   map[string]any
}

// Document is the validated, normalized form of a pipeline definition.
// It is constructed in a single pass by New and immutable afterwards,
// so concurrent readers need no synchronization.
type Document struct {
	beforeScript []string
	image        string
	services     []string
	stages       []string
	variables    map[string]string
	jobs         []models.Job
}

// New builds a Document from a parsed mapping. The whole document
// either validates or construction fails with one of the errors in
// this package; no partial result is ever returned.
func New(doc any) (*Document, error) {
	root, ok := doc.(map[string]any)
	if !ok || root == nil {
		return nil, ErrMalformedDocument
	}

	globals := make(map[string]any)
	jobsRaw := make(map[string]map[string]any)
	for key, value := range root {
		if slices.Contains(globalKeys, key) {
			globals[key] = value
			continue
		}
		job, ok := value.(map[string]any)
		if !ok {
			return nil, &UnknownParameterError{Key: key}
		}
		if _, ok := job["script"]; !ok {
			return nil, &UnknownParameterError{Key: key}
		}
		jobsRaw[key] = job
	}
	if len(jobsRaw) == 0 {
		return nil, ErrNoJobsDefined
	}

	d := &Document{variables: make(map[string]string)}
	if err := d.applyGlobals(globals); err != nil {
		return nil, err
	}

	defs := make([]jobDefinition, 0, len(jobsRaw))
	for name, raw := range jobsRaw {
		defs = append(defs, jobDefinition{name: name, stage: effectiveStage(raw), raw: raw})
	}
	// The source mapping has no usable insertion order, so jobs are
	// kept sorted by name for deterministic output.
	sort.Slice(defs, func(i, j int) bool { return defs[i].name < defs[j].name })

	for _, def := range defs {
		if err := validateJob(def, d.stages); err != nil {
			return nil, err
		}
	}

	d.jobs = make([]models.Job, 0, len(defs))
	for _, def := range defs {
		d.jobs = append(d.jobs, d.buildJob(def))
	}
	return d, nil
}

// effectiveStage resolves a job's stage before validation runs:
// stage, then the legacy type alias, then DefaultStage.
func effectiveStage(raw map[string]any) string {
	if s, ok := raw["stage"].(string); ok {
		return s
	}
	if s, ok := raw["type"].(string); ok {
		return s
	}
	return DefaultStage
}

func (d *Document) buildJob(def jobDefinition) models.Job {
	job := models.Job{
		Name:  def.name,
		Stage: def.stage,
		// -1 when the stage is not in the stage list, which can happen
		// for a defaulted stage the document never declared.
		StageIndex: slices.Index(d.stages, def.stage),
		Commands:   strings.Join(d.beforeScript, "\n") + "\n" + normalizeScript(def.raw["script"]),
		TagList:    []string{},
		When:       models.WhenOnSuccess,
	}
	if v, ok := def.raw["tags"]; ok {
		job.TagList, _ = stringList(v)
	}
	if v, ok := def.raw["only"]; ok {
		job.Only, _ = stringList(v)
	}
	if v, ok := def.raw["except"]; ok {
		job.Except, _ = stringList(v)
	}
	if v, ok := def.raw["allow_failure"].(bool); ok {
		job.AllowFailure = v
	}
	if v, ok := def.raw["when"].(string); ok {
		job.When = models.When(v)
	}
	job.Options.Image = d.image
	if v, ok := def.raw["image"].(string); ok {
		job.Options.Image = v
	}
	job.Options.Services = slices.Clone(d.services)
	if v, ok := def.raw["services"]; ok {
		job.Options.Services, _ = stringList(v)
	}
	return job
}

func normalizeScript(script any) string {
	if s, ok := script.(string); ok {
		return s
	}
	lines, _ := stringList(script)
	return strings.Join(lines, "\n")
}

// Stages returns the resolved stage list in declaration order.
func (d *Document) Stages() []string { return slices.Clone(d.stages) }

// BeforeScript returns the global before_script lines.
func (d *Document) BeforeScript() []string { return slices.Clone(d.beforeScript) }

// Image returns the global default image, or "" when none is set.
func (d *Document) Image() string { return d.image }

// Services returns the global default services.
func (d *Document) Services() []string { return slices.Clone(d.services) }

// Variables returns the global variables.
func (d *Document) Variables() map[string]string { return maps.Clone(d.variables) }

// Jobs returns every job in the document, sorted by name.
func (d *Document) Jobs() []models.Job { return slices.Clone(d.jobs) }

// JobsFor returns the jobs in the given stage whose only/except filters
// allow them to run for ref. A malformed regex in a filter surfaces
// here as a *refs.PatternError.
func (d *Document) JobsFor(stage, ref string, tag bool) ([]models.Job, error) {
	matched := make([]models.Job, 0)
	for _, job := range d.jobs {
		if job.Stage != stage {
			continue
		}
		run, err := refs.ShouldRun(job.Only, job.Except, ref, tag)
		if err != nil {
			return nil, err
		}
		if run {
			matched = append(matched, job)
		}
	}
	return matched, nil
}
