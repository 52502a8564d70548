package config

import (
	"slices"
	"sort"
	"strings"

	"github.com/opnlabs/gantry/pkg/models"
)

// applyGlobals checks the shape of each recognized global setting and
// stores it on the Document. Checks run in a fixed order so the first
// violation reported is deterministic.
func (d *Document) applyGlobals(globals map[string]any) error {
	if v, ok := globals["before_script"]; ok {
		lines, ok := stringList(v)
		if !ok {
			return validationErrorf("config: before_script should be an array of strings")
		}
		d.beforeScript = lines
	}
	if v, ok := globals["image"]; ok {
		s, ok := v.(string)
		if !ok {
			return validationErrorf("config: image should be a string")
		}
		d.image = s
	}
	if v, ok := globals["services"]; ok {
		list, ok := stringList(v)
		if !ok {
			return validationErrorf("config: services should be an array of strings")
		}
		d.services = list
	}

	// stages wins over its legacy alias types. Whichever key supplies
	// the list gets the shape check, and the error names that key.
	key := "stages"
	v, ok := globals[key]
	if !ok {
		key = "types"
		v, ok = globals[key]
	}
	if ok {
		list, listOK := stringList(v)
		if !listOK {
			return validationErrorf("config: %s should be an array of strings", key)
		}
		d.stages = list
	} else {
		d.stages = slices.Clone(DefaultStages)
	}

	if v, ok := globals["variables"]; ok {
		vars, ok := stringMap(v)
		if !ok {
			return validationErrorf("config: variables should be a map of key-value strings")
		}
		d.variables = vars
	}
	return nil
}

// validateJob checks one job definition against the allowed key set and
// the per-field shape constraints. The first violation found wins.
func validateJob(def jobDefinition, stages []string) error {
	name, raw := def.name, def.raw
	if name == "" {
		return validationErrorf("config: job name should not be empty")
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !slices.Contains(jobKeys, key) {
			return validationErrorf("config: %s job: unknown parameter %q", name, key)
		}
	}

	if !validScript(raw["script"]) {
		return validationErrorf("config: %s job: script should be a string or an array of strings", name)
	}
	if v, ok := raw["stage"]; ok {
		s, isString := v.(string)
		if !isString || !slices.Contains(stages, s) {
			return validationErrorf("config: %s job: stage should be one of %s", name, strings.Join(stages, ", "))
		}
	}
	if v, ok := raw["image"]; ok {
		if _, isString := v.(string); !isString {
			return validationErrorf("config: %s job: image should be a string", name)
		}
	}
	if v, ok := raw["services"]; ok {
		if _, listOK := stringList(v); !listOK {
			return validationErrorf("config: %s job: services should be an array of strings", name)
		}
	}
	if v, ok := raw["tags"]; ok {
		if _, listOK := stringList(v); !listOK {
			return validationErrorf("config: %s job: tags should be an array of strings", name)
		}
	}
	if v, ok := raw["only"]; ok {
		if _, listOK := stringList(v); !listOK {
			return validationErrorf("config: %s job: only should be an array of strings or regexps", name)
		}
	}
	if v, ok := raw["except"]; ok {
		if _, listOK := stringList(v); !listOK {
			return validationErrorf("config: %s job: except should be an array of strings or regexps", name)
		}
	}
	if v, ok := raw["allow_failure"]; ok {
		if _, isBool := v.(bool); !isBool {
			return validationErrorf("config: %s job: allow_failure should be a boolean", name)
		}
	}
	if v, ok := raw["when"]; ok {
		s, isString := v.(string)
		if !isString || !validWhen(models.When(s)) {
			return validationErrorf("config: %s job: when should be on_success, on_failure or always", name)
		}
	}
	return nil
}

func validScript(v any) bool {
	if _, ok := v.(string); ok {
		return true
	}
	_, ok := stringList(v)
	return ok
}

func validWhen(w models.When) bool {
	switch w {
	case models.WhenOnSuccess, models.WhenOnFailure, models.WhenAlways:
		return true
	}
	return false
}

// stringList converts a parsed sequence into []string. The result is
// non-nil for an empty sequence, which is how a declared-but-empty
// filter list stays distinguishable from an absent one.
func stringList(v any) ([]string, bool) {
	seq, ok := v.([]any)
	if !ok {
		return nil, false
	}
	list := make([]string, 0, len(seq))
	for _, item := range seq {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		list = append(list, s)
	}
	return list, true
}

func stringMap(v any) (map[string]string, bool) {
	raw, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	vars := make(map[string]string, len(raw))
	for key, value := range raw {
		s, ok := value.(string)
		if !ok {
			return nil, false
		}
		vars[key] = s
	}
	return vars, true
}
