package backup

import "github.com/aretw0/edubrinca/pkg/core"

// MaxScanDepth is the deepest level the shape scan visits. The root is depth 0.
const MaxScanDepth = 3

// skippedKeys name metadata containers whose contents are never entities.
var skippedKeys = map[string]bool{"meta": true, "config": true}

// rule classifies an untrusted JSON node as one entity variant.
type rule struct {
	kind  core.Kind
	match func(node any) bool
}

// rules are evaluated in order; the first match wins.
var rules = []rule{
	{core.KindActivitySheet, IsActivitySheet},
	{core.KindLessonPlan, IsLessonPlan},
}

// IsActivitySheet reports whether node is an object with a string theme and a questions list.
func IsActivitySheet(node any) bool {
	obj, ok := node.(map[string]any)
	if !ok {
		return false
	}
	if _, ok := obj["theme"].(string); !ok {
		return false
	}
	_, ok = obj["questions"].([]any)
	return ok
}

// IsLessonPlan reports whether node is an object with a string theme, no
// questions, and at least one of a steps list, a string objective or a subject.
func IsLessonPlan(node any) bool {
	obj, ok := node.(map[string]any)
	if !ok {
		return false
	}
	if _, ok := obj["theme"].(string); !ok {
		return false
	}
	if q, present := obj["questions"]; present && q != nil {
		return false
	}
	_, hasSteps := obj["steps"].([]any)
	_, hasObjective := obj["objective"].(string)
	return hasSteps || hasObjective || truthy(obj["subject"])
}

// Classify returns the variant node belongs to, if any.
func Classify(node any) (core.Kind, bool) {
	for _, r := range rules {
		if r.match(node) {
			return r.kind, true
		}
	}
	return "", false
}

// scan walks the tree up to MaxScanDepth and collects classified nodes.
// A classified node is a leaf: its children are not visited.
func scan(root any) (plans, activities []map[string]any) {
	var visit func(node any, depth int)
	visit = func(node any, depth int) {
		if depth > MaxScanDepth {
			return
		}
		if kind, ok := Classify(node); ok {
			obj := node.(map[string]any)
			if kind == core.KindActivitySheet {
				activities = append(activities, obj)
			} else {
				plans = append(plans, obj)
			}
			return
		}
		switch v := node.(type) {
		case []any:
			for _, item := range v {
				visit(item, depth+1)
			}
		case map[string]any:
			for _, key := range sortedKeys(v) {
				if skippedKeys[key] {
					continue
				}
				visit(v[key], depth+1)
			}
		}
	}
	visit(root, 0)
	return plans, activities
}
