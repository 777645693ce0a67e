package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDetached is returned when some features cannot be reached from a root,
// which only happens when parent links form a cycle or point outside the set.
var ErrDetached = errors.New("features not reachable from a root")

// BuildForest nests a flat, creation-ordered list of features and scenarios.
// Nodes live in an arena indexed by position; the parent index maps a feature
// id to the arena positions of its children, so no node owns another until the
// final copy-out.
func BuildForest(flat []Feature, scenarios []Scenario) ([]Feature, error) {
	children := make(map[string][]int, len(flat))
	var roots []int
	for i, f := range flat {
		if f.ParentID == nil {
			roots = append(roots, i)
			continue
		}
		children[*f.ParentID] = append(children[*f.ParentID], i)
	}

	byFeature := make(map[string][]Scenario)
	for _, s := range scenarios {
		byFeature[s.FeatureID] = append(byFeature[s.FeatureID], s)
	}

	visited := make([]bool, len(flat))
	var build func(i int) Feature
	build = func(i int) Feature {
		visited[i] = true
		f := flat[i]
		f.Features = nil
		for _, c := range children[f.ID] {
			f.Features = append(f.Features, build(c))
		}
		f.Scenarios = byFeature[f.ID]
		return f
	}

	forest := make([]Feature, 0, len(roots))
	for _, r := range roots {
		forest = append(forest, build(r))
	}

	var detached []string
	for i, ok := range visited {
		if !ok {
			detached = append(detached, flat[i].Name)
		}
	}
	if len(detached) > 0 {
		return forest, fmt.Errorf("%w: %s", ErrDetached, strings.Join(detached, ", "))
	}
	return forest, nil
}

// Walk visits every feature depth-first, parents before children.
func Walk(forest []Feature, fn func(f Feature, depth int)) {
	var walk func(fs []Feature, depth int)
	walk = func(fs []Feature, depth int) {
		for _, f := range fs {
			fn(f, depth)
			walk(f.Features, depth+1)
		}
	}
	walk(forest, 0)
}
