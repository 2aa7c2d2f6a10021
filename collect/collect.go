// Package collect aggregates classified first-level external dependencies
// across a project tree.
package collect

import (
	"context"
	"fmt"
	"sort"

	"github.com/viant/pomgen/model"
	"github.com/viant/pomgen/scope"
)

// Entry is an external dependency annotated with its inferred scope.
type Entry struct {
	model.Coordinate
	Scope scope.Kind
}

// Option customizes a collection pass.
type Option func(*collector)

type collector struct {
	filter func(model.Dependency) bool
}

// WithFilter retains only dependencies accepted by the filter.
func WithFilter(filter func(model.Dependency) bool) Option {
	return func(c *collector) {
		c.filter = filter
	}
}

// Collect walks the root project and every subproject, forces resolution of
// resolvable configurations, and gathers external module dependencies
// classified by the name of the configuration that declared them. Duplicated
// coordinates collapse to a single entry; when the same coordinate appears
// under several configurations the most permissive scope (lowest priority
// rank) survives. The result is ordered by Less.
func Collect(ctx context.Context, root *model.Project, options ...Option) ([]Entry, error) {
	c := &collector{}
	for _, option := range options {
		option(c)
	}
	seen := map[model.Coordinate]int{}
	var entries []Entry
	err := root.Walk(func(project *model.Project) error {
		for _, configuration := range project.Configurations {
			if err := configuration.Resolve(ctx); err != nil {
				return fmt.Errorf("failed to resolve configuration %s of project %s: %w", configuration.Name, project.Name, err)
			}
			kind := scope.Classify(configuration.Name)
			for _, dependency := range configuration.Dependencies {
				if dependency.Kind != model.KindExternalModule {
					continue
				}
				if c.filter != nil && !c.filter(dependency) {
					continue
				}
				if idx, ok := seen[dependency.Coordinate]; ok {
					if kind.Priority() < entries[idx].Scope.Priority() {
						entries[idx].Scope = kind
					}
					continue
				}
				seen[dependency.Coordinate] = len(entries)
				entries = append(entries, Entry{Coordinate: dependency.Coordinate, Scope: kind})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	Sort(entries)
	return entries, nil
}

// Sort orders entries in place by the total order defined by Less.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return Less(entries[i], entries[j])
	})
}

// Less is the total order of the generated dependency list: scope rank
// first, then group, artifact and version, each in plain lexicographic
// order. Versions compare as strings, so "2.0" sorts before "10.0".
func Less(a, b Entry) bool {
	if pa, pb := a.Scope.Priority(), b.Scope.Priority(); pa != pb {
		return pa < pb
	}
	if a.Group != b.Group {
		return a.Group < b.Group
	}
	if a.Artifact != b.Artifact {
		return a.Artifact < b.Artifact
	}
	return a.Version < b.Version
}
