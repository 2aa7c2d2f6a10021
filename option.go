package pomgen

import (
	"github.com/viant/afs"

	"github.com/viant/pomgen/model"
	"github.com/viant/pomgen/repo"
)

// Option customizes a Generator.
type Option func(*Generator)

// WithOutputPath sets the output file location, overriding the default
// <project-dir>/pom.xml.
func WithOutputPath(path string) Option {
	return func(g *Generator) {
		g.outputPath = path
	}
}

// WithFallbackIdentity supplies groupId/artifactId/version values used for
// fields the root project leaves empty.
func WithFallbackIdentity(identity model.Identity) Option {
	return func(g *Generator) {
		g.fallback = identity
	}
}

// WithOverrideFile points at a yaml document supplying the fallback
// identity. It takes precedence over WithFallbackIdentity.
func WithOverrideFile(location string) Option {
	return func(g *Generator) {
		g.overrideFile = location
	}
}

// WithResolver attaches a repository resolver; loaded configurations become
// resolvable and dynamic version specs are made concrete before collection.
func WithResolver(resolver *repo.Resolver) Option {
	return func(g *Generator) {
		g.resolver = resolver
	}
}

// WithExclusions registers dependencies to omit from the generated file,
// keyed by package URL or by group:artifact[:version] coordinates.
func WithExclusions(keys ...string) Option {
	return func(g *Generator) {
		g.rawExclusions = append(g.rawExclusions, keys...)
	}
}

// WithFileService overrides the file service used for reads and writes.
func WithFileService(fs afs.Service) Option {
	return func(g *Generator) {
		g.fs = fs
	}
}
