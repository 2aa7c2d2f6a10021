// Package pomgen generates a descriptive pom.xml summarizing a project's
// and its subprojects' first-level external dependencies, annotated with
// inferred Maven scopes.
//
// The generated document mimics POM syntax for readability only; it is not
// a buildable Maven POM. Generation is a one-shot synchronous pass: read the
// build-graph model, classify and order the dependency set, render XML,
// write a file.
package pomgen

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	packageurl "github.com/package-url/packageurl-go"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/viant/pomgen/collect"
	"github.com/viant/pomgen/gradle"
	"github.com/viant/pomgen/model"
	"github.com/viant/pomgen/render"
	"github.com/viant/pomgen/repo"
)

// DefaultFileName is the output file name used when no explicit path is set.
const DefaultFileName = "pom.xml"

// Report summarizes one generation pass.
type Report struct {
	Path         string
	Dependencies int
	Changed      bool
	Fingerprint  uint64
}

// Generator produces the descriptive pom.xml for a project tree.
type Generator struct {
	fs            afs.Service
	outputPath    string
	fallback      model.Identity
	overrideFile  string
	resolver      *repo.Resolver
	rawExclusions []string
}

// New creates a generator with the given options.
func New(options ...Option) *Generator {
	generator := &Generator{}
	for _, option := range options {
		option(generator)
	}
	if generator.fs == nil {
		generator.fs = afs.New()
	}
	return generator
}

// Generate collects, orders and renders the dependency set of the supplied
// project tree and writes the result. The output replaces any prior file at
// the target path; when the rendered content is unchanged the file is left
// untouched and Report.Changed is false.
func (g *Generator) Generate(ctx context.Context, project *model.Project) (*Report, error) {
	fallback := g.fallback
	if g.overrideFile != "" {
		override, err := g.loadOverride(ctx)
		if err != nil {
			return nil, err
		}
		fallback = override
	}
	exclusions, err := g.exclusionSet()
	if err != nil {
		return nil, err
	}
	entries, err := collect.Collect(ctx, project, collect.WithFilter(retain(exclusions)))
	if err != nil {
		return nil, err
	}
	identity := model.ResolveIdentity(project, fallback)
	content := render.Render(identity, entries)
	fingerprint, err := render.Fingerprint([]byte(content))
	if err != nil {
		return nil, err
	}
	outputPath := g.outputPath
	if outputPath == "" {
		outputPath = filepath.Join(project.Path, DefaultFileName)
	}
	changed, err := render.NewWriter(g.fs).Write(ctx, outputPath, content)
	if err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	return &Report{
		Path:         outputPath,
		Dependencies: len(entries),
		Changed:      changed,
		Fingerprint:  fingerprint,
	}, nil
}

// GenerateDir loads a Gradle project tree from rootDir and generates its
// descriptive pom.xml.
func (g *Generator) GenerateDir(ctx context.Context, rootDir string) (*Report, error) {
	loaderOptions := []gradle.Option{gradle.WithFileService(g.fs)}
	if g.resolver != nil {
		loaderOptions = append(loaderOptions, gradle.WithResolveHook(g.resolver.ConfigurationHook()))
	}
	project, err := gradle.New(loaderOptions...).Load(ctx, rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load project at %s: %w", rootDir, err)
	}
	return g.Generate(ctx, project)
}

// retain builds a filter dropping excluded dependencies. Exclusion keys are
// package URLs; a version-less key excludes every version of the artifact.
func retain(exclusions map[string]bool) func(model.Dependency) bool {
	return func(dependency model.Dependency) bool {
		if len(exclusions) == 0 {
			return true
		}
		versionless := model.Coordinate{Group: dependency.Group, Artifact: dependency.Artifact}
		return !exclusions[dependency.PackageURL()] && !exclusions[versionless.PackageURL()]
	}
}

func (g *Generator) exclusionSet() (map[string]bool, error) {
	exclusions := make(map[string]bool, len(g.rawExclusions))
	for _, key := range g.rawExclusions {
		normalized, err := normalizeExclusion(key)
		if err != nil {
			return nil, err
		}
		exclusions[normalized] = true
	}
	return exclusions, nil
}

func (g *Generator) loadOverride(ctx context.Context) (model.Identity, error) {
	var identity model.Identity
	content, err := g.fs.DownloadWithURL(ctx, g.overrideFile)
	if err != nil {
		return identity, fmt.Errorf("failed to read override file %s: %w", g.overrideFile, err)
	}
	if err := yaml.Unmarshal(content, &identity); err != nil {
		return identity, fmt.Errorf("failed to parse override file %s: %w", g.overrideFile, err)
	}
	return identity, nil
}

// normalizeExclusion canonicalizes an exclusion key. Accepts package URLs
// and bare "group:artifact[:version]" coordinates.
func normalizeExclusion(key string) (string, error) {
	if strings.HasPrefix(key, "pkg:") {
		parsed, err := packageurl.FromString(key)
		if err != nil {
			return "", fmt.Errorf("invalid exclusion %q: %w", key, err)
		}
		return parsed.ToString(), nil
	}
	coordinate := model.ParseCoordinate(key)
	if coordinate.Artifact == "" {
		return "", fmt.Errorf("invalid exclusion %q: expected package URL or group:artifact[:version]", key)
	}
	return coordinate.PackageURL(), nil
}
