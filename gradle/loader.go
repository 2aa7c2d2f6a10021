// Package gradle constructs the build-graph model from an on-disk Gradle
// project tree. Build scripts are line-scanned for the declarations this
// tool cares about; no Groovy or Kotlin evaluation takes place.
package gradle

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/pomgen/model"
)

var (
	rootNameRe   = regexp.MustCompile(`(?:rootProject|project)\.name\s*=\s*['"]([^'"]+)['"]`)
	includeRe    = regexp.MustCompile(`^\s*include\b`)
	quotedRe     = regexp.MustCompile(`['"]([^'"]+)['"]`)
	propertyRe   = regexp.MustCompile(`^\s*(group|version)\s*=?\s*['"]([^'"]+)['"]`)
	projectDepRe = regexp.MustCompile(`^\s*([A-Za-z]\w*)\s*\(?\s*project\s*\(\s*['"]([^'"]+)['"]`)
	filesDepRe   = regexp.MustCompile(`^\s*([A-Za-z]\w*)\s*\(?\s*(?:files|fileTree)\s*\(`)
	moduleDepRe  = regexp.MustCompile(`^\s*([A-Za-z]\w*)\s*\(?\s*['"]([^'"]+)['"]`)
)

// Option customizes a loader.
type Option func(*Loader)

// WithResolveHook marks loaded configurations resolvable and attaches the
// hook invoked when a collection pass forces their resolution.
func WithResolveHook(hook model.ResolveFunc) Option {
	return func(l *Loader) {
		l.resolveHook = hook
	}
}

// WithFileService overrides the file service used to read build scripts.
func WithFileService(fs afs.Service) Option {
	return func(l *Loader) {
		l.fs = fs
	}
}

// Loader reads Gradle build scripts into the build-graph model.
type Loader struct {
	fs          afs.Service
	resolveHook model.ResolveFunc
}

// New creates a loader.
func New(options ...Option) *Loader {
	loader := &Loader{}
	for _, option := range options {
		option(loader)
	}
	if loader.fs == nil {
		loader.fs = afs.New()
	}
	return loader
}

// Load builds the project model rooted at rootDir. Subprojects come from the
// settings script's include statements; per-project metadata and dependency
// declarations come from each project's build script and the root
// gradle.properties. A project without a build script contributes no
// configurations, which is not an error.
func (l *Loader) Load(ctx context.Context, rootDir string) (*model.Project, error) {
	root := &model.Project{Name: filepath.Base(rootDir), Path: rootDir}

	settings := l.readFirst(ctx, rootDir, "settings.gradle", "settings.gradle.kts")
	includes := l.applySettings(root, settings)

	l.applyProperties(ctx, root)
	if err := l.loadProject(ctx, root); err != nil {
		return nil, err
	}
	for _, include := range includes {
		relative := strings.ReplaceAll(strings.TrimPrefix(include, ":"), ":", string(filepath.Separator))
		sub := &model.Project{
			Name:    filepath.Base(relative),
			Group:   root.Group,
			Version: root.Version,
			Path:    filepath.Join(rootDir, relative),
		}
		if err := l.loadProject(ctx, sub); err != nil {
			return nil, err
		}
		root.Subprojects = append(root.Subprojects, sub)
	}
	return root, nil
}

// applySettings extracts the root project name and included subproject paths.
func (l *Loader) applySettings(root *model.Project, settings string) []string {
	var includes []string
	for _, line := range strings.Split(settings, "\n") {
		line = strings.TrimSpace(line)
		if match := rootNameRe.FindStringSubmatch(line); match != nil {
			root.Name = match[1]
			continue
		}
		if !includeRe.MatchString(line) {
			continue
		}
		for _, quoted := range quotedRe.FindAllStringSubmatch(line, -1) {
			includes = append(includes, quoted[1])
		}
	}
	return includes
}

// applyProperties fills root group/version from gradle.properties when set.
func (l *Loader) applyProperties(ctx context.Context, root *model.Project) {
	content, err := l.fs.DownloadWithURL(ctx, filepath.Join(root.Path, "gradle.properties"))
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		switch key {
		case "group":
			root.Group = value
		case "version":
			root.Version = value
		}
	}
}

func (l *Loader) loadProject(ctx context.Context, project *model.Project) error {
	script := l.readFirst(ctx, project.Path, "build.gradle", "build.gradle.kts")
	if script == "" {
		return nil
	}
	l.parseBuildScript(project, script)
	return nil
}

// parseBuildScript scans a build script for group/version assignments and
// declarations inside the dependencies block.
func (l *Loader) parseBuildScript(project *model.Project, script string) {
	depth := 0
	inDependencies := false
	dependenciesDepth := 0
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if !inDependencies {
			if match := propertyRe.FindStringSubmatch(trimmed); match != nil && depth == 0 {
				switch match[1] {
				case "group":
					project.Group = match[2]
				case "version":
					project.Version = match[2]
				}
			}
			if strings.HasPrefix(trimmed, "dependencies") && strings.Contains(trimmed, "{") {
				inDependencies = true
				dependenciesDepth = depth
			}
		} else if depth > dependenciesDepth {
			l.parseDependencyLine(project, trimmed)
		}
		depth += strings.Count(trimmed, "{") - strings.Count(trimmed, "}")
		if inDependencies && depth <= dependenciesDepth {
			inDependencies = false
		}
	}
}

func (l *Loader) parseDependencyLine(project *model.Project, line string) {
	if line == "" || strings.HasPrefix(line, "//") {
		return
	}
	if match := projectDepRe.FindStringSubmatch(line); match != nil {
		l.addDependency(project, match[1], model.Dependency{Kind: model.KindProject, ProjectPath: match[2]})
		return
	}
	if match := filesDepRe.FindStringSubmatch(line); match != nil {
		l.addDependency(project, match[1], model.Dependency{Kind: model.KindFileCollection})
		return
	}
	match := moduleDepRe.FindStringSubmatch(line)
	if match == nil {
		return
	}
	coordinate := model.ParseCoordinate(match[2])
	if coordinate.Artifact == "" {
		l.addDependency(project, match[1], model.Dependency{Kind: model.KindOther})
		return
	}
	l.addDependency(project, match[1], model.Dependency{Coordinate: coordinate, Kind: model.KindExternalModule})
}

func (l *Loader) addDependency(project *model.Project, configurationName string, dependency model.Dependency) {
	configuration := project.Configuration(configurationName)
	if configuration == nil {
		configuration = project.AddConfiguration(configurationName, l.resolveHook != nil)
		configuration.OnResolve(l.resolveHook)
	}
	configuration.Dependencies = append(configuration.Dependencies, dependency)
}

func (l *Loader) readFirst(ctx context.Context, dir string, names ...string) string {
	for _, name := range names {
		if content, err := l.fs.DownloadWithURL(ctx, filepath.Join(dir, name)); err == nil && len(content) > 0 {
			return string(content)
		}
	}
	return ""
}
