package model_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/pomgen/model"
)

func TestResolveIdentity(t *testing.T) {
	tests := []struct {
		name     string
		project  *model.Project
		fallback model.Identity
		expected model.Identity
	}{
		{
			name:     "fallback applies only to empty fields",
			project:  &model.Project{Name: "app", Version: "1.0"},
			fallback: model.Identity{GroupID: "io.example", ArtifactID: "other", Version: "9.9"},
			expected: model.Identity{GroupID: "io.example", ArtifactID: "app", Version: "1.0"},
		},
		{
			name:     "project values win",
			project:  &model.Project{Name: "app", Group: "com.acme", Version: "2.0"},
			fallback: model.Identity{GroupID: "io.example", ArtifactID: "other", Version: "9.9"},
			expected: model.Identity{GroupID: "com.acme", ArtifactID: "app", Version: "2.0"},
		},
		{
			name:     "all empty falls back entirely",
			project:  &model.Project{},
			fallback: model.Identity{GroupID: "g", ArtifactID: "a", Version: "v"},
			expected: model.Identity{GroupID: "g", ArtifactID: "a", Version: "v"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, model.ResolveIdentity(tt.project, tt.fallback))
		})
	}
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		notation string
		expected model.Coordinate
	}{
		{"com.google.guava:guava", model.Coordinate{Group: "com.google.guava", Artifact: "guava"}},
		{"com.google.guava:guava:32.1.0", model.Coordinate{Group: "com.google.guava", Artifact: "guava", Version: "32.1.0"}},
		{"invalid", model.Coordinate{}},
		{"a:b:c:d", model.Coordinate{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, model.ParseCoordinate(tt.notation), "notation %q", tt.notation)
	}
}

func TestCoordinatePackageURL(t *testing.T) {
	coordinate := model.Coordinate{Group: "org.apache.commons", Artifact: "commons-lang3", Version: "3.12.0"}
	assert.Equal(t, "pkg:maven/org.apache.commons/commons-lang3@3.12.0", coordinate.PackageURL())

	versionless := model.Coordinate{Group: "org.apache.commons", Artifact: "commons-lang3"}
	assert.Equal(t, "pkg:maven/org.apache.commons/commons-lang3", versionless.PackageURL())
}

func TestConfigurationResolve(t *testing.T) {
	resolvable := &model.Configuration{Name: "implementation", Resolvable: true}
	invoked := false
	resolvable.OnResolve(func(ctx context.Context, configuration *model.Configuration) error {
		invoked = true
		return nil
	})
	assert.NoError(t, resolvable.Resolve(context.Background()))
	assert.True(t, invoked)

	skipped := &model.Configuration{Name: "implementation", Resolvable: false}
	skipped.OnResolve(func(ctx context.Context, configuration *model.Configuration) error {
		t.Fatal("hook must not run for non resolvable configuration")
		return nil
	})
	assert.NoError(t, skipped.Resolve(context.Background()))
}

func TestProjectWalk(t *testing.T) {
	root := &model.Project{Name: "root"}
	root.Subprojects = []*model.Project{
		{Name: "a", Subprojects: []*model.Project{{Name: "a1"}}},
		{Name: "b"},
	}
	var visited []string
	err := root.Walk(func(project *model.Project) error {
		visited = append(visited, project.Name)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"root", "a", "a1", "b"}, visited)
}
