package pomgen_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/pomgen"
	"github.com/viant/pomgen/model"
)

func twoProjectTree(dir string) *model.Project {
	root := &model.Project{Name: "app", Version: "1.0", Path: dir}
	root.AddConfiguration("implementation", false).Dependencies = []model.Dependency{
		{Coordinate: model.Coordinate{Group: "a", Artifact: "b", Version: "1.0"}, Kind: model.KindExternalModule},
	}
	sub := &model.Project{Name: "core"}
	sub.AddConfiguration("testImplementation", false).Dependencies = []model.Dependency{
		{Coordinate: model.Coordinate{Group: "c", Artifact: "d", Version: "2.0"}, Kind: model.KindExternalModule},
	}
	root.Subprojects = append(root.Subprojects, sub)
	return root
}

const expectedPom = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:schemaLocation="http://maven.apache.org/POM/4.0.0 http://maven.apache.org/xsd/maven-4.0.0.xsd">
  <modelVersion>4.0.0</modelVersion>

  <!--
    This file was generated. It summarizes the project's first-level external
    dependencies with inferred scopes, for human and tool consumption only.
    It is not a buildable Maven POM and is not the authoritative build
    definition.
  -->

  <groupId>io.example</groupId>
  <artifactId>app</artifactId>
  <version>1.0</version>

  <inceptionYear>2015</inceptionYear>

  <licenses>
    <license>
      <name>Apache License, Version 2.0</name>
      <url>http://www.apache.org/licenses/LICENSE-2.0.txt</url>
      <distribution>repo</distribution>
    </license>
  </licenses>

  <dependencies>
    <dependency>
      <groupId>a</groupId>
      <artifactId>b</artifactId>
      <version>1.0</version>
      <scope>compile</scope>
    </dependency>
    <dependency>
      <groupId>c</groupId>
      <artifactId>d</artifactId>
      <version>2.0</version>
      <scope>test</scope>
    </dependency>
  </dependencies>
</project>
`

func TestGenerateEndToEnd(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	// root project group is empty, so only groupId falls back
	generator := pomgen.New(pomgen.WithFallbackIdentity(model.Identity{
		GroupID:    "io.example",
		ArtifactID: "other",
		Version:    "9.9",
	}))
	report, err := generator.Generate(ctx, twoProjectTree(dir))
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pom.xml"), report.Path)
	assert.Equal(t, 2, report.Dependencies)
	assert.True(t, report.Changed)

	content, err := os.ReadFile(report.Path)
	assert.NoError(t, err)
	assert.Equal(t, expectedPom, string(content))
}

func TestGenerateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	generator := pomgen.New(pomgen.WithFallbackIdentity(model.Identity{GroupID: "io.example"}))

	first, err := generator.Generate(ctx, twoProjectTree(dir))
	assert.NoError(t, err)
	firstContent, err := os.ReadFile(first.Path)
	assert.NoError(t, err)

	second, err := generator.Generate(ctx, twoProjectTree(dir))
	assert.NoError(t, err)
	assert.False(t, second.Changed)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)

	secondContent, err := os.ReadFile(second.Path)
	assert.NoError(t, err)
	assert.Equal(t, string(firstContent), string(secondContent))
}

func TestGenerateOverrideFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	overridePath := filepath.Join(dir, "identity.yaml")
	assert.NoError(t, os.WriteFile(overridePath, []byte("groupId: org.override\nversion: 7.7\n"), 0o644))

	generator := pomgen.New(
		pomgen.WithFallbackIdentity(model.Identity{GroupID: "ignored"}),
		pomgen.WithOverrideFile(overridePath),
	)
	report, err := generator.Generate(ctx, twoProjectTree(dir))
	assert.NoError(t, err)

	content, err := os.ReadFile(report.Path)
	assert.NoError(t, err)
	assert.Contains(t, string(content), "<groupId>org.override</groupId>")
	// project version wins over the override
	assert.Contains(t, string(content), "<version>1.0</version>")
}

func TestGenerateExclusions(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name      string
		exclusion string
	}{
		{name: "package url with version", exclusion: "pkg:maven/a/b@1.0"},
		{name: "package url without version", exclusion: "pkg:maven/a/b"},
		{name: "bare coordinates", exclusion: "a:b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			generator := pomgen.New(
				pomgen.WithFallbackIdentity(model.Identity{GroupID: "io.example"}),
				pomgen.WithExclusions(tt.exclusion),
			)
			report, err := generator.Generate(ctx, twoProjectTree(dir))
			assert.NoError(t, err)
			assert.Equal(t, 1, report.Dependencies)

			content, err := os.ReadFile(report.Path)
			assert.NoError(t, err)
			assert.NotContains(t, string(content), "<groupId>a</groupId>")
		})
	}
}

func TestGenerateInvalidExclusion(t *testing.T) {
	generator := pomgen.New(pomgen.WithExclusions("no-coordinates-here"))
	_, err := generator.Generate(context.Background(), twoProjectTree(t.TempDir()))
	assert.Error(t, err)
}

func TestGenerateDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "settings.gradle"), []byte("rootProject.name = 'app'\ninclude ':core'\n"), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "build.gradle"), []byte(`
version = '1.0'

dependencies {
    implementation 'a:b:1.0'
}
`), 0o644))
	assert.NoError(t, os.MkdirAll(filepath.Join(dir, "core"), 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "core", "build.gradle"), []byte(`
dependencies {
    testImplementation 'c:d:2.0'
}
`), 0o644))

	generator := pomgen.New(pomgen.WithFallbackIdentity(model.Identity{GroupID: "io.example"}))
	report, err := generator.GenerateDir(ctx, dir)
	assert.NoError(t, err)
	assert.Equal(t, 2, report.Dependencies)

	content, err := os.ReadFile(filepath.Join(dir, "pom.xml"))
	assert.NoError(t, err)
	assert.Equal(t, expectedPom, string(content))
}
