package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/viant/pomgen"
	"github.com/viant/pomgen/gradle"
	"github.com/viant/pomgen/model"
	"github.com/viant/pomgen/repo"
)

func main() {
	dir := flag.String("dir", ".", "project directory (the Gradle root is detected upwards from here)")
	output := flag.String("o", "", "output file path (default <project-dir>/pom.xml)")
	groupID := flag.String("groupId", "", "fallback groupId when the project defines none")
	artifactID := flag.String("artifactId", "", "fallback artifactId when the project defines none")
	version := flag.String("version", "", "fallback version when the project defines none")
	overrideFile := flag.String("config", "", "yaml file supplying the fallback identity")
	repositoryURL := flag.String("repo", repo.DefaultRepositoryURL, "Maven repository used to resolve dynamic versions")
	exclude := flag.String("exclude", "", "comma separated exclusions (package URL or group:artifact[:version])")
	resolve := flag.Bool("resolve", false, "resolve dynamic version specs against the repository")
	flag.Parse()

	root := gradle.FindRoot(*dir)
	if root == "" {
		fmt.Fprintf(os.Stderr, "no Gradle project found at %s\n", *dir)
		os.Exit(1)
	}

	options := []pomgen.Option{
		pomgen.WithFallbackIdentity(model.Identity{
			GroupID:    *groupID,
			ArtifactID: *artifactID,
			Version:    *version,
		}),
	}
	if *output != "" {
		options = append(options, pomgen.WithOutputPath(*output))
	}
	if *overrideFile != "" {
		options = append(options, pomgen.WithOverrideFile(*overrideFile))
	}
	if *resolve {
		options = append(options, pomgen.WithResolver(repo.New(repo.WithRepositoryURL(*repositoryURL))))
	}
	if *exclude != "" {
		options = append(options, pomgen.WithExclusions(strings.Split(*exclude, ",")...))
	}

	report, err := pomgen.New(options...).GenerateDir(context.Background(), root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}
	status := "unchanged"
	if report.Changed {
		status = "written"
	}
	fmt.Printf("%s: %d dependencies (%s)\n", report.Path, report.Dependencies, status)
}
