package gradle

import (
	"os"
	"path/filepath"
)

// markers identify a Gradle project root directory.
var markers = []string{
	"settings.gradle",
	"settings.gradle.kts",
	"build.gradle",
	"build.gradle.kts",
}

// FindRoot searches the directory tree upwards from location for a Gradle
// project root. A directory carrying a settings script wins over one that
// only carries a build script. Returns an empty string when no marker is
// found.
func FindRoot(location string) string {
	absPath, err := filepath.Abs(location)
	if err != nil {
		return ""
	}
	if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
		absPath = filepath.Dir(absPath)
	}
	var buildOnly string
	current := absPath
	for {
		if hasMarker(current, "settings.gradle", "settings.gradle.kts") {
			return current
		}
		if buildOnly == "" && hasMarker(current, "build.gradle", "build.gradle.kts") {
			buildOnly = current
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return buildOnly
}

func hasMarker(dir string, names ...string) bool {
	for _, name := range names {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}
