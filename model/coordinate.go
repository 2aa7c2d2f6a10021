package model

import (
	"strings"

	packageurl "github.com/package-url/packageurl-go"
)

// Coordinate identifies a published artifact by its Maven coordinates.
// All parts are opaque strings.
type Coordinate struct {
	Group    string
	Artifact string
	Version  string
}

// GAV returns the canonical group:artifact:version form.
func (c Coordinate) GAV() string {
	return c.Group + ":" + c.Artifact + ":" + c.Version
}

// PackageURL returns the coordinate as a pkg:maven package URL.
func (c Coordinate) PackageURL() string {
	return packageurl.NewPackageURL(packageurl.TypeMaven, c.Group, c.Artifact, c.Version, nil, "").ToString()
}

// ParseCoordinate parses "group:artifact" or "group:artifact:version"
// notation. Anything else yields an empty coordinate.
func ParseCoordinate(notation string) Coordinate {
	parts := strings.Split(notation, ":")
	switch len(parts) {
	case 2:
		return Coordinate{Group: parts[0], Artifact: parts[1]}
	case 3:
		return Coordinate{Group: parts[0], Artifact: parts[1], Version: parts[2]}
	}
	return Coordinate{}
}
