// Package scope infers Maven dependency scopes from build configuration
// names.
package scope

import "strings"

// Kind is a Maven dependency scope.
type Kind string

const (
	Compile   Kind = "compile"
	Provided  Kind = "provided"
	Runtime   Kind = "runtime"
	Test      Kind = "test"
	System    Kind = "system"
	Undefined Kind = "undefined"
)

// byConfiguration maps known configuration names to scopes. Built once,
// never mutated after initialization.
var byConfiguration = map[string]Kind{
	"compile":        Compile,
	"implementation": Compile,
	"api":            Compile,

	"runtime":          Runtime,
	"runtimeOnly":      Runtime,
	"runtimeClasspath": Runtime,
	"default":          Runtime,

	"compileOnly":         Provided,
	"compileOnlyApi":      Provided,
	"annotationProcessor": Provided,
}

// Classify maps a configuration name to a scope. Names without an exact
// table match that start with "test" (case-insensitively) classify as test;
// anything else is undefined. Classify is pure and total.
func Classify(configuration string) Kind {
	if kind, ok := byConfiguration[configuration]; ok {
		return kind
	}
	if strings.HasPrefix(strings.ToLower(configuration), "test") {
		return Test
	}
	return Undefined
}

// Priority returns the output ordering rank: compile first, then runtime,
// then test, then everything else.
func (k Kind) Priority() int {
	switch k {
	case Compile:
		return 0
	case Runtime:
		return 1
	case Test:
		return 2
	default:
		return 3
	}
}
