package model

// DependencyKind discriminates how a dependency is referenced by a build.
type DependencyKind int

const (
	// KindExternalModule references a published artifact by coordinate.
	KindExternalModule DependencyKind = iota
	// KindProject references another project within the same build.
	KindProject
	// KindFileCollection references local files or file trees.
	KindFileCollection
	// KindOther covers dependency notations this tool does not model.
	KindOther
)

// Dependency is a first-level dependency declared by a configuration.
// Coordinate is only meaningful for KindExternalModule; project references
// carry the target project path in ProjectPath instead.
type Dependency struct {
	Coordinate
	Kind        DependencyKind
	ProjectPath string
}
