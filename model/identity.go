package model

// Identity carries the Maven coordinates published for the root project.
type Identity struct {
	GroupID    string `yaml:"groupId" json:"groupId"`
	ArtifactID string `yaml:"artifactId" json:"artifactId"`
	Version    string `yaml:"version" json:"version"`
}

// ResolveIdentity derives the root project identity. Each field falls back
// individually to the supplied identity when the project leaves it empty.
func ResolveIdentity(p *Project, fallback Identity) Identity {
	result := Identity{GroupID: p.Group, ArtifactID: p.Name, Version: p.Version}
	if result.GroupID == "" {
		result.GroupID = fallback.GroupID
	}
	if result.ArtifactID == "" {
		result.ArtifactID = fallback.ArtifactID
	}
	if result.Version == "" {
		result.Version = fallback.Version
	}
	return result
}
