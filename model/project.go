// Package model holds the build-graph view a generation pass operates on:
// projects, configurations and declared dependencies.
package model

// Project represents a build project with its subprojects and
// configurations.
type Project struct {
	Name           string
	Group          string
	Version        string
	Path           string
	Subprojects    []*Project
	Configurations []*Configuration
}

// AddConfiguration appends a configuration and returns it.
func (p *Project) AddConfiguration(name string, resolvable bool) *Configuration {
	configuration := &Configuration{Name: name, Resolvable: resolvable}
	p.Configurations = append(p.Configurations, configuration)
	return configuration
}

// Configuration retrieves a configuration by name.
func (p *Project) Configuration(name string) *Configuration {
	for _, candidate := range p.Configurations {
		if candidate.Name == name {
			return candidate
		}
	}
	return nil
}

// Walk visits the project and every subproject depth-first, stopping at the
// first error.
func (p *Project) Walk(visit func(project *Project) error) error {
	if p == nil {
		return nil
	}
	if err := visit(p); err != nil {
		return err
	}
	for _, sub := range p.Subprojects {
		if err := sub.Walk(visit); err != nil {
			return err
		}
	}
	return nil
}
