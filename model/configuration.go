package model

import "context"

// ResolveFunc populates a configuration's dependency metadata, typically by
// consulting an artifact repository.
type ResolveFunc func(ctx context.Context, configuration *Configuration) error

// Configuration is a named bucket of declared dependencies with a resolution
// capability flag.
type Configuration struct {
	Name         string
	Resolvable   bool
	Dependencies []Dependency
	resolve      ResolveFunc
}

// OnResolve registers the hook invoked by Resolve.
func (c *Configuration) OnResolve(fn ResolveFunc) {
	c.resolve = fn
}

// Resolve forces dependency resolution so that metadata is fully populated
// before the configuration is read. Configurations not marked resolvable,
// and configurations without a hook, resolve trivially.
func (c *Configuration) Resolve(ctx context.Context) error {
	if !c.Resolvable || c.resolve == nil {
		return nil
	}
	return c.resolve(ctx, c)
}
