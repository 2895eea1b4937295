// Package modindex finds full type definitions across the modules of a
// debugged program. Resolvers consult it for typedefs whose target is only a
// forward declaration in the module being resolved.
package modindex

import (
	"github.com/rs/zerolog"

	"github.com/coral-mesh/dtypes/internal/dwarfinfo"
	"github.com/coral-mesh/dtypes/internal/resolver"
)

// Static is a fixed name → definition index.
type Static map[string]*resolver.Type

// LookupDefinition implements resolver.DefinitionIndex.
func (s Static) LookupDefinition(name string) *resolver.Type {
	return s[name]
}

// Module is one loaded module: its container and the resolver bound to it.
type Module struct {
	Name     string
	Resolver *resolver.Resolver
}

// Modules searches loaded modules in the order they were added.
type Modules struct {
	modules []Module
	logger  zerolog.Logger
}

// New creates an empty module list.
func New(logger zerolog.Logger) *Modules {
	return &Modules{logger: logger.With().Str("component", "modindex").Logger()}
}

// Add appends a module.
func (m *Modules) Add(name string, r *resolver.Resolver) {
	m.modules = append(m.modules, Module{Name: name, Resolver: r})
}

// Modules returns the loaded modules.
func (m *Modules) Modules() []Module { return m.modules }

// LookupDefinition implements resolver.DefinitionIndex. It returns the first
// entry named name that is not itself a forward declaration and resolves to a
// type in its own module.
func (m *Modules) LookupDefinition(name string) *resolver.Type {
	for _, mod := range m.modules {
		for _, e := range mod.Resolver.Container().LookupType(name) {
			if dwarfinfo.IsDeclaration(e) {
				continue
			}
			if t := mod.Resolver.Resolve(e); t != nil {
				m.logger.Debug().
					Str("name", name).
					Str("module", mod.Name).
					Stringer("id", t.ID).
					Msg("Found definition")
				return t
			}
		}
	}
	m.logger.Debug().Str("name", name).Msg("No definition in any module")
	return nil
}
