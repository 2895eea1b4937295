package cli

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/coral-mesh/dtypes/internal/dwarfinfo"
	cerrors "github.com/coral-mesh/dtypes/internal/errors"
	"github.com/coral-mesh/dtypes/internal/modindex"
	"github.com/coral-mesh/dtypes/internal/resolver"
	"github.com/coral-mesh/dtypes/internal/target"
	"github.com/coral-mesh/dtypes/internal/typesystem"
)

// session is an opened binary with a resolver per module. The first module
// is the binary itself; the others are only searched for definitions of
// forward-declared types.
type session struct {
	binary   *dwarfinfo.Binary
	extra    []*dwarfinfo.Binary
	target   target.Target
	resolver *resolver.Resolver
	modules  *modindex.Modules
	logger   zerolog.Logger
}

// openSession opens path and every module binary. triple, when not empty,
// overrides the target detected from the binary.
func openSession(path string, modulePaths []string, triple string, maxDepth int, logger zerolog.Logger) (*session, error) {
	bin, err := dwarfinfo.Open(path, logger)
	if err != nil {
		return nil, err
	}

	s := &session{
		binary:  bin,
		target:  bin.Target,
		modules: modindex.New(logger),
		logger:  logger,
	}
	if triple != "" {
		t, err := target.ParseTriple(triple)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.target = t
	}

	ts := typesystem.New(s.target, logger)
	cfg := resolver.Config{MaxDepth: maxDepth, Index: s.modules}

	s.resolver = resolver.New(bin.Data, ts, cfg, logger)
	s.modules.Add(path, s.resolver)

	for _, mp := range modulePaths {
		mod, err := dwarfinfo.Open(mp, logger)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to open module: %w", err)
		}
		s.extra = append(s.extra, mod)
		s.modules.Add(mp, resolver.New(mod.Data, ts, cfg, logger))
	}

	logger.Debug().
		Str("binary", path).
		Str("target", s.target.String()).
		Int("modules", len(s.modules.Modules())).
		Msg("Session opened")
	return s, nil
}

// Close closes every opened binary.
func (s *session) Close() {
	cerrors.DeferClose(s.logger, s.binary, "failed to close binary")
	for _, m := range s.extra {
		cerrors.DeferClose(s.logger, m, "failed to close module")
	}
}
