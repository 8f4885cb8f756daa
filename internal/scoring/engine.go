package scoring

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/calder-v/metascope/api/schemas"
)

// Engine holds the registry of available scoring profiles and runs the
// active ones, in order, against assets. Downstream consumers index results
// positionally by profile id, so an unknown id in the active list is a
// hard caller error, never a silent skip.
type Engine struct {
	logger   *zap.Logger
	profiles map[string]Profile
}

// NewEngine builds an engine over the given profiles.
func NewEngine(logger *zap.Logger, profiles ...Profile) (*Engine, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if len(profiles) == 0 {
		return nil, errors.New("at least one scoring profile is required")
	}

	registry := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		if p == nil {
			return nil, errors.New("scoring profile cannot be nil")
		}
		if _, dup := registry[p.ID()]; dup {
			return nil, fmt.Errorf("duplicate scoring profile id %q", p.ID())
		}
		registry[p.ID()] = p
	}

	return &Engine{
		logger:   logger.With(zap.String("component", "scoring_engine")),
		profiles: registry,
	}, nil
}

// NewDefaultEngine registers the two built-in profiles.
func NewDefaultEngine(logger *zap.Logger) (*Engine, error) {
	return NewEngine(logger, &StandardCompleteness{}, &Industry5D{})
}

// ScoreAll runs every active profile against one asset and returns the
// results in the configured order.
func (e *Engine) ScoreAll(asset *schemas.Asset, ctx *Context) ([]schemas.ProfileScoreResult, error) {
	if asset == nil {
		return nil, errors.New("asset cannot be nil")
	}
	if ctx == nil || ctx.Config == nil {
		return nil, errors.New("scoring context with config is required")
	}

	active := ctx.Config.ActiveProfiles
	results := make([]schemas.ProfileScoreResult, 0, len(active))
	for _, id := range active {
		profile, ok := e.profiles[id]
		if !ok {
			return nil, fmt.Errorf("no scoring profile registered for id %q", id)
		}
		results = append(results, profile.Score(asset, ctx))
	}
	return results, nil
}

// ScoreBatch scores every asset in the slice, keyed by asset GUID. The
// whole batch fails on the first configuration error; misconfiguration is
// not a per-asset condition. A duplicated GUID keeps the last occurrence
// and is logged as a warning; GUIDs are unique in a well-formed catalog
// export.
func (e *Engine) ScoreBatch(assets []schemas.Asset, ctx *Context) (map[string][]schemas.ProfileScoreResult, error) {
	out := make(map[string][]schemas.ProfileScoreResult, len(assets))
	for i := range assets {
		asset := &assets[i]
		results, err := e.ScoreAll(asset, ctx)
		if err != nil {
			return nil, fmt.Errorf("scoring asset %s: %w", asset.GUID, err)
		}
		if _, dup := out[asset.GUID]; dup {
			e.logger.Warn("Duplicate asset GUID in batch; keeping the last occurrence",
				zap.String("guid", asset.GUID))
		}
		out[asset.GUID] = results
	}
	e.logger.Debug("Scored asset batch",
		zap.Int("assets", len(assets)),
		zap.Strings("profiles", ctx.Config.ActiveProfiles),
	)
	return out, nil
}
