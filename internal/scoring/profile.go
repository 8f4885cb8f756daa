package scoring

import (
	"github.com/calder-v/metascope/api/schemas"
	"github.com/calder-v/metascope/internal/config"
)

// Context carries everything a profile needs beyond the asset itself: the
// evaluation timestamp, the config version string recorded on results, and
// the pre-validated rubric configuration.
type Context struct {
	NowMs         int64
	ConfigVersion string
	Config        *config.ScoringConfig
}

// Profile is one named scoring strategy. Implementations are pure functions
// of (asset, context): no caching, no I/O, no retained state. All
// enrichment must already be present on the asset.
type Profile interface {
	ID() string
	Score(asset *schemas.Asset, ctx *Context) schemas.ProfileScoreResult
}
