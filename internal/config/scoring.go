package config

import (
	"fmt"
	"regexp"

	"github.com/spf13/viper"

	"github.com/calder-v/metascope/api/schemas"
)

// ScoringConfig is the fully-resolved rubric/threshold/weight document the
// scoring engine consumes. It is validated once at load time; the engines
// never see raw, unchecked values. Profile code treats it as read-only.
type ScoringConfig struct {
	Version        string   `mapstructure:"version" yaml:"version"`
	ActiveProfiles []string `mapstructure:"active_profiles" yaml:"active_profiles"`

	Bands            BandThresholds   `mapstructure:"bands" yaml:"bands"`
	Timeliness       TimelinessBands  `mapstructure:"timeliness" yaml:"timeliness"`
	DimensionWeights DimensionWeights `mapstructure:"dimension_weights" yaml:"dimension_weights"`

	// WeightOverrides replaces the default dimension weights for a matching
	// scope. Keys are "domain:<guid>", "connection:<name>" or "type:<TypeName>";
	// domain beats connection beats type.
	WeightOverrides map[string]DimensionWeights `mapstructure:"weight_overrides" yaml:"weight_overrides"`

	Completeness CompletenessConfig `mapstructure:"completeness" yaml:"completeness"`
	Naming       NamingConfig       `mapstructure:"naming" yaml:"naming"`
	Usability    UsabilityConfig    `mapstructure:"usability" yaml:"usability"`

	// DroppedPatterns records naming patterns rejected during validation so
	// the caller can log them. Malformed regexes never reach the hot path.
	DroppedPatterns []string `mapstructure:"-" yaml:"-"`
}

// BandThresholds maps a 0-100 score to a quality band by descending
// comparison: score >= Excellent -> excellent, and so on down to critical.
type BandThresholds struct {
	Excellent float64 `mapstructure:"excellent" yaml:"excellent"`
	Good      float64 `mapstructure:"good" yaml:"good"`
	Fair      float64 `mapstructure:"fair" yaml:"fair"`
	Poor      float64 `mapstructure:"poor" yaml:"poor"`
}

// TimelinessBands holds the age thresholds (in days) of the five-tier
// recency step function.
type TimelinessBands struct {
	FreshDays  int `mapstructure:"fresh_days" yaml:"fresh_days"`
	RecentDays int `mapstructure:"recent_days" yaml:"recent_days"`
	AgingDays  int `mapstructure:"aging_days" yaml:"aging_days"`
	StaleDays  int `mapstructure:"stale_days" yaml:"stale_days"`
}

// DimensionWeights weighs the five Industry5D dimensions into the overall
// score. Weights need not sum to 1; the profile normalizes.
type DimensionWeights struct {
	Completeness float64 `mapstructure:"completeness" yaml:"completeness"`
	Accuracy     float64 `mapstructure:"accuracy" yaml:"accuracy"`
	Timeliness   float64 `mapstructure:"timeliness" yaml:"timeliness"`
	Consistency  float64 `mapstructure:"consistency" yaml:"consistency"`
	Usability    float64 `mapstructure:"usability" yaml:"usability"`
}

// For returns the weight for one dimension.
func (w DimensionWeights) For(d schemas.Dimension) float64 {
	switch d {
	case schemas.DimensionCompleteness:
		return w.Completeness
	case schemas.DimensionAccuracy:
		return w.Accuracy
	case schemas.DimensionTimeliness:
		return w.Timeliness
	case schemas.DimensionConsistency:
		return w.Consistency
	case schemas.DimensionUsability:
		return w.Usability
	default:
		return 0
	}
}

// CompletenessCheck is one weighted boolean check of the
// StandardCompleteness rubric.
type CompletenessCheck struct {
	ID     string  `mapstructure:"id" yaml:"id"`
	Points float64 `mapstructure:"points" yaml:"points"`
}

// CompletenessConfig holds the per-asset-type rubrics of the
// StandardCompleteness profile. A type without a rubric scores zero with
// band critical; that is a data condition, not an error.
type CompletenessConfig struct {
	Rubrics map[schemas.AssetType][]CompletenessCheck `mapstructure:"rubrics" yaml:"rubrics"`
}

// NamingConfig drives the accuracy/namingCompliance check.
type NamingConfig struct {
	MinLength        int      `mapstructure:"min_length" yaml:"min_length"`
	RequiredPatterns []string `mapstructure:"required_patterns" yaml:"required_patterns"`

	compiled []*regexp.Regexp
}

// Compiled returns the regexes that survived validation.
func (n *NamingConfig) Compiled() []*regexp.Regexp {
	return n.compiled
}

// compile pre-compiles the configured patterns, returning the ones it had
// to drop. Compiling up front is what keeps regex evaluation in the scoring
// hot path exception-free.
func (n *NamingConfig) compile() (dropped []string) {
	n.compiled = n.compiled[:0]
	for _, pattern := range n.RequiredPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			dropped = append(dropped, pattern)
			continue
		}
		n.compiled = append(n.compiled, re)
	}
	return dropped
}

// UsabilityConfig drives the usability dimension of Industry5D.
type UsabilityConfig struct {
	DescriptionTargetLen int      `mapstructure:"description_target_len" yaml:"description_target_len"`
	PlaceholderPhrases   []string `mapstructure:"placeholder_phrases" yaml:"placeholder_phrases"`
	MaxPopularity        float64  `mapstructure:"max_popularity" yaml:"max_popularity"`
	MaxViewScore         float64  `mapstructure:"max_view_score" yaml:"max_view_score"`
	MaxStarCount         float64  `mapstructure:"max_star_count" yaml:"max_star_count"`
	DiscoverabilityCap   float64  `mapstructure:"discoverability_cap" yaml:"discoverability_cap"`
}

// setScoringDefaults wires the scalar scoring defaults into viper. The
// structured defaults (rubric tables, phrase lists) live in
// applyStaticDefaults because viper merges maps poorly.
func setScoringDefaults(v *viper.Viper) {
	v.SetDefault("scoring.version", "2.0")
	v.SetDefault("scoring.active_profiles", []string{"industry5d"})

	v.SetDefault("scoring.bands.excellent", 80)
	v.SetDefault("scoring.bands.good", 60)
	v.SetDefault("scoring.bands.fair", 40)
	v.SetDefault("scoring.bands.poor", 20)

	v.SetDefault("scoring.timeliness.fresh_days", 7)
	v.SetDefault("scoring.timeliness.recent_days", 30)
	v.SetDefault("scoring.timeliness.aging_days", 90)
	v.SetDefault("scoring.timeliness.stale_days", 180)

	v.SetDefault("scoring.dimension_weights.completeness", 0.30)
	v.SetDefault("scoring.dimension_weights.accuracy", 0.25)
	v.SetDefault("scoring.dimension_weights.timeliness", 0.20)
	v.SetDefault("scoring.dimension_weights.consistency", 0.15)
	v.SetDefault("scoring.dimension_weights.usability", 0.10)

	v.SetDefault("scoring.naming.min_length", 3)

	v.SetDefault("scoring.usability.description_target_len", 200)
	v.SetDefault("scoring.usability.max_popularity", 100)
	v.SetDefault("scoring.usability.max_view_score", 100)
	v.SetDefault("scoring.usability.max_star_count", 50)
	v.SetDefault("scoring.usability.discoverability_cap", 0.3)
}

// defaultTabularRubric is the full seven-check rubric for row-level assets.
func defaultTabularRubric() []CompletenessCheck {
	return []CompletenessCheck{
		{ID: "hasDescription", Points: 20},
		{ID: "hasOwner", Points: 20},
		{ID: "hasCertification", Points: 15},
		{ID: "hasClassification", Points: 10},
		{ID: "hasGlossaryTerms", Points: 10},
		{ID: "hasReadme", Points: 10},
		{ID: "hasLineage", Points: 15},
	}
}

// defaultContainerRubric omits the checks that make no sense for container
// assets (readme, lineage) and redistributes their points.
func defaultContainerRubric() []CompletenessCheck {
	return []CompletenessCheck{
		{ID: "hasDescription", Points: 30},
		{ID: "hasOwner", Points: 30},
		{ID: "hasCertification", Points: 20},
		{ID: "hasClassification", Points: 10},
		{ID: "hasGlossaryTerms", Points: 10},
	}
}

// applyStaticDefaults fills the structured pieces viper left empty.
func (c *ScoringConfig) applyStaticDefaults() {
	if c.Completeness.Rubrics == nil {
		c.Completeness.Rubrics = map[schemas.AssetType][]CompletenessCheck{
			schemas.AssetTable:            defaultTabularRubric(),
			schemas.AssetView:             defaultTabularRubric(),
			schemas.AssetMaterializedView: defaultTabularRubric(),
			schemas.AssetSchema:           defaultContainerRubric(),
			schemas.AssetDatabase:         defaultContainerRubric(),
			schemas.AssetConnection:       defaultContainerRubric(),
		}
	}
	if len(c.Usability.PlaceholderPhrases) == 0 {
		c.Usability.PlaceholderPhrases = []string{"tbd", "todo", "fixme", "n/a", "lorem ipsum", "placeholder"}
	}
	if len(c.ActiveProfiles) == 0 {
		c.ActiveProfiles = []string{"industry5d"}
	}
}

// Validate checks thresholds and weights and pre-compiles the naming
// patterns. Patterns that fail to compile are dropped (recorded in
// DroppedPatterns), matching the "malformed regex is a non-match, not a
// crash" contract.
func (c *ScoringConfig) Validate() error {
	b := c.Bands
	if !(b.Excellent > b.Good && b.Good > b.Fair && b.Fair > b.Poor && b.Poor >= 0) {
		return fmt.Errorf("bands must be strictly descending: excellent > good > fair > poor >= 0")
	}
	t := c.Timeliness
	if !(t.FreshDays > 0 && t.RecentDays > t.FreshDays && t.AgingDays > t.RecentDays && t.StaleDays > t.AgingDays) {
		return fmt.Errorf("timeliness bands must be strictly increasing: fresh < recent < aging < stale")
	}
	w := c.DimensionWeights
	total := w.Completeness + w.Accuracy + w.Timeliness + w.Consistency + w.Usability
	if total <= 0 {
		return fmt.Errorf("dimension weights must have a positive total")
	}
	for dim, weight := range map[string]float64{
		"completeness": w.Completeness,
		"accuracy":     w.Accuracy,
		"timeliness":   w.Timeliness,
		"consistency":  w.Consistency,
		"usability":    w.Usability,
	} {
		if weight < 0 {
			return fmt.Errorf("dimension weight %q must not be negative", dim)
		}
	}
	for typeName, rubric := range c.Completeness.Rubrics {
		for _, check := range rubric {
			if check.Points < 0 {
				return fmt.Errorf("completeness rubric for %s: check %q has negative points", typeName, check.ID)
			}
		}
	}
	if c.Usability.DiscoverabilityCap < 0 || c.Usability.DiscoverabilityCap > 1 {
		return fmt.Errorf("usability.discoverability_cap must be within [0, 1]")
	}
	c.DroppedPatterns = c.Naming.compile()
	return nil
}

// WeightsFor resolves the dimension weights for an asset, honoring the
// override precedence (domain > connection > type), and reports which scope
// applied so results can record it.
func (c *ScoringConfig) WeightsFor(asset *schemas.Asset) (DimensionWeights, string) {
	if c.WeightOverrides != nil {
		for _, domain := range asset.DomainGUIDs {
			if w, ok := c.WeightOverrides["domain:"+domain]; ok {
				return w, "domain:" + domain
			}
		}
		if asset.ConnectionName != "" {
			if w, ok := c.WeightOverrides["connection:"+asset.ConnectionName]; ok {
				return w, "connection:" + asset.ConnectionName
			}
		}
		if w, ok := c.WeightOverrides["type:"+string(asset.TypeName)]; ok {
			return w, "type:" + string(asset.TypeName)
		}
	}
	return c.DimensionWeights, "default"
}
