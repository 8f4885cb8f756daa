// Package signals maps raw asset records into the fixed taxonomy of
// governance signals consumed by the gap engine. Extraction is a pure
// function; nothing here touches the network or retains state.
package signals

import (
	"strconv"
	"time"

	"github.com/calder-v/metascope/api/schemas"
)

// freshnessWindowDays bounds how old the newest timestamp may be for the
// FRESHNESS signal to count as present.
const freshnessWindowDays = 90

// Extract evaluates every applicable signal for one asset as of nowMs.
// Signals that do not apply to the asset's type (lineage and usage on
// containers) are omitted entirely - the "never checked" state - while
// applicable-but-missing signals are emitted with Present=false and source
// NOT_OBSERVED. Absent fields never panic; empty slices and zero
// timestamps read as missing.
func Extract(asset *schemas.Asset, nowMs int64) []schemas.SignalEvidence {
	now := time.UnixMilli(nowMs).UTC()
	out := make([]schemas.SignalEvidence, 0, len(schemas.AllSignalTypes))

	emit := func(t schemas.SignalType, present bool, value string) {
		evidence := schemas.SignalEvidence{
			Type:    t,
			Present: present,
			Source:  schemas.SourceNotObserved,
		}
		if present {
			evidence.Source = schemas.SourceObserved
			evidence.Value = value
			evidence.ObservedAt = now
		}
		out = append(out, evidence)
	}

	for _, t := range schemas.AllSignalTypes {
		switch t {
		case schemas.SignalOwnership:
			emit(t, asset.Owned(), firstNonEmpty(asset.OwnerUsers, asset.OwnerGroups))
		case schemas.SignalSemantics:
			emit(t, asset.HasGlossaryTerms() || asset.BestDescription() != "", firstOf(asset.MeaningNames))
		case schemas.SignalLineage:
			if !asset.TypeName.Tabular() {
				continue // never checked for containers
			}
			present := asset.HasLineage || asset.UpstreamCount > 0 || asset.DownstreamCount > 0
			emit(t, present, strconv.Itoa(asset.UpstreamCount+asset.DownstreamCount))
		case schemas.SignalSensitivity:
			emit(t, asset.Classified(), firstOf(asset.Classifications))
		case schemas.SignalFreshness:
			emit(t, fresh(asset, nowMs), "")
		case schemas.SignalQuality:
			emit(t, asset.HasReadme, "")
		case schemas.SignalCertification:
			emit(t, asset.Certified(), asset.CertificateStatus)
		case schemas.SignalUsage:
			if !asset.TypeName.Tabular() {
				continue // never checked for containers
			}
			present := asset.PopularityScore > 0 || asset.ViewScore > 0 || asset.StarCount > 0
			emit(t, present, "")
		}
	}
	return out
}

// fresh reports whether any of the asset's clocks ticked within the
// freshness window.
func fresh(asset *schemas.Asset, nowMs int64) bool {
	windowMs := int64(freshnessWindowDays) * 24 * 60 * 60 * 1000
	for _, ts := range []int64{asset.UpdateTime, asset.SourceUpdatedAt, asset.SourceReadAt} {
		if ts == 0 {
			continue
		}
		if nowMs-ts <= windowMs {
			return true
		}
	}
	return false
}

func firstOf(values []string) string {
	if len(values) > 0 {
		return values[0]
	}
	return ""
}

func firstNonEmpty(primary, secondary []string) string {
	if v := firstOf(primary); v != "" {
		return v
	}
	return firstOf(secondary)
}
