package gaps

import (
	"fmt"

	"github.com/calder-v/metascope/api/schemas"
)

// signalPhrases drives the human-readable explanation for each missing
// signal: what is missing and why it matters.
var signalPhrases = map[schemas.SignalType]struct {
	missing string
	why     string
}{
	schemas.SignalOwnership: {
		missing: "has no owner assigned",
		why:     "nobody is accountable for its correctness",
	},
	schemas.SignalSemantics: {
		missing: "has no description or glossary terms",
		why:     "consumers cannot tell what the data means",
	},
	schemas.SignalLineage: {
		missing: "has no recorded lineage",
		why:     "upstream changes cannot be traced to it",
	},
	schemas.SignalSensitivity: {
		missing: "has no sensitivity classification",
		why:     "it cannot be safely included in access policies",
	},
	schemas.SignalFreshness: {
		missing: "has not been updated recently",
		why:     "its contents may be stale",
	},
	schemas.SignalQuality: {
		missing: "has no readme or quality documentation",
		why:     "consumers cannot judge whether it is fit for use",
	},
	schemas.SignalCertification: {
		missing: "has no certification status",
		why:     "its trust level is undeclared",
	},
	schemas.SignalUsage: {
		missing: "shows no usage activity",
		why:     "it may be dead weight or undiscovered",
	},
}

// ExplainGap produces the explanation text for a missing signal. A nil
// evidence entry means the signal was never checked for this asset, which
// the text calls out explicitly.
func ExplainGap(asset *schemas.Asset, t schemas.SignalType, sig *schemas.SignalEvidence) string {
	phrase, ok := signalPhrases[t]
	if !ok {
		return fmt.Sprintf("%s %q is missing the %s signal.", asset.TypeName, asset.Name, t)
	}
	if sig == nil {
		return fmt.Sprintf("%s %q was never checked for %s; %s until it is verified.",
			asset.TypeName, asset.Name, t, phrase.why)
	}
	return fmt.Sprintf("%s %q %s; %s.", asset.TypeName, asset.Name, phrase.missing, phrase.why)
}

// ActionScope produces the one-line scope text for a remediation action
// covering count assets in one workstream.
func ActionScope(t schemas.SignalType, count int) string {
	noun := "assets"
	if count == 1 {
		noun = "asset"
	}
	verbs := map[schemas.SignalType]string{
		schemas.SignalOwnership:     "Assign owners to",
		schemas.SignalSemantics:     "Add descriptions or glossary terms to",
		schemas.SignalLineage:       "Capture lineage for",
		schemas.SignalSensitivity:   "Classify sensitivity on",
		schemas.SignalFreshness:     "Refresh or re-ingest",
		schemas.SignalQuality:       "Write readme documentation for",
		schemas.SignalCertification: "Certify",
		schemas.SignalUsage:         "Review adoption of",
	}
	verb, ok := verbs[t]
	if !ok {
		verb = "Remediate " + string(t) + " on"
	}
	return fmt.Sprintf("%s %d %s", verb, count, noun)
}
