package schemas

// AssetType identifies the kind of catalog entity an Asset represents.
// The set is closed; anything else coming off the wire is kept as-is but
// reported as unknown by Known() so scoring can signal it instead of
// silently producing a zero.
type AssetType string

const (
	AssetTable            AssetType = "Table"
	AssetView             AssetType = "View"
	AssetMaterializedView AssetType = "MaterializedView"
	AssetSchema           AssetType = "Schema"
	AssetDatabase         AssetType = "Database"
	AssetConnection       AssetType = "Connection"
)

// AllAssetTypes lists every member of the closed asset type set.
var AllAssetTypes = []AssetType{
	AssetTable,
	AssetView,
	AssetMaterializedView,
	AssetSchema,
	AssetDatabase,
	AssetConnection,
}

// Known reports whether the type is a member of the closed set.
func (t AssetType) Known() bool {
	for _, known := range AllAssetTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Tabular reports whether the type carries row-level data. Lineage and usage
// metrics are only meaningful for tabular assets.
func (t AssetType) Tabular() bool {
	return t == AssetTable || t == AssetView || t == AssetMaterializedView
}

// Asset is one catalog entity as ingested from the catalog client.
// Enrichment caches fill in the lineage and readme fields in place; scoring
// treats the record as read-only from then on. Timestamps are epoch
// milliseconds, matching the catalog wire format.
type Asset struct {
	GUID           string    `json:"guid"`
	QualifiedName  string    `json:"qualifiedName"`
	Name           string    `json:"name"`
	ConnectionName string    `json:"connectionName,omitempty"`
	TypeName       AssetType `json:"typeName"`

	// Governance metadata.
	Description          string   `json:"description,omitempty"`
	UserDescription      string   `json:"userDescription,omitempty"`
	OwnerUsers           []string `json:"ownerUsers,omitempty"`
	OwnerGroups          []string `json:"ownerGroups,omitempty"`
	CertificateStatus    string   `json:"certificateStatus,omitempty"`
	CertificateUpdatedAt int64    `json:"certificateUpdatedAt,omitempty"`
	Classifications      []string `json:"classifications,omitempty"`
	MeaningNames         []string `json:"meaningNames,omitempty"`
	DomainGUIDs          []string `json:"domainGUIDs,omitempty"`

	// Temporal metadata.
	UpdateTime      int64 `json:"updateTime,omitempty"`
	SourceUpdatedAt int64 `json:"sourceUpdatedAt,omitempty"`
	SourceReadAt    int64 `json:"sourceReadAt,omitempty"`

	// Usage metadata.
	PopularityScore float64 `json:"popularityScore,omitempty"`
	ViewScore       float64 `json:"viewScore,omitempty"`
	StarCount       int     `json:"starCount,omitempty"`

	// IsDiscoverable is a tri-state: nil means the catalog never said.
	// Only an explicit false triggers the usability cap.
	IsDiscoverable *bool `json:"isDiscoverable,omitempty"`

	// Enrichment facts, filled by the lineage and readme caches.
	HasLineage      bool `json:"hasLineage,omitempty"`
	UpstreamCount   int  `json:"upstreamCount,omitempty"`
	DownstreamCount int  `json:"downstreamCount,omitempty"`
	HasReadme       bool `json:"hasReadme,omitempty"`
}

// BestDescription prefers the human-authored description over the
// source-harvested one.
func (a *Asset) BestDescription() string {
	if a.UserDescription != "" {
		return a.UserDescription
	}
	return a.Description
}

// Owned reports whether any owner user or group is assigned.
func (a *Asset) Owned() bool {
	return len(a.OwnerUsers) > 0 || len(a.OwnerGroups) > 0
}

// Certified reports whether a certificate status is recorded at all,
// regardless of its value.
func (a *Asset) Certified() bool {
	return a.CertificateStatus != ""
}

// Classified reports whether any classification (tag) is attached.
func (a *Asset) Classified() bool {
	return len(a.Classifications) > 0
}

// HasGlossaryTerms reports whether any glossary term is linked.
func (a *Asset) HasGlossaryTerms() bool {
	return len(a.MeaningNames) > 0
}

// HasDomain reports whether the asset is assigned to a data domain.
func (a *Asset) HasDomain() bool {
	return len(a.DomainGUIDs) > 0
}

// FullLineage reports whether the asset has both upstream and downstream
// edges. Derived, not stored.
func (a *Asset) FullLineage() bool {
	return a.UpstreamCount > 0 && a.DownstreamCount > 0
}

// Orphaned reports whether a tabular asset has no lineage at all.
func (a *Asset) Orphaned() bool {
	return a.TypeName.Tabular() && a.UpstreamCount == 0 && a.DownstreamCount == 0 && !a.HasLineage
}
