package catalog

import (
	"github.com/spf13/cast"

	"github.com/calder-v/metascope/api/schemas"
)

// AssetFromEntity decodes a raw catalog entity into the typed Asset shape.
// Attribute maps coming off the wire are dynamically typed (numbers may be
// float64 or json.Number, lists may be []interface{} of anything), so every
// field goes through a tolerant cast; absent or malformed attributes decode
// to zero values rather than errors.
func AssetFromEntity(entity *Entity) schemas.Asset {
	attrs := entity.Attributes
	if attrs == nil {
		attrs = map[string]interface{}{}
	}

	asset := schemas.Asset{
		GUID:           entity.GUID,
		TypeName:       schemas.AssetType(entity.TypeName),
		QualifiedName:  cast.ToString(attrs["qualifiedName"]),
		Name:           cast.ToString(attrs["name"]),
		ConnectionName: cast.ToString(attrs["connectionName"]),

		Description:          cast.ToString(attrs["description"]),
		UserDescription:      cast.ToString(attrs["userDescription"]),
		OwnerUsers:           cast.ToStringSlice(attrs["ownerUsers"]),
		OwnerGroups:          cast.ToStringSlice(attrs["ownerGroups"]),
		CertificateStatus:    cast.ToString(attrs["certificateStatus"]),
		CertificateUpdatedAt: cast.ToInt64(attrs["certificateUpdatedAt"]),
		Classifications:      cast.ToStringSlice(attrs["classificationNames"]),
		MeaningNames:         cast.ToStringSlice(attrs["meaningNames"]),
		DomainGUIDs:          cast.ToStringSlice(attrs["domainGUIDs"]),

		UpdateTime:      cast.ToInt64(attrs["updateTime"]),
		SourceUpdatedAt: cast.ToInt64(attrs["sourceUpdatedAt"]),
		SourceReadAt:    cast.ToInt64(attrs["sourceReadAt"]),

		PopularityScore: cast.ToFloat64(attrs["popularityScore"]),
		ViewScore:       cast.ToFloat64(attrs["viewScore"]),
		StarCount:       cast.ToInt(attrs["starCount"]),

		HasLineage: cast.ToBool(attrs["__hasLineage"]),
	}

	// isDiscoverable is tri-state: only record it when the catalog sent it.
	if raw, present := attrs["isDiscoverable"]; present && raw != nil {
		discoverable := cast.ToBool(raw)
		asset.IsDiscoverable = &discoverable
	}

	// A readme is modeled as a relationship, not an attribute.
	if rel := entity.RelationshipAttributes; rel != nil {
		if readme, present := rel["readme"]; present && readme != nil {
			asset.HasReadme = true
		}
	}

	return asset
}
