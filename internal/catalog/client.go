// Package catalog defines the abstract catalog client the engine depends
// on, plus a thin rate-limited REST implementation of it. The scoring and
// gap pipelines never talk to the catalog directly; only the enrichment
// caches and the CLI's asset loader do.
package catalog

import (
	"context"
)

// LineageDirection selects which side(s) of the lineage graph to traverse.
type LineageDirection string

const (
	DirectionUpstream   LineageDirection = "UPSTREAM"
	DirectionDownstream LineageDirection = "DOWNSTREAM"
	DirectionBoth       LineageDirection = "BOTH"
)

// LineageRequest asks for the lineage neighborhood of one entity.
type LineageRequest struct {
	GUID      string           `json:"guid"`
	Depth     int              `json:"depth"`
	Direction LineageDirection `json:"direction"`
}

// LineageEdge is one directed process edge in the lineage graph.
type LineageEdge struct {
	FromGUID string `json:"fromGuid"`
	ToGUID   string `json:"toGuid"`
}

// LineageSide holds the edges on one side of the target entity.
type LineageSide struct {
	Edges []LineageEdge `json:"edges"`
}

// LineageResponse is the wire shape of a lineage lookup.
type LineageResponse struct {
	Upstream   LineageSide `json:"upstream"`
	Downstream LineageSide `json:"downstream"`
}

// Entity is the raw catalog record: a type name plus two dynamic attribute
// maps. Use AssetFromEntity to decode into the typed Asset shape.
type Entity struct {
	GUID                   string                 `json:"guid"`
	TypeName               string                 `json:"typeName"`
	Attributes             map[string]interface{} `json:"attributes"`
	RelationshipAttributes map[string]interface{} `json:"relationshipAttributes"`
}

// EntityResponse wraps a single-entity lookup.
type EntityResponse struct {
	Entity Entity `json:"entity"`
}

// SearchRequest is the engine-facing subset of the catalog search body.
type SearchRequest struct {
	Query     string   `json:"query,omitempty"`
	TypeNames []string `json:"typeNames,omitempty"`
	Limit     int      `json:"limit,omitempty"`
	Offset    int      `json:"offset,omitempty"`
}

// SearchResponse is the raw search result page.
type SearchResponse struct {
	Entities         []Entity `json:"entities"`
	ApproximateCount int64    `json:"approximateCount"`
}

// Client is the abstract catalog/warehouse client. It is the engine's only
// external dependency; everything else is pure computation.
type Client interface {
	GetLineage(ctx context.Context, req LineageRequest) (*LineageResponse, error)
	GetEntityByGUID(ctx context.Context, guid string) (*EntityResponse, error)
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}
