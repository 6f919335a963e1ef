package pinecone

import "github.com/poiesic/docindex/vectorstore"

// Wire types for the index REST API. Field names are part of the interop
// contract with the existing index and must not change.

type upsertRequest struct {
	Vectors   []vectorstore.Record `json:"vectors"`
	Namespace string               `json:"namespace"`
}

type upsertResponse struct {
	UpsertedCount int `json:"upsertedCount"`
}

type queryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	Namespace       string    `json:"namespace"`
	IncludeMetadata bool      `json:"includeMetadata"`
}

type queryResponse struct {
	Matches   []vectorstore.Match `json:"matches"`
	Namespace string              `json:"namespace"`
}
