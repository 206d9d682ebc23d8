package flowgraph

import (
	"context"
	"errors"
)

// ErrFlowNotFound is returned by DocumentStore implementations when a flow
// id does not resolve to a persisted document.
var ErrFlowNotFound = errors.New("flowgraph: flow not found")

// FlowSummary is the listing projection of a persisted flow.
type FlowSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DocumentStore defines the contract for persisting and retrieving flow
// documents. The editor owns all graph mutation in memory; a store only
// ever sees whole documents.
type DocumentStore interface {
	// Schema
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error

	// Documents
	SaveFlow(ctx context.Context, f *Flow) (*Flow, error)
	GetFlow(ctx context.Context, flowID string) (*Flow, error)
	ListFlows(ctx context.Context) ([]FlowSummary, error)
	DeleteFlow(ctx context.Context, flowID string) error
}
