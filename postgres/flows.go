package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fluxwire/flowgraph"
)

// SaveFlow upserts a full flow document. If f.ID is empty, a UUID is
// auto-generated. Returns the flow with id and timestamps filled in.
func (s *PGStore) SaveFlow(ctx context.Context, f *flowgraph.Flow) (*flowgraph.Flow, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	f.UpdatedAt = now

	doc, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("flowgraph: marshal flow %s: %w", f.ID, err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO flows (id, name, document, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE
		 SET name = EXCLUDED.name, document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`,
		f.ID, f.Name, doc, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("flowgraph: save flow %s: %w", f.ID, err)
	}

	return f, nil
}

// GetFlow fetches a single flow document by its ID.
// Returns ErrFlowNotFound if it doesn't exist.
func (s *PGStore) GetFlow(ctx context.Context, flowID string) (*flowgraph.Flow, error) {
	var doc []byte
	err := s.db.QueryRow(ctx,
		`SELECT document FROM flows WHERE id = $1`, flowID,
	).Scan(&doc)

	if err != nil {
		if isNoRows(err) {
			return nil, flowgraph.ErrFlowNotFound
		}
		return nil, fmt.Errorf("flowgraph: get flow: %w", err)
	}

	var f flowgraph.Flow
	if err := json.Unmarshal(doc, &f); err != nil {
		return nil, fmt.Errorf("flowgraph: unmarshal flow %s: %w", flowID, err)
	}
	f.ID = flowID
	return &f, nil
}

// ListFlows returns id and name of every saved flow, ordered by creation.
// Returns an empty slice (not nil) if none exist.
func (s *PGStore) ListFlows(ctx context.Context) ([]flowgraph.FlowSummary, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name FROM flows ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("flowgraph: list flows: %w", err)
	}
	defer rows.Close()

	flows := []flowgraph.FlowSummary{}
	for rows.Next() {
		var fs flowgraph.FlowSummary
		if err := rows.Scan(&fs.ID, &fs.Name); err != nil {
			return nil, fmt.Errorf("flowgraph: scan flow: %w", err)
		}
		flows = append(flows, fs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("flowgraph: rows flows: %w", err)
	}

	return flows, nil
}

// DeleteFlow removes a flow document by its ID.
// No error if it doesn't exist.
func (s *PGStore) DeleteFlow(ctx context.Context, flowID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM flows WHERE id = $1`, flowID)
	if err != nil {
		return fmt.Errorf("flowgraph: delete flow: %w", err)
	}
	return nil
}
