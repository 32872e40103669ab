package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dexforge/dexforge/pkg/models"
	"github.com/dexforge/dexforge/pkg/persistence"
)

// FlowRepository handles flow-related database operations.
type FlowRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewFlowRepository creates a new flow repository.
func NewFlowRepository(db *sql.DB, logger *slog.Logger) *FlowRepository {
	return &FlowRepository{db: db, logger: logger}
}

// scanner abstracts sql.Row and sql.Rows for shared scan code.
type scanner interface {
	Scan(dest ...any) error
}

// ListFlows returns paginated and filtered flows.
func (r *FlowRepository) ListFlows(ctx context.Context, opts persistence.ListFlowsOptions) (*persistence.FlowListResult, error) {
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 20
	}

	if opts.SortBy == "" {
		opts.SortBy = "created_at"
	}

	if opts.SortOrder == "" {
		opts.SortOrder = "desc"
	}

	// Sort clauses are interpolated into SQL, so they only pass through an
	// allowlist, never raw request input.
	allowedSorts := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"name":       true,
	}
	if !allowedSorts[opts.SortBy] {
		return nil, fmt.Errorf("invalid sort field: %s", opts.SortBy)
	}

	order := "DESC"
	if opts.SortOrder == "asc" {
		order = "ASC"
	}

	where := "WHERE 1=1"
	args := make([]any, 0, 4)

	if opts.Owner != "" {
		args = append(args, opts.Owner)
		where += fmt.Sprintf(" AND owner = $%d", len(args))
	}

	if opts.Status != nil {
		args = append(args, string(*opts.Status))
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var totalCount int64

	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM flows "+where, args...).Scan(&totalCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count flows: %w", err)
	}

	args = append(args, opts.Limit, opts.Offset)
	query := fmt.Sprintf(`
		SELECT
			id
		  , name
		  , description
		  , status
		  , connections
		  , metadata
		  , owner
		  , created_at
		  , updated_at
		  , published_at
		FROM flows
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, where, opts.SortBy, order, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query flows: %w", err)
	}

	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	flows := make([]*models.Flow, 0)

	for rows.Next() {
		flow, err := r.scanFlowBase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flow: %w", err)
		}

		if err := r.loadFlowNodes(ctx, flow); err != nil {
			return nil, fmt.Errorf("failed to load flow nodes: %w", err)
		}

		flows = append(flows, flow)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating flows: %w", err)
	}

	return &persistence.FlowListResult{
		Flows:       flows,
		TotalCount:  totalCount,
		HasNextPage: int64(opts.Offset+len(flows)) < totalCount,
	}, nil
}

// GetByID retrieves a flow with its nodes.
func (r *FlowRepository) GetByID(ctx context.Context, id string) (*models.Flow, error) {
	query := `
		SELECT
			id
		  , name
		  , description
		  , status
		  , connections
		  , metadata
		  , owner
		  , created_at
		  , updated_at
		  , published_at
		FROM flows
		WHERE id = $1
	`

	flow, err := r.scanFlowBase(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewFlowError("GetByID", id, persistence.ErrFlowNotFound)
		}

		return nil, fmt.Errorf("failed to scan flow: %w", err)
	}

	if err := r.loadFlowNodes(ctx, flow); err != nil {
		return nil, fmt.Errorf("failed to load flow nodes: %w", err)
	}

	return flow, nil
}

// Save upserts the flow row and replaces its node rows in one transaction.
func (r *FlowRepository) Save(ctx context.Context, flow *models.Flow) error {
	now := time.Now().UTC()
	if flow.CreatedAt.IsZero() {
		flow.CreatedAt = now
	}

	flow.UpdatedAt = now

	connections, err := json.Marshal(flow.Connections)
	if err != nil {
		return fmt.Errorf("failed to marshal connections: %w", err)
	}

	metadata, err := json.Marshal(flow.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	upsert := `
		INSERT INTO flows (id, name, description, status, connections, metadata, owner, created_at, updated_at, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			status = EXCLUDED.status,
			connections = EXCLUDED.connections,
			metadata = EXCLUDED.metadata,
			owner = EXCLUDED.owner,
			updated_at = EXCLUDED.updated_at,
			published_at = EXCLUDED.published_at
	`

	_, err = tx.ExecContext(ctx, upsert,
		flow.ID, flow.Name, flow.Description, string(flow.Status), connections, metadata,
		flow.Owner, flow.CreatedAt, flow.UpdatedAt, flow.PublishedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert flow %s: %w", flow.ID, err)
	}

	_, err = tx.ExecContext(ctx, "DELETE FROM flow_nodes WHERE flow_id = $1", flow.ID)
	if err != nil {
		return fmt.Errorf("failed to clear flow nodes: %w", err)
	}

	for _, node := range flow.Nodes {
		config, err := json.Marshal(node.Config)
		if err != nil {
			return fmt.Errorf("failed to marshal config for node %s: %w", node.ID, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO flow_nodes (flow_id, id, type, name, config, position_x, position_y, enabled)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, flow.ID, node.ID, node.Type, node.Name, config, node.PositionX, node.PositionY, node.Enabled)
		if err != nil {
			return fmt.Errorf("failed to insert node %s: %w", node.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit flow %s: %w", flow.ID, err)
	}

	return nil
}

// Delete removes a flow; its nodes cascade.
func (r *FlowRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM flows WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete flow %s: %w", id, err)
	}

	return nil
}

func (r *FlowRepository) scanFlowBase(row scanner) (*models.Flow, error) {
	var (
		flow        models.Flow
		status      string
		connections []byte
		metadata    []byte
		owner       sql.NullString
		publishedAt sql.NullTime
	)

	err := row.Scan(&flow.ID, &flow.Name, &flow.Description, &status, &connections,
		&metadata, &owner, &flow.CreatedAt, &flow.UpdatedAt, &publishedAt)
	if err != nil {
		return nil, err
	}

	flow.Status = models.FlowStatus(status)
	flow.Owner = owner.String

	if publishedAt.Valid {
		t := publishedAt.Time
		flow.PublishedAt = &t
	}

	if err := json.Unmarshal(connections, &flow.Connections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal connections: %w", err)
	}

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &flow.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	return &flow, nil
}

func (r *FlowRepository) loadFlowNodes(ctx context.Context, flow *models.Flow) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, name, config, position_x, position_y, enabled
		FROM flow_nodes
		WHERE flow_id = $1
		ORDER BY id
	`, flow.ID)
	if err != nil {
		return fmt.Errorf("failed to query flow nodes: %w", err)
	}

	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	flow.Nodes = make([]*models.FlowNode, 0)

	for rows.Next() {
		var (
			node   models.FlowNode
			config []byte
		)

		err := rows.Scan(&node.ID, &node.Type, &node.Name, &config,
			&node.PositionX, &node.PositionY, &node.Enabled)
		if err != nil {
			return fmt.Errorf("failed to scan flow node: %w", err)
		}

		if err := json.Unmarshal(config, &node.Config); err != nil {
			return fmt.Errorf("failed to unmarshal config for node %s: %w", node.ID, err)
		}

		flow.Nodes = append(flow.Nodes, &node)
	}

	return rows.Err()
}
