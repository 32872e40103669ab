package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dexforge/dexforge/pkg/models"
	"github.com/dexforge/dexforge/pkg/persistence"
)

// nodeRepository works directly on the flow_nodes table.
type nodeRepository struct {
	db    *sql.DB
	flows *FlowRepository
}

func (nr *nodeRepository) GetNodesByFlow(ctx context.Context, flowID string) ([]*models.FlowNode, error) {
	flow, err := nr.flows.GetByID(ctx, flowID)
	if err != nil {
		return nil, err
	}

	return flow.Nodes, nil
}

func (nr *nodeRepository) GetNodeByFlow(ctx context.Context, flowID, nodeID string) (*models.FlowNode, error) {
	var (
		node   models.FlowNode
		config []byte
	)

	err := nr.db.QueryRowContext(ctx, `
		SELECT id, type, name, config, position_x, position_y, enabled
		FROM flow_nodes
		WHERE flow_id = $1 AND id = $2
	`, flowID, nodeID).Scan(&node.ID, &node.Type, &node.Name, &config,
		&node.PositionX, &node.PositionY, &node.Enabled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewNodeError("GetNodeByFlow", flowID, nodeID, persistence.ErrNodeNotFound)
		}

		return nil, fmt.Errorf("failed to query node %s: %w", nodeID, err)
	}

	if err := json.Unmarshal(config, &node.Config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config for node %s: %w", nodeID, err)
	}

	return &node, nil
}

func (nr *nodeRepository) SaveNode(ctx context.Context, flowID string, node *models.FlowNode) error {
	config, err := json.Marshal(node.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal config for node %s: %w", node.ID, err)
	}

	_, err = nr.db.ExecContext(ctx, `
		INSERT INTO flow_nodes (flow_id, id, type, name, config, position_x, position_y, enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (flow_id, id) DO UPDATE SET
			type = EXCLUDED.type,
			name = EXCLUDED.name,
			config = EXCLUDED.config,
			position_x = EXCLUDED.position_x,
			position_y = EXCLUDED.position_y,
			enabled = EXCLUDED.enabled
	`, flowID, node.ID, node.Type, node.Name, config, node.PositionX, node.PositionY, node.Enabled)
	if err != nil {
		return fmt.Errorf("failed to save node %s: %w", node.ID, err)
	}

	return nr.touchFlow(ctx, flowID)
}

func (nr *nodeRepository) DeleteNode(ctx context.Context, flowID, nodeID string) error {
	result, err := nr.db.ExecContext(ctx,
		"DELETE FROM flow_nodes WHERE flow_id = $1 AND id = $2", flowID, nodeID)
	if err != nil {
		return fmt.Errorf("failed to delete node %s: %w", nodeID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}

	if affected == 0 {
		return persistence.NewNodeError("DeleteNode", flowID, nodeID, persistence.ErrNodeNotFound)
	}

	return nr.touchFlow(ctx, flowID)
}

// touchFlow bumps the owning flow's updated_at so node writes surface in
// flow listings.
func (nr *nodeRepository) touchFlow(ctx context.Context, flowID string) error {
	_, err := nr.db.ExecContext(ctx,
		"UPDATE flows SET updated_at = $1 WHERE id = $2", time.Now().UTC(), flowID)
	if err != nil {
		return fmt.Errorf("failed to touch flow %s: %w", flowID, err)
	}

	return nil
}
