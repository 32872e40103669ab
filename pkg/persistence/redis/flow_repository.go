package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dexforge/dexforge/pkg/models"
	"github.com/dexforge/dexforge/pkg/persistence"
	goredis "github.com/redis/go-redis/v9"
)

// FlowRepository stores flow documents as JSON blobs.
type FlowRepository struct {
	client goredis.UniversalClient
}

// NewFlowRepository creates a new flow repository.
func NewFlowRepository(client goredis.UniversalClient) *FlowRepository {
	return &FlowRepository{client: client}
}

// ListFlows loads the indexed flows and applies filtering, sorting and
// pagination in memory, same as the file backend.
func (fr *FlowRepository) ListFlows(ctx context.Context, opts persistence.ListFlowsOptions) (*persistence.FlowListResult, error) {
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 20
	}

	if opts.SortBy == "" {
		opts.SortBy = "created_at"
	}

	if opts.SortOrder == "" {
		opts.SortOrder = "desc"
	}

	allowedSorts := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"name":       true,
	}
	if !allowedSorts[opts.SortBy] {
		return nil, fmt.Errorf("invalid sort field: %s", opts.SortBy)
	}

	ids, err := fr.client.SMembers(ctx, flowIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read flow index: %w", err)
	}

	filtered := make([]*models.Flow, 0, len(ids))

	for _, id := range ids {
		flow, err := fr.GetByID(ctx, id)
		if err != nil {
			if persistence.IsFlowNotFound(err) {
				continue
			}

			return nil, err
		}

		if opts.Owner != "" && flow.Owner != opts.Owner {
			continue
		}

		if opts.Status != nil && flow.Status != *opts.Status {
			continue
		}

		filtered = append(filtered, flow)
	}

	sortFlows(filtered, opts.SortBy, opts.SortOrder)

	totalCount := int64(len(filtered))
	startIdx := opts.Offset
	endIdx := opts.Offset + opts.Limit

	if startIdx >= len(filtered) {
		return &persistence.FlowListResult{
			Flows:       make([]*models.Flow, 0),
			TotalCount:  totalCount,
			HasNextPage: false,
		}, nil
	}

	if endIdx > len(filtered) {
		endIdx = len(filtered)
	}

	return &persistence.FlowListResult{
		Flows:       filtered[startIdx:endIdx],
		TotalCount:  totalCount,
		HasNextPage: endIdx < len(filtered),
	}, nil
}

func sortFlows(flows []*models.Flow, sortBy, sortOrder string) {
	sort.Slice(flows, func(i, j int) bool {
		var less bool

		switch sortBy {
		case "updated_at":
			less = flows[i].UpdatedAt.Before(flows[j].UpdatedAt)
		case "name":
			less = flows[i].Name < flows[j].Name
		default:
			less = flows[i].CreatedAt.Before(flows[j].CreatedAt)
		}

		if sortOrder == "desc" {
			return !less
		}

		return less
	})
}

// GetByID fetches and decodes one flow blob.
func (fr *FlowRepository) GetByID(ctx context.Context, flowID string) (*models.Flow, error) {
	body, err := fr.client.Get(ctx, flowKeyPrefix+flowID).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, persistence.NewFlowError("GetByID", flowID, persistence.ErrFlowNotFound)
		}

		return nil, fmt.Errorf("failed to fetch flow %s: %w", flowID, err)
	}

	var flow models.Flow

	err = json.Unmarshal(body, &flow)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal flow %s: %w", flowID, err)
	}

	return &flow, nil
}

// Save stores the flow blob and indexes its ID.
func (fr *FlowRepository) Save(ctx context.Context, flow *models.Flow) error {
	now := time.Now().UTC()
	if flow.CreatedAt.IsZero() {
		flow.CreatedAt = now
	}

	flow.UpdatedAt = now

	data, err := json.Marshal(flow)
	if err != nil {
		return fmt.Errorf("failed to marshal flow %s: %w", flow.ID, err)
	}

	pipe := fr.client.TxPipeline()
	pipe.Set(ctx, flowKeyPrefix+flow.ID, data, 0)
	pipe.SAdd(ctx, flowIndexKey, flow.ID)

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save flow %s: %w", flow.ID, err)
	}

	return nil
}

// Delete removes the flow blob and its index entry.
func (fr *FlowRepository) Delete(ctx context.Context, flowID string) error {
	pipe := fr.client.TxPipeline()
	pipe.Del(ctx, flowKeyPrefix+flowID)
	pipe.SRem(ctx, flowIndexKey, flowID)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete flow %s: %w", flowID, err)
	}

	return nil
}
