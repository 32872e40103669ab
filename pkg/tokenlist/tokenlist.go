// Package tokenlist maintains an in-memory token catalog for the token
// selector and swap components, refreshed on a schedule from 1inch-style
// token list endpoints.
package tokenlist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Token is one catalog entry.
type Token struct {
	ChainID  string `json:"chain_id"`
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
	LogoURI  string `json:"logo_uri,omitempty"`
}

// tokenInfo is the upstream wire format: a map keyed by token address.
type tokenInfo struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
	LogoURI  string `json:"logoURI"`
}

// Catalog caches token lists per chain. Reads never block on refreshes and a
// failed refresh keeps the previous state.
type Catalog struct {
	logger  *slog.Logger
	client  *http.Client
	sources map[string]string // chain ID -> list URL

	mu        sync.RWMutex
	tokens    map[string][]Token
	updatedAt time.Time

	cron *cron.Cron
}

// NewCatalog creates a catalog fetching from the given per-chain URLs.
func NewCatalog(logger *slog.Logger, client *http.Client, sources map[string]string) *Catalog {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	return &Catalog{
		logger:  logger.With("module", "tokenlist"),
		client:  client,
		sources: sources,
		tokens:  make(map[string][]Token),
	}
}

// Refresh fetches every configured source. A chain whose fetch fails keeps
// its previous tokens; the error of the last failing chain is returned.
func (c *Catalog) Refresh(ctx context.Context) error {
	var lastErr error

	fresh := make(map[string][]Token, len(c.sources))

	for chainID, url := range c.sources {
		tokens, err := c.fetch(ctx, chainID, url)
		if err != nil {
			c.logger.WarnContext(ctx, "Token list refresh failed",
				"chain_id", chainID, "error", err)

			lastErr = err

			continue
		}

		fresh[chainID] = tokens
	}

	c.mu.Lock()
	for chainID, tokens := range fresh {
		c.tokens[chainID] = tokens
	}

	if len(fresh) > 0 {
		c.updatedAt = time.Now().UTC()
	}
	c.mu.Unlock()

	return lastErr
}

func (c *Catalog) fetch(ctx context.Context, chainID, url string) ([]Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch token list: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token list endpoint returned %d", resp.StatusCode)
	}

	var body map[string]tokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode token list: %w", err)
	}

	tokens := make([]Token, 0, len(body))
	for address, info := range body {
		tokens = append(tokens, Token{
			ChainID:  chainID,
			Address:  address,
			Symbol:   info.Symbol,
			Name:     info.Name,
			Decimals: info.Decimals,
			LogoURI:  info.LogoURI,
		})
	}

	sort.Slice(tokens, func(i, j int) bool { return tokens[i].Symbol < tokens[j].Symbol })

	return tokens, nil
}

// Tokens returns the cached tokens for one chain, or all chains when the
// chain ID is empty.
func (c *Catalog) Tokens(chainID string) []Token {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if chainID != "" {
		return append([]Token(nil), c.tokens[chainID]...)
	}

	all := make([]Token, 0)

	chains := make([]string, 0, len(c.tokens))
	for id := range c.tokens {
		chains = append(chains, id)
	}

	sort.Strings(chains)

	for _, id := range chains {
		all = append(all, c.tokens[id]...)
	}

	return all
}

// UpdatedAt returns the time of the last successful refresh.
func (c *Catalog) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.updatedAt
}

// Start schedules periodic refreshes. The schedule uses cron syntax,
// including descriptors like "@every 10m".
func (c *Catalog) Start(ctx context.Context, schedule string) error {
	if c.cron != nil {
		return nil
	}

	c.cron = cron.New()

	_, err := c.cron.AddFunc(schedule, func() {
		if err := c.Refresh(ctx); err != nil {
			c.logger.WarnContext(ctx, "Scheduled token refresh failed", "error", err)
		}
	})
	if err != nil {
		c.cron = nil

		return fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}

	c.cron.Start()

	return nil
}

// Stop halts the refresh schedule.
func (c *Catalog) Stop() {
	if c.cron == nil {
		return
	}

	c.cron.Stop()
	c.cron = nil
}
