// Package services provides the business operations behind the builder API:
// flow CRUD, node management and publishing.
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dexforge/dexforge/pkg/schema"
)

// Business logic errors. These indicate client errors (4xx responses).
var (
	// Validation errors (400 Bad Request).
	ErrInvalidRequest   = errors.New("invalid request")
	ErrInvalidSortField = errors.New("invalid sort field")
	ErrInvalidSortOrder = errors.New("invalid sort order")
	ErrInvalidStatus    = errors.New("invalid flow status")
	ErrFlowNameRequired = errors.New("flow name is required")
	ErrNodesRequired    = errors.New("flow must have at least one enabled node")

	// Template errors (404/400).
	ErrTemplateNotFound = errors.New("template not found")

	// Business logic conflicts (409 Conflict).
	ErrCannotModifyPublished = errors.New("cannot modify a published flow")
	ErrAlreadyPublished      = errors.New("flow is already published")
)

// ConfigValidationError carries the per-field messages of a rejected node
// configuration.
type ConfigValidationError struct {
	NodeID string
	Errors schema.Errors
}

func (e *ConfigValidationError) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for key := range e.Errors {
		keys = append(keys, key)
	}

	return fmt.Sprintf("invalid config for node %s (fields: %s)", e.NodeID, strings.Join(keys, ", "))
}

// IsConfigValidationError checks for a rejected node configuration and
// returns the field errors when it matches.
func IsConfigValidationError(err error) (*ConfigValidationError, bool) {
	var cve *ConfigValidationError
	if errors.As(err, &cve) {
		return cve, true
	}

	return nil, false
}

// PublishValidationError aggregates node config failures blocking a publish.
type PublishValidationError struct {
	FlowID     string
	NodeErrors map[string]schema.Errors // node ID -> field errors
}

func (e *PublishValidationError) Error() string {
	return fmt.Sprintf("flow %s has %d invalid node(s)", e.FlowID, len(e.NodeErrors))
}

// IsPublishValidationError checks for a publish blocked by invalid nodes.
func IsPublishValidationError(err error) (*PublishValidationError, bool) {
	var pve *PublishValidationError
	if errors.As(err, &pve) {
		return pve, true
	}

	return nil, false
}

// IsValidationError checks if an error should map to HTTP 400.
func IsValidationError(err error) bool {
	if _, ok := IsConfigValidationError(err); ok {
		return true
	}

	if _, ok := IsPublishValidationError(err); ok {
		return true
	}

	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidSortField) ||
		errors.Is(err, ErrInvalidSortOrder) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrFlowNameRequired) ||
		errors.Is(err, ErrNodesRequired) ||
		errors.Is(err, ErrTemplateNotFound)
}

// IsConflictError checks if an error should map to HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrCannotModifyPublished) ||
		errors.Is(err, ErrAlreadyPublished)
}
