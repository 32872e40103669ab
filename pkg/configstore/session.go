// Package configstore mediates between a node template, the owning node's
// persisted config, and the editable panel state.
package configstore

import (
	"context"
	"errors"

	"github.com/dexforge/dexforge/pkg/schema"
)

// State is the lifecycle state of a panel session.
type State string

const (
	StateClean State = "clean" // No unsaved edits
	StateDirty State = "dirty" // Edits pending save
)

// ErrInvalidConfig is returned by Save when validation fails; the per-field
// messages are available through Errors().
var ErrInvalidConfig = errors.New("configuration is invalid")

// CommitFunc flushes a validated config back to the owning node record.
type CommitFunc func(ctx context.Context, cfg schema.Config) error

// Option configures a session.
type Option func(*Session)

// WithLiveValidation makes every edit re-validate its field immediately
// instead of deferring all validation to Save. Save-time validation is the
// default; both behaviors exist in the panels this models, so the policy is
// a knob rather than a contract.
func WithLiveValidation() Option {
	return func(s *Session) {
		s.liveValidation = true
	}
}

// Session holds the editable form state for one placed node. All methods are
// synchronous; a session belongs to a single panel instance and is not safe
// for concurrent use.
type Session struct {
	template *schema.Template
	stored   schema.Config // Last committed node config
	local    schema.Config // Editable state, seeded from Merge(defaults, stored)
	errors   schema.Errors
	state    State

	liveValidation bool
	commit         CommitFunc
}

// NewSession starts a clean session: the visible config is the template
// defaults overlaid with the node's stored values, no dirty flag, no errors.
func NewSession(template *schema.Template, stored schema.Config, commit CommitFunc, opts ...Option) *Session {
	s := &Session{
		template: template,
		stored:   stored.Clone(),
		local:    schema.Merge(template, stored),
		errors:   make(schema.Errors),
		state:    StateClean,
		commit:   commit,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Values returns a copy of the current editable config.
func (s *Session) Values() schema.Config {
	return s.local.Clone()
}

// Value returns the current editable value for a field key.
func (s *Session) Value(key string) any {
	return s.local[key]
}

// Errors returns the current per-field error messages.
func (s *Session) Errors() schema.Errors {
	return s.errors
}

// State returns the session state.
func (s *Session) State() State {
	return s.state
}

// Dirty reports whether unsaved edits exist.
func (s *Session) Dirty() bool {
	return s.state == StateDirty
}

// Set records an edit and marks the session dirty. Under live validation the
// edited field is re-checked immediately and its error cleared as soon as it
// becomes valid; otherwise errors are only refreshed on Save.
func (s *Session) Set(key string, value any) {
	s.local[key] = value
	s.state = StateDirty

	if !s.liveValidation {
		return
	}

	field, ok := s.template.FieldByKey(key)
	if !ok {
		return
	}

	if msg := schema.ValidateField(field, value, s.local); msg != "" {
		s.errors[key] = msg
	} else {
		delete(s.errors, key)
	}
}

// Save validates the editable state and, when valid, commits it as the new
// stored config. On validation failure the edits are retained, the errors
// are surfaced keyed by field, and the session stays dirty.
func (s *Session) Save(ctx context.Context) error {
	errs := schema.Validate(s.template, s.local)
	if len(errs) > 0 {
		s.errors = errs

		return ErrInvalidConfig
	}

	if s.commit != nil {
		if err := s.commit(ctx, s.local.Clone()); err != nil {
			return err
		}
	}

	s.stored = s.local.Clone()
	s.errors = make(schema.Errors)
	s.state = StateClean

	return nil
}

// Reset discards all unsaved edits and errors, recomputing the merged config
// exactly as on mount.
func (s *Session) Reset() {
	s.local = schema.Merge(s.template, s.stored)
	s.errors = make(schema.Errors)
	s.state = StateClean
}
