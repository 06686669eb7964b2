package pxnote

import (
	"log/slog"

	"github.com/aretw0/pxnote/pkg/core"
)

// options holds the internal configuration for a Vault.
type options struct {
	logger *slog.Logger
	store  core.Store
}

// Option defines a functional option for configuring a Vault.
type Option func(*options)

func defaultOptions() *options {
	return &options{}
}

// WithLogger sets the logger for the vault and its repositories.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore injects a custom storage adapter (e.g. a mock).
// If provided, the default local store is skipped and dir is ignored.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}
