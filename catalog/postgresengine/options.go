package postgresengine

import (
	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
)

// Option configures a CatalogStore during construction.
type Option func(*CatalogStore) error

// WithTableNames overrides the default table names.
func WithTableNames(tables TableNames) Option {
	return func(cs *CatalogStore) error {
		if tables.anyEmpty() {
			return catalog.ErrEmptyTableName
		}

		cs.tables = tables

		return nil
	}
}

// WithLogger attaches a logger used for error and debug output.
func WithLogger(logger catalog.Logger) Option {
	return func(cs *CatalogStore) error {
		cs.logger = logger

		return nil
	}
}

// WithContextualLogger attaches a context-aware logger. When set it takes
// precedence over the plain logger for query and operation logging.
func WithContextualLogger(logger catalog.ContextualLogger) Option {
	return func(cs *CatalogStore) error {
		cs.contextualLogger = logger

		return nil
	}
}
