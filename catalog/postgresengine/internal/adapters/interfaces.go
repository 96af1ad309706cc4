package adapters

import "context"

// DBAdapter defines the interface for database operations needed by the catalog store.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
	Begin(ctx context.Context) (DBTx, error)
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}

// DBTx defines the interface for a database transaction. Queries and
// executions inside the transaction see each other's writes; Commit makes
// them visible to everyone, Rollback discards them. Rollback after a
// successful Commit is a no-op, so it is safe to defer.
type DBTx interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
