package shell

import (
	"context"
)

// Query represents the contract for all query types in the application.
// Each query encapsulates the intent and parameters needed to retrieve data.
// The QueryType method enables polymorphic handling and observability instrumentation.
type Query interface {
	QueryType() string
}

// Command represents the contract for all command types in the application.
// Each command encapsulates the intent and parameters needed to execute a
// specific business operation. The CommandType method enables polymorphic
// handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// QueryHandler defines the contract for components that process queries.
// The generic parameters Q and R ensure type safety between queries and
// their corresponding results. Implementations should focus on business
// logic; this interface is designed to be wrapped with observability
// decorators for complete functionality.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// CommandHandler defines the contract for components that process commands.
// The generic parameters C and R ensure type safety between commands and
// their results. Implementations should focus on business logic; this
// interface is designed to be wrapped with observability decorators.
type CommandHandler[C Command, R any] interface {
	Handle(ctx context.Context, command C) (R, error)
}
