package observable

import (
	"context"
	"time"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/shared/shell"
)

// CommandWrapper instruments any command handler with metrics, tracing, and
// logging, following the same composition pattern as QueryWrapper.
type CommandWrapper[C shell.Command, R any] struct {
	coreHandler      shell.CommandHandler[C, R]
	commandType      string
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// NewCommandWrapper creates an observable wrapper around the core command handler.
func NewCommandWrapper[C shell.Command, R any](
	coreHandler shell.CommandHandler[C, R],
	opts ...CommandOption[C, R],
) (*CommandWrapper[C, R], error) {

	var zeroCommand C

	wrapper := &CommandWrapper[C, R]{
		coreHandler: coreHandler,
		commandType: zeroCommand.CommandType(),
	}

	for _, opt := range opts {
		if err := opt(wrapper); err != nil {
			return nil, err
		}
	}

	return wrapper, nil
}

// Handle executes the command with full observability instrumentation around
// the wrapped handler.
func (w *CommandWrapper[C, R]) Handle(ctx context.Context, command C) (R, error) {
	commandStart := time.Now()
	ctx, span := shell.StartCommandSpan(ctx, w.tracingCollector, w.commandType)
	shell.LogCommandStart(ctx, w.logger, w.contextualLogger, w.commandType)

	result, err := w.coreHandler.Handle(ctx, command)

	duration := time.Since(commandStart)
	if err != nil {
		w.recordCommandError(ctx, err, duration, span)
		return result, err
	}

	w.recordCommandSuccess(ctx, duration, span)

	return result, nil
}

// CommandOption defines a functional option for configuring CommandWrapper.
type CommandOption[C shell.Command, R any] func(*CommandWrapper[C, R]) error

// WithCommandMetrics sets the metrics collector for the CommandWrapper.
func WithCommandMetrics[C shell.Command, R any](collector shell.MetricsCollector) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.metricsCollector = collector
		return nil
	}
}

// WithCommandTracing sets the tracing collector for the CommandWrapper.
func WithCommandTracing[C shell.Command, R any](collector shell.TracingCollector) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.tracingCollector = collector
		return nil
	}
}

// WithCommandContextualLogging sets the contextual logger for the CommandWrapper.
func WithCommandContextualLogging[C shell.Command, R any](logger shell.ContextualLogger) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.contextualLogger = logger
		return nil
	}
}

// WithCommandLogging sets the basic logger for the CommandWrapper.
func WithCommandLogging[C shell.Command, R any](logger shell.Logger) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.logger = logger
		return nil
	}
}

func (w *CommandWrapper[C, R]) recordCommandSuccess(ctx context.Context, duration time.Duration, span shell.SpanContext) {
	shell.RecordCommandMetrics(ctx, w.metricsCollector, w.commandType, shell.StatusSuccess, duration)
	shell.FinishCommandSpan(w.tracingCollector, span, shell.StatusSuccess, duration, nil)
	shell.LogCommandSuccess(ctx, w.logger, w.contextualLogger, w.commandType, shell.StatusSuccess, duration)
}

func (w *CommandWrapper[C, R]) recordCommandError(ctx context.Context, err error, duration time.Duration, span shell.SpanContext) {
	status := shell.StatusError

	switch {
	case shell.IsCancellationError(err):
		status = shell.StatusCanceled
	case shell.IsTimeoutError(err):
		status = shell.StatusTimeout
	}

	shell.RecordCommandMetrics(ctx, w.metricsCollector, w.commandType, status, duration)
	shell.FinishCommandSpan(w.tracingCollector, span, status, duration, err)
	shell.LogCommandError(ctx, w.logger, w.contextualLogger, w.commandType, err)
}
