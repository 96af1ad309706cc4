package shell

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
)

const (
	// CommandHandlerDurationMetric tracks command handler execution duration (OpenTelemetry-compatible).
	CommandHandlerDurationMetric = "commandhandler_handle_duration_seconds"

	// CommandHandlerCallsMetric tracks total command handler calls.
	CommandHandlerCallsMetric = "commandhandler_handle_calls_total"

	// CommandHandlerCanceledMetric tracks canceled command operations.
	CommandHandlerCanceledMetric = "commandhandler_canceled_operations_total"

	// CommandHandlerTimeoutMetric tracks timed-out command operations.
	CommandHandlerTimeoutMetric = "commandhandler_timeout_operations_total"

	// QueryHandlerDurationMetric tracks query handler execution duration (OpenTelemetry-compatible).
	QueryHandlerDurationMetric = "queryhandler_handle_duration_seconds"

	// QueryHandlerCallsMetric tracks total query handler calls.
	QueryHandlerCallsMetric = "queryhandler_handle_calls_total"

	// QueryHandlerCanceledMetric tracks canceled query operations.
	QueryHandlerCanceledMetric = "queryhandler_canceled_operations_total"

	// QueryHandlerTimeoutMetric tracks timed-out query operations.
	QueryHandlerTimeoutMetric = "queryhandler_timeout_operations_total"

	// StatusSuccess indicates successful completion.
	StatusSuccess = "success"

	// StatusError indicates a processing error.
	StatusError = "error"

	// StatusCanceled indicates the operation was canceled due to context cancellation.
	StatusCanceled = "canceled"

	// StatusTimeout indicates the operation timed out due to context deadline exceeded.
	StatusTimeout = "timeout"

	// LogMsgCommandStarted is logged when command processing begins.
	LogMsgCommandStarted = "command handler started"

	// LogMsgCommandCompleted is logged when command processing succeeds.
	LogMsgCommandCompleted = "command handler completed"

	// LogMsgCommandFailed is logged when command processing fails.
	LogMsgCommandFailed = "command handler failed"

	// LogMsgQueryStarted is logged when query processing begins.
	LogMsgQueryStarted = "query handler started"

	// LogMsgQueryCompleted is logged when query processing succeeds.
	LogMsgQueryCompleted = "query handler completed"

	// LogMsgQueryFailed is logged when query processing fails.
	LogMsgQueryFailed = "query handler failed"

	// LogAttrCommandType identifies the command type in logs.
	LogAttrCommandType = "command_type"

	// LogAttrQueryType identifies the query type in logs.
	LogAttrQueryType = "query_type"

	// LogAttrStatus indicates the processing status.
	LogAttrStatus = "status"

	// LogAttrDurationMS indicates the processing duration in milliseconds.
	LogAttrDurationMS = "duration_ms"

	// LogAttrError contains error details.
	LogAttrError = "error"

	// SpanNameCommandHandle is the tracing span name for command handling.
	SpanNameCommandHandle = "commandhandler.handle"

	// SpanNameQueryHandle is the tracing span name for query handling.
	SpanNameQueryHandle = "queryhandler.handle"
)

// Interface aliases for convenience when instrumenting handlers.
// These match the catalog observability interfaces for consistency.

// MetricsCollector interface for collecting handler performance metrics.
type MetricsCollector = catalog.MetricsCollector

// ContextualMetricsCollector extends MetricsCollector with context-aware methods.
type ContextualMetricsCollector = catalog.ContextualMetricsCollector

// TracingCollector interface for distributed tracing in handlers.
type TracingCollector = catalog.TracingCollector

// SpanContext represents an active tracing span.
type SpanContext = catalog.SpanContext

// ContextualLogger interface for context-aware logging in handlers.
type ContextualLogger = catalog.ContextualLogger

// Logger interface for basic logging in handlers.
type Logger = catalog.Logger

// BuildCommandLabels creates standard metric labels for command handler operations.
func BuildCommandLabels(commandType, status string) map[string]string {
	return map[string]string{
		LogAttrCommandType: commandType,
		LogAttrStatus:      status,
	}
}

// BuildQueryLabels creates standard metric labels for query handler operations.
func BuildQueryLabels(queryType, status string) map[string]string {
	return map[string]string{
		LogAttrQueryType: queryType,
		LogAttrStatus:    status,
	}
}

// ToMilliseconds converts a time.Duration to float64 milliseconds with precision.
func ToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// RecordCommandMetrics records all relevant metrics for a command operation.
// It handles both context-aware and basic metrics collectors automatically.
func RecordCommandMetrics(
	ctx context.Context,
	collector MetricsCollector,
	commandType string,
	status string,
	duration time.Duration,
) {
	if collector == nil {
		return
	}

	labels := BuildCommandLabels(commandType, status)

	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, CommandHandlerDurationMetric, duration, labels)
		contextualCollector.IncrementCounterContext(ctx, CommandHandlerCallsMetric, labels)
	} else {
		collector.RecordDuration(CommandHandlerDurationMetric, duration, labels)
		collector.IncrementCounter(CommandHandlerCallsMetric, labels)
	}

	if status == StatusCanceled {
		incrementCounter(ctx, collector, CommandHandlerCanceledMetric, labels)
	}

	if status == StatusTimeout {
		incrementCounter(ctx, collector, CommandHandlerTimeoutMetric, labels)
	}
}

// RecordQueryMetrics records all relevant metrics for a query operation.
// It handles both context-aware and basic metrics collectors automatically.
func RecordQueryMetrics(
	ctx context.Context,
	collector MetricsCollector,
	queryType string,
	status string,
	duration time.Duration,
) {
	if collector == nil {
		return
	}

	labels := BuildQueryLabels(queryType, status)

	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, QueryHandlerDurationMetric, duration, labels)
		contextualCollector.IncrementCounterContext(ctx, QueryHandlerCallsMetric, labels)
	} else {
		collector.RecordDuration(QueryHandlerDurationMetric, duration, labels)
		collector.IncrementCounter(QueryHandlerCallsMetric, labels)
	}

	if status == StatusCanceled {
		incrementCounter(ctx, collector, QueryHandlerCanceledMetric, labels)
	}

	if status == StatusTimeout {
		incrementCounter(ctx, collector, QueryHandlerTimeoutMetric, labels)
	}
}

func incrementCounter(ctx context.Context, collector MetricsCollector, metricName string, labels map[string]string) {
	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricName, labels)
		return
	}

	collector.IncrementCounter(metricName, labels)
}

// StartCommandSpan starts a distributed tracing span for command operations.
// Returns the updated context and span context, or the original context and nil if tracing is disabled.
func StartCommandSpan(
	ctx context.Context,
	tracingCollector TracingCollector,
	commandType string,
) (context.Context, SpanContext) {
	if tracingCollector == nil {
		return ctx, nil
	}

	return tracingCollector.StartSpan(ctx, SpanNameCommandHandle, map[string]string{
		LogAttrCommandType: commandType,
	})
}

// FinishCommandSpan completes a distributed tracing span with the operation outcome.
func FinishCommandSpan(
	tracingCollector TracingCollector,
	span SpanContext,
	status string,
	duration time.Duration,
	err error,
) {
	finishSpan(tracingCollector, span, status, duration, err)
}

// StartQuerySpan starts a distributed tracing span for query operations.
// Returns the updated context and span context, or the original context and nil if tracing is disabled.
func StartQuerySpan(
	ctx context.Context,
	tracingCollector TracingCollector,
	queryType string,
) (context.Context, SpanContext) {
	if tracingCollector == nil {
		return ctx, nil
	}

	return tracingCollector.StartSpan(ctx, SpanNameQueryHandle, map[string]string{
		LogAttrQueryType: queryType,
	})
}

// FinishQuerySpan completes a distributed tracing span with the operation outcome.
func FinishQuerySpan(
	tracingCollector TracingCollector,
	span SpanContext,
	status string,
	duration time.Duration,
	err error,
) {
	finishSpan(tracingCollector, span, status, duration, err)
}

func finishSpan(
	tracingCollector TracingCollector,
	span SpanContext,
	status string,
	duration time.Duration,
	err error,
) {
	if tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		LogAttrStatus:     status,
		LogAttrDurationMS: formatDurationMS(duration),
	}

	if err != nil {
		attrs[LogAttrError] = err.Error()
	}

	tracingCollector.FinishSpan(span, status, attrs)
}

// LogCommandStart logs the start of command processing.
func LogCommandStart(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
) {
	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgCommandStarted, LogAttrCommandType, commandType)
		return
	}

	if logger != nil {
		logger.Info(LogMsgCommandStarted, LogAttrCommandType, commandType)
	}
}

// LogCommandSuccess logs successful command completion.
func LogCommandSuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	status string,
	duration time.Duration,
) {
	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgCommandCompleted,
			LogAttrCommandType, commandType, LogAttrStatus, status, LogAttrDurationMS, ToMilliseconds(duration))
		return
	}

	if logger != nil {
		logger.Info(LogMsgCommandCompleted,
			LogAttrCommandType, commandType, LogAttrStatus, status, LogAttrDurationMS, ToMilliseconds(duration))
	}
}

// LogCommandError logs failed command processing.
func LogCommandError(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	err error,
) {
	if contextualLogger != nil {
		contextualLogger.ErrorContext(ctx, LogMsgCommandFailed,
			LogAttrCommandType, commandType, LogAttrError, err.Error())
		return
	}

	if logger != nil {
		logger.Error(LogMsgCommandFailed, LogAttrCommandType, commandType, LogAttrError, err.Error())
	}
}

// LogQueryStart logs the start of query processing.
func LogQueryStart(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	queryType string,
) {
	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgQueryStarted, LogAttrQueryType, queryType)
		return
	}

	if logger != nil {
		logger.Info(LogMsgQueryStarted, LogAttrQueryType, queryType)
	}
}

// LogQuerySuccess logs successful query completion.
func LogQuerySuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	queryType string,
	status string,
	duration time.Duration,
) {
	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgQueryCompleted,
			LogAttrQueryType, queryType, LogAttrStatus, status, LogAttrDurationMS, ToMilliseconds(duration))
		return
	}

	if logger != nil {
		logger.Info(LogMsgQueryCompleted,
			LogAttrQueryType, queryType, LogAttrStatus, status, LogAttrDurationMS, ToMilliseconds(duration))
	}
}

// LogQueryError logs failed query processing.
func LogQueryError(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	queryType string,
	err error,
) {
	if contextualLogger != nil {
		contextualLogger.ErrorContext(ctx, LogMsgQueryFailed,
			LogAttrQueryType, queryType, LogAttrError, err.Error())
		return
	}

	if logger != nil {
		logger.Error(LogMsgQueryFailed, LogAttrQueryType, queryType, LogAttrError, err.Error())
	}
}

func formatDurationMS(duration time.Duration) string {
	return fmt.Sprintf("%.3f", ToMilliseconds(duration))
}

// IsCancellationError checks if the error indicates context cancellation.
func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsTimeoutError checks if the error indicates a context deadline being exceeded.
func IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
