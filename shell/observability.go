package shell

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/journal"
)

const (
	// CommandDurationMetric tracks library command execution duration (OpenTelemetry-compatible).
	CommandDurationMetric = "library_command_duration_seconds"

	// CommandCallsMetric tracks total library command calls.
	CommandCallsMetric = "library_command_calls_total"

	// CommandRejectionsMetric tracks commands rejected by a business rule.
	//
	// Labels:
	//   - command_type: e.g. "CheckoutBook"
	//   - status: "rejected"
	//   - error_kind: e.g. "unavailable", "invalid_transition"
	CommandRejectionsMetric = "library_command_rejections_total"

	// StatusSuccess indicates successful command completion.
	StatusSuccess = "success"

	// StatusRejected indicates the command was refused by a business rule.
	StatusRejected = "rejected"

	// StatusError indicates any other command processing error.
	StatusError = "error"

	// StatusCanceled indicates the caller's context was canceled before the command ran.
	StatusCanceled = "canceled"

	// LogMsgCommandStarted is logged when command processing begins.
	LogMsgCommandStarted = "library command started"

	// LogMsgCommandCompleted is logged when command processing succeeds.
	LogMsgCommandCompleted = "library command completed"

	// LogMsgCommandRejected is logged when a business rule refuses the command.
	LogMsgCommandRejected = "library command rejected"

	// LogMsgCommandFailed is logged when command processing fails.
	LogMsgCommandFailed = "library command failed"

	// LogMsgJournalMappingFailed is logged when an event could not be mapped for the journal.
	LogMsgJournalMappingFailed = "journal mapping failed"

	// LogAttrCommandType identifies the command type in logs.
	LogAttrCommandType = "command_type"

	// LogAttrTitle identifies the book title in logs.
	LogAttrTitle = "title"

	// LogAttrStatus indicates the command processing status.
	LogAttrStatus = "status"

	// LogAttrDurationMS indicates the processing duration in milliseconds.
	LogAttrDurationMS = "duration_ms"

	// LogAttrBusinessOutcome classifies the business result.
	LogAttrBusinessOutcome = "business_outcome"

	// LogAttrError contains error details.
	LogAttrError = "error"

	// LogAttrErrorKind classifies a rejection.
	LogAttrErrorKind = "error_kind"

	// SpanNameCommand is the tracing span name for library commands.
	SpanNameCommand = "library.command"
)

// Interface aliases for convenience when wiring observability into the library manager.
// These match the journal observability interfaces for consistency.

// MetricsCollector interface for collecting command performance metrics.
type MetricsCollector = journal.MetricsCollector

// ContextualMetricsCollector extends MetricsCollector with context-aware methods.
type ContextualMetricsCollector = journal.ContextualMetricsCollector

// TracingCollector interface for distributed tracing of commands.
type TracingCollector = journal.TracingCollector

// SpanContext represents an active tracing span.
type SpanContext = journal.SpanContext

// ContextualLogger interface for context-aware logging.
type ContextualLogger = journal.ContextualLogger

// Logger interface for basic logging.
type Logger = journal.Logger

// BuildCommandLabels creates standard metric labels for library commands.
func BuildCommandLabels(commandType, status string) map[string]string {
	return map[string]string{
		LogAttrCommandType: commandType,
		LogAttrStatus:      status,
	}
}

// ToMilliseconds converts a time.Duration to float64 milliseconds with precision.
func ToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// StatusFor maps a command error to the status label used in metrics, logs and spans.
func StatusFor(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case IsCancellationError(err):
		return StatusCanceled
	case IsBusinessRejection(err):
		return StatusRejected
	default:
		return StatusError
	}
}

// RecordCommandMetrics records duration and call count for a command, plus the rejection counter
// when the status is StatusRejected. It handles both context-aware and basic collectors.
func RecordCommandMetrics(
	ctx context.Context,
	collector MetricsCollector,
	commandType string,
	status string,
	errorKind string,
	duration time.Duration,
) {
	if collector == nil {
		return
	}

	labels := BuildCommandLabels(commandType, status)

	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, CommandDurationMetric, duration, labels)
		contextualCollector.IncrementCounterContext(ctx, CommandCallsMetric, labels)
	} else {
		collector.RecordDuration(CommandDurationMetric, duration, labels)
		collector.IncrementCounter(CommandCallsMetric, labels)
	}

	if status != StatusRejected {
		return
	}

	rejectionLabels := BuildCommandLabels(commandType, StatusRejected)
	rejectionLabels[LogAttrErrorKind] = errorKind

	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, CommandRejectionsMetric, rejectionLabels)
	} else {
		collector.IncrementCounter(CommandRejectionsMetric, rejectionLabels)
	}
}

// StartCommandSpan starts a tracing span for a command.
// Returns the updated context and span context, or original context and nil if tracing is disabled.
func StartCommandSpan(
	ctx context.Context,
	tracingCollector TracingCollector,
	commandType string,
	title string,
) (context.Context, SpanContext) {
	if tracingCollector == nil {
		return ctx, nil
	}

	attrs := map[string]string{
		LogAttrCommandType: commandType,
	}

	if title != "" {
		attrs[LogAttrTitle] = title
	}

	return tracingCollector.StartSpan(ctx, SpanNameCommand, attrs)
}

// FinishCommandSpan completes a tracing span with the command outcome.
func FinishCommandSpan(
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

// LogCommandStart logs the beginning of command processing at debug level.
func LogCommandStart(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	title string,
) {
	if contextualLogger != nil {
		contextualLogger.DebugContext(ctx, LogMsgCommandStarted, LogAttrCommandType, commandType, LogAttrTitle, title)
	} else if logger != nil {
		logger.Debug(LogMsgCommandStarted, LogAttrCommandType, commandType, LogAttrTitle, title)
	}
}

// LogCommandSuccess logs successful command completion.
func LogCommandSuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	businessOutcome string,
	duration time.Duration,
) {
	args := []any{
		LogAttrCommandType, commandType,
		LogAttrBusinessOutcome, businessOutcome,
		LogAttrDurationMS, ToMilliseconds(duration),
	}

	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgCommandCompleted, args...)
	} else if logger != nil {
		logger.Info(LogMsgCommandCompleted, args...)
	}
}

// LogCommandError logs a failed command. Business rejections are expected outcomes and go to
// warn level, everything else to error level.
func LogCommandError(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	err error,
) {
	args := []any{
		LogAttrCommandType, commandType,
		LogAttrError, err.Error(),
	}

	rejected := IsBusinessRejection(err)

	switch {
	case contextualLogger != nil && rejected:
		contextualLogger.WarnContext(ctx, LogMsgCommandRejected, args...)
	case contextualLogger != nil:
		contextualLogger.ErrorContext(ctx, LogMsgCommandFailed, args...)
	case logger != nil && rejected:
		logger.Warn(LogMsgCommandRejected, args...)
	case logger != nil:
		logger.Error(LogMsgCommandFailed, args...)
	}
}

// formatDurationMS formats duration in milliseconds for span attributes.
func formatDurationMS(duration time.Duration) string {
	return fmt.Sprintf("%.2f", ToMilliseconds(duration))
}

// IsCancellationError checks if an error is due to context cancellation.
func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsBusinessRejection reports whether err is one of the catalog's expected business outcomes.
func IsBusinessRejection(err error) bool {
	for _, rejection := range []error{
		catalog.ErrNotFound,
		catalog.ErrDuplicateTitle,
		catalog.ErrInvalidTransition,
		catalog.ErrUnavailable,
		catalog.ErrInvalidBook,
	} {
		if errors.Is(err, rejection) {
			return true
		}
	}

	return false
}
