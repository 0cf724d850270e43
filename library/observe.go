package library

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-catalog-go/shell"
)

// observe runs handle under the Manager's lock and instruments it with metrics, tracing and logging.
// A context that is already done short-circuits the command.
func (m *Manager) observe(ctx context.Context, commandType string, title string, handle func(context.Context) Result) Result {
	start := time.Now()
	ctx, span := shell.StartCommandSpan(ctx, m.tracingCollector, commandType, title)
	shell.LogCommandStart(ctx, m.logger, m.contextualLogger, commandType, title)

	var result Result

	if err := ctx.Err(); err != nil {
		result = fail(err)
	} else {
		m.mu.Lock()
		result = handle(ctx)
		m.mu.Unlock()
	}

	m.recordOutcome(ctx, commandType, result, time.Since(start), span)

	return result
}

func (m *Manager) recordOutcome(ctx context.Context, commandType string, result Result, duration time.Duration, span shell.SpanContext) {
	status := shell.StatusFor(result.Err)

	shell.RecordCommandMetrics(ctx, m.metricsCollector, commandType, status, string(result.Kind()), duration)
	shell.FinishCommandSpan(m.tracingCollector, span, status, duration, result.Err)

	if result.Err != nil {
		shell.LogCommandError(ctx, m.logger, m.contextualLogger, commandType, result.Err)
		return
	}

	shell.LogCommandSuccess(ctx, m.logger, m.contextualLogger, commandType, status, duration)
}
