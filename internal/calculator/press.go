package calculator

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go-chi-calculator/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// PressContext applies keys to a stored session, recording a child span and
// metrics for every key.
func (s *Store) PressContext(ctx context.Context, id string, keys []Key) (Session, error) {
	return s.Update(id, func(st State) State {
		return PressTraced(ctx, st, keys)
	})
}

// PressTraced applies keys to st like PressAll and instruments each press.
// Committed operations are timed and counted; an operation that fails is
// recorded as an error on its span.
func PressTraced(ctx context.Context, st State, keys []Key) State {
	logger := observability.LoggerWithTrace(ctx)

	for i, k := range keys {
		_, span := tracer.Start(ctx, fmt.Sprintf("calculator.key.%s", k.Kind()),
			trace.WithAttributes(
				attribute.Int("calculator.key.index", i),
				attribute.String("calculator.key", string(k)),
				attribute.String("calculator.input.before", st.Input()),
			),
		)

		commits := st.Commits(k)
		op, left, _ := st.Pending()
		right := st.Input()

		start := time.Now()
		next := st.Press(k)
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

		keysCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", k.Kind())))

		if commits {
			attrs := metric.WithAttributes(attribute.String("operation", string(op)))
			evaluationsCounter.Add(ctx, 1, attrs)
			evalHistogram.Record(ctx, elapsed, attrs)

			if next.Failed() {
				_, err := Evaluate(left, op, right)
				span.RecordError(err)
				span.SetStatus(codes.Error, ErrorSentinel)
				errorCounter.Add(ctx, 1, attrs)

				logger.Warn("calculator operation failed",
					zap.String("operation", string(op)),
					zap.String("a", left),
					zap.String("b", right),
					zap.Error(err),
				)
			} else {
				if v, err := strconv.ParseFloat(next.Input(), 64); err == nil {
					resultGauge.Record(ctx, v, attrs)
				}
				span.AddEvent("computation.complete", trace.WithAttributes(
					attribute.String("result", next.Input()),
					attribute.Float64("duration_ms", elapsed),
				))

				logger.Debug("calculator operation completed",
					zap.String("operation", string(op)),
					zap.String("a", left),
					zap.String("b", right),
					zap.String("result", next.Input()),
					zap.Float64("duration_ms", elapsed),
				)
			}
		}

		span.SetAttributes(attribute.String("calculator.input.after", next.Input()))
		if !next.Failed() || !commits {
			span.SetStatus(codes.Ok, "")
		}
		span.End()

		st = next
	}

	return st
}
