// Package metrics provides in-process metrics for the estimator service.
//
// It uses a channel-based event pipeline to asynchronously collect:
//   - Request counts per route
//   - Response times with percentile calculations (P50, P95, P99)
//   - HTTP status code distribution per route
//   - Prediction outcomes (ok, invalid, error)
//
// The collector runs in a dedicated goroutine and events are sent with
// non-blocking semantics, so a full buffer drops events instead of slowing
// down request handling.
//
// Example usage:
//
//	collector := metrics.NewCollector(1000, logger)
//	collector.Start(ctx)
//
//	collector.Emit(metrics.MetricEvent{
//		Type:       metrics.EventResponseCompleted,
//		Route:      "/predict",
//		Duration:   3 * time.Millisecond,
//		StatusCode: 200,
//	})
//
//	snapshot := collector.Snapshot()
//
// Pending events are drained when the collector's context is cancelled.
package metrics
