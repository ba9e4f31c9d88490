// Package upstream guards calls to the external media retriever.
//
// Metadata extraction is the flaky edge of the system: upstream endpoints
// throttle, time out, and reject individual client profiles. The Guard
// absorbs that here, outside the store locks, by composing a concurrency
// cap, a circuit breaker, retry with backoff, and a per-attempt timeout
// around each fetch. Callers rotate extraction strategies through the
// retry hook.
package upstream
