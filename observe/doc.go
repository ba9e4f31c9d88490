// Package observe provides telemetry for the caching core: a structured
// JSON logger, OpenTelemetry metrics and tracing, and an instrumentation
// wrapper for upstream metadata fetches.
//
// An Observer bundles the configured providers; the rest of the module
// takes the narrow Logger and Metrics interfaces so tests and disabled
// telemetry can use the no-op implementations.
package observe
