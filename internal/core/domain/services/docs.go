// Package services provides the read-side domain services of the fulfillment engine.
// They are pure: no store access, no clock, no logging.
//
// The package includes:
//   - ConsumptionCalculator: per-service and per-order consumption metrics
//   - AggregateReporter: fleet-wide totals and the monthly execution trend
//
// Monetary sums use decimal arithmetic; amounts are rounded to 2 decimal places
// and percentages to 1 decimal place only when a result is produced.
package services
