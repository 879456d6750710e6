// Package services provides domain services that span more than one domain
// object of the production tracker.
//
// The package includes:
//   - AccessPolicy: decides which principal may act on which stage
//   - ProgressionEngine: gates and applies a work order transition
//   - HistoryAggregator: turns history records into the efficiency report
//
// Services are stateless values. They never touch storage; the application
// layer loads aggregates, calls a service, and persists the result.
package services
