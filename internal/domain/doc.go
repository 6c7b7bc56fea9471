// Package domain contains the core domain entities and value objects for gelfship.
//
// This package represents the innermost layer of the Clean Architecture. It has
// no dependencies on infrastructure concerns (network, file system, logging) and
// contains only pure business logic.
//
// # Entities
//
//   - [Record]: A single structured log entry (GELF shaped)
//   - [Level]: Syslog severity of a record
//   - [Event]: A message on the event channel, either a flush signal or a record
//   - [Batch]: The ordered records not yet delivered
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Focused on business rules and invariants
//   - Testable without mocks or external systems
package domain
