// Package service is retained for Go module compatibility.
// All account business logic has been moved into the CQRS packages:
//   - internal/command — UserCommandService (register, update, delete)
//   - internal/query   — UserQueryService (lookups, login)
package service
