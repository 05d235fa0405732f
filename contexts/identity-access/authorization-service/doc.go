// Package authorization owns the user registry and the role guard.
//
// Layering:
// - domain: users, roles, role policy, errors
// - application: registration, role assignment and guard use-cases
// - ports: user repository boundary
// - adapters: document-store repository and HTTP handler
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Guards re-read the stored role on every call; nothing is cached.
// - Do not import other context adapters into domain/application.
package authorization
