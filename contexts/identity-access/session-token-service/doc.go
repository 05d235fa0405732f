// Package sessiontoken issues and verifies the signed session tokens that
// carry a user's email into every guarded request.
//
// Layering:
// - domain: identity claims and authentication errors
// - application: issue/verify use-cases
// - ports: token signer and clock boundaries
// - adapters: HS256 JWT signer and HTTP handler
// - transport: module-private DTOs for HTTP contracts
package sessiontoken
