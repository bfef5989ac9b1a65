// Package dto contains the request bodies and query strings accepted by the
// HTTP API.
//
// Requests are separate from the use-case commands so the wire format can
// change without touching the core. Each request converts itself with a
// ToCommand or ToQuery method; path parameters are passed in by the handler.
//
// Naming convention:
//   - Request types: <Action><Resource>Request (e.g., CreateProductRequest)
//   - Query strings: <Resource>ListParams
//
// Responses are the use-case result types, serialized as they are.
package dto
