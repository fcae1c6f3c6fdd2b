// Package integrations provides HTTP clients for mod registry APIs.
//
// # Overview
//
// The [Client] type holds the transport shared by registry clients: default
// headers, a per-request timeout ([DefaultTimeout] is 10 seconds) and the
// mapping of failures onto three sentinel errors:
//
//   - [ErrNotFound]: the registry answered 404
//   - [ErrTimeout]: the request did not complete in time
//   - [ErrNetwork]: anything else (connection failures, other non-2xx
//     statuses, malformed JSON)
//
// Registry-specific clients live in subpackages:
//
//   - [modportal]: the Factorio mod portal
//
// Requests are never retried and responses are never cached. Callers decide
// what a failure means for them.
//
// [modportal]: github.com/matzehuels/factoriogen/pkg/integrations/modportal
package integrations
