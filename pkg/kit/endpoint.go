package kit

import "context"

// Endpoint is a transport-agnostic assistant action. Each directory
// action (message round-trip, interpreted chat, extraction, listing) is
// one Endpoint; the HTTP routes and the MCP tools dispatch to the same
// set, tagging the context with the inbound channel so a reply logged
// from the webhook and the same reply logged from an MCP call are
// distinguishable.
type Endpoint func(ctx context.Context, request any) (response any, err error)

// Middleware wraps an Endpoint with cross-cutting concerns (request IDs,
// per-call logging).
type Middleware func(Endpoint) Endpoint

// Chain composes middlewares so the first is outermost.
// Chain(a, b, c)(endpoint) == a(b(c(endpoint)))
func Chain(outer Middleware, others ...Middleware) Middleware {
	return func(next Endpoint) Endpoint {
		for i := len(others) - 1; i >= 0; i-- {
			next = others[i](next)
		}
		return outer(next)
	}
}
