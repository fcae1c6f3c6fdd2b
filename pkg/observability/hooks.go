// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about registry requests and dependency validation.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    observability.SetValidationHooks(&myValidationHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Validation().OnBatchStart(ctx, len(deps), parallel)
//	// ... validate ...
//	observability.Validation().OnBatchComplete(ctx, errs, warns, skipped, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from registry HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// Validation Hooks
// =============================================================================

// ValidationHooks receives events from dependency validation.
type ValidationHooks interface {
	// OnBatchStart records the start of a manifest-wide validation.
	OnBatchStart(ctx context.Context, count int, parallel bool)

	// OnDependency records the outcome of validating a single dependency.
	OnDependency(ctx context.Context, name string, errors, warnings int, duration time.Duration)

	// OnBatchComplete records the end of a manifest-wide validation.
	// skipped is true when the batch timed out and was abandoned.
	OnBatchComplete(ctx context.Context, errors, warnings int, skipped bool, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// NoopValidationHooks is a no-op implementation of ValidationHooks.
type NoopValidationHooks struct{}

func (NoopValidationHooks) OnBatchStart(context.Context, int, bool)                         {}
func (NoopValidationHooks) OnDependency(context.Context, string, int, int, time.Duration)    {}
func (NoopValidationHooks) OnBatchComplete(context.Context, int, int, bool, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	httpHooks       HTTPHooks       = NoopHTTPHooks{}
	validationHooks ValidationHooks = NoopValidationHooks{}
	hooksMu         sync.RWMutex
)

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// SetValidationHooks registers custom validation hooks.
func SetValidationHooks(h ValidationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		validationHooks = h
	}
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Validation returns the registered validation hooks.
func Validation() ValidationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return validationHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	httpHooks = NoopHTTPHooks{}
	validationHooks = NoopValidationHooks{}
}
