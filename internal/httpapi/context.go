package httpapi

import (
	"context"
	"net/http"

	"aigateway/internal/apierr"
)

// serverBaseCtx is a process-level context that can be canceled on shutdown.
// Defaults to Background if not set.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level base context used by handlers.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// joinContexts returns a context that is canceled when either a or b is done.
// It carries a's values. The returned cancel func must be called when the
// handler ends.
func joinContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(a)
	stop := context.AfterFunc(b, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// handlerContext joins the request context with the server base context so
// shutdown cancels in-flight provider calls too.
func handlerContext(r *http.Request) (context.Context, context.CancelFunc) {
	return joinContexts(r.Context(), serverBaseCtx)
}

// clientGone reports whether the client canceled the request.
func clientGone(r *http.Request) bool { return r.Context().Err() != nil }

// shuttingDown reports whether the server base context is done. The client may
// still be connected and must get an error response.
func shuttingDown() bool { return serverBaseCtx.Err() != nil }

func errShuttingDown() error { return apierr.Unavailable("server is shutting down") }
