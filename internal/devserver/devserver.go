// Package devserver serves the API Gateway router over plain HTTP for local
// development, standing in for the gateway's proxy integration.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"

	"github.com/jacentio/todos/api"
)

// emptyIDRoute is the item route with the id segment left blank.
const emptyIDRoute = api.RouteTodos + "/"

const (
	defaultShutdownTimeout = 10 * time.Second
	readHeaderTimeout      = 5 * time.Second
)

// Handler is the function invoked per request, normally (*api.Router).Handle.
type Handler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// NewHandler maps the router's resources onto chi routes. "/todos/" is
// forwarded as the item resource with an empty id. Requests that match no
// resource are still forwarded, with an empty Resource and the raw path, so
// the router's own 404 is returned.
func NewHandler(h Handler, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	f := &forwarder{handle: h, logger: logger}

	r := chi.NewRouter()
	r.HandleFunc(api.RouteTodos, f.serve)
	r.HandleFunc(api.RouteTodoByID, f.serve)
	r.HandleFunc(emptyIDRoute, f.serve)
	r.NotFound(f.serve)
	r.MethodNotAllowed(f.serve)
	return r
}

type forwarder struct {
	handle Handler
	logger *slog.Logger
}

func (f *forwarder) serve(w http.ResponseWriter, r *http.Request) {
	req, err := toProxyRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := f.handle(r.Context(), req)
	if err != nil {
		f.logger.ErrorContext(r.Context(), "handler returned error",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	// A 204 refuses a body; the write error is expected there.
	_, _ = io.WriteString(w, resp.Body)
}

func toProxyRequest(r *http.Request) (events.APIGatewayProxyRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return events.APIGatewayProxyRequest{}, fmt.Errorf("reading body: %w", err)
	}

	req := events.APIGatewayProxyRequest{
		Path:       r.URL.Path,
		HTTPMethod: r.Method,
		Body:       string(body),
		Headers:    make(map[string]string, len(r.Header)),
	}
	for k := range r.Header {
		req.Headers[k] = r.Header.Get(k)
	}

	if q := r.URL.Query(); len(q) > 0 {
		req.QueryStringParameters = make(map[string]string, len(q))
		req.MultiValueQueryStringParameters = q
		for k := range q {
			req.QueryStringParameters[k] = q.Get(k)
		}
	}

	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return req, nil
	}
	switch pattern := rctx.RoutePattern(); pattern {
	case api.RouteTodos, api.RouteTodoByID:
		req.Resource = pattern
	case emptyIDRoute:
		req.Resource = api.RouteTodoByID
		req.PathParameters = map[string]string{"id": ""}
		return req, nil
	}
	if len(rctx.URLParams.Keys) > 0 {
		req.PathParameters = make(map[string]string, len(rctx.URLParams.Keys))
		for i, k := range rctx.URLParams.Keys {
			req.PathParameters[k] = rctx.URLParams.Values[i]
		}
	}
	return req, nil
}

// Server wraps http.Server with graceful shutdown support.
type Server struct {
	srv    *http.Server
	logger *slog.Logger
}

// NewServer creates a server listening on addr.
func NewServer(addr string, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logger: logger,
	}
}

// Start blocks serving HTTP until the server stops. It returns nil after a
// graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("starting dev server", slog.String("addr", s.srv.Addr))

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests. Without a deadline on ctx a 10 second
// timeout applies.
func (s *Server) Shutdown(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultShutdownTimeout)
		defer cancel()
	}

	s.logger.Info("shutting down dev server")
	return s.srv.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}
