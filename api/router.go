// Package api dispatches API Gateway proxy requests for the todo resource to
// operation handlers and shapes their responses.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/jacentio/todos/todo"
)

// Route templates served by the Router.
const (
	RouteTodos    = "/todos"
	RouteTodoByID = "/todos/{id}"
)

// Store is the table surface used by the handlers. *store.Table satisfies it.
type Store interface {
	Put(ctx context.Context, item todo.Item) error
	Get(ctx context.Context, id string) (todo.Item, error)
	Scan(ctx context.Context, limit int32) ([]todo.Item, error)
	QueryByStatus(ctx context.Context, status string, limit int32) ([]todo.Item, error)
	Update(ctx context.Context, id string, u todo.Update, updatedAt string) (map[string]any, error)
	Delete(ctx context.Context, id string) error
}

// StoreFunc resolves the Store for a request.
type StoreFunc func(ctx context.Context) (Store, error)

type route struct {
	path   string
	method string
}

type handlerFunc func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Router maps (route, method) pairs to handlers.
type Router struct {
	store  StoreFunc
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
	routes map[route]handlerFunc
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock sets the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Router) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator sets the item id generator. Default: random UUIDs.
func WithIDGenerator(newID func() string) Option {
	return func(r *Router) {
		if newID != nil {
			r.newID = newID
		}
	}
}

// NewRouter creates a Router whose handlers resolve the table through store.
func NewRouter(store StoreFunc, opts ...Option) *Router {
	r := &Router{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.routes = map[route]handlerFunc{
		{RouteTodos, "POST"}:      r.create,
		{RouteTodos, "GET"}:       r.list,
		{RouteTodoByID, "GET"}:    r.get,
		{RouteTodoByID, "PUT"}:    r.update,
		{RouteTodoByID, "DELETE"}: r.delete,
	}
	return r
}

// Handle dispatches a request and always returns a structured response; the
// error result is always nil so the gateway never sees an invocation failure.
func (r *Router) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, _ error) {
	path := req.Resource
	if path == "" {
		path = req.Path
	}
	method := strings.ToUpper(req.HTTPMethod)
	if method == "" {
		method = "GET"
	}

	defer func() {
		if rec := recover(); rec != nil {
			resp = r.failed(ctx, path, method, fmt.Errorf("panic: %v", rec))
		}
		r.logger.InfoContext(ctx, "handled request",
			"route", path,
			"method", method,
			"status", resp.StatusCode,
		)
	}()

	h, ok := r.routes[route{path, method}]
	if !ok {
		return notFoundRoute(), nil
	}

	resp, err := h(ctx, req)
	if err != nil {
		return r.failed(ctx, path, method, err), nil
	}
	return resp, nil
}

func (r *Router) failed(ctx context.Context, path, method string, err error) events.APIGatewayProxyResponse {
	r.logger.ErrorContext(ctx, "request failed",
		"route", path,
		"method", method,
		"error", err,
	)
	return internalError(err)
}

func (r *Router) timestamp() string {
	return todo.Timestamp(r.now())
}
