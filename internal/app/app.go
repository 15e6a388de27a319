// Package app wires the service's dependency graph with samber/do.
package app

import (
	"context"
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/jacentio/todos/api"
	"github.com/jacentio/todos/internal/config"
	"github.com/jacentio/todos/store"
)

// Option adjusts the graph before it is resolved.
type Option func(*options)

type options struct {
	open      store.OpenFunc
	routerOps []api.Option
}

// WithOpener replaces the function that connects to DynamoDB.
func WithOpener(open store.OpenFunc) Option {
	return func(o *options) {
		o.open = open
	}
}

// WithRouterOptions passes extra options to the router.
func WithRouterOptions(opts ...api.Option) Option {
	return func(o *options) {
		o.routerOps = append(o.routerOps, opts...)
	}
}

// New registers the config, logger, table accessor and router in a fresh
// injector. Nothing is connected until the first request asks for the table.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *do.RootScope {
	o := &options{open: store.Open}
	for _, opt := range opts {
		opt(o)
	}

	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)

	do.Provide(injector, func(i do.Injector) (*store.Accessor, error) {
		c := do.MustInvoke[*config.Config](i)
		return store.NewAccessorWithOpener(c.Store, o.open), nil
	})

	do.Provide(injector, func(i do.Injector) (*api.Router, error) {
		accessor := do.MustInvoke[*store.Accessor](i)
		log := do.MustInvoke[*slog.Logger](i)

		routerOpts := append([]api.Option{api.WithLogger(log)}, o.routerOps...)
		return api.NewRouter(storeFunc(accessor), routerOpts...), nil
	})

	return injector
}

// Router resolves the router from an injector built by New.
func Router(injector do.Injector) (*api.Router, error) {
	return do.Invoke[*api.Router](injector)
}

func storeFunc(accessor *store.Accessor) api.StoreFunc {
	return func(ctx context.Context) (api.Store, error) {
		tbl, err := accessor.Table(ctx)
		if err != nil {
			return nil, err
		}
		return tbl, nil
	}
}
