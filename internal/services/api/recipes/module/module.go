// Package module wires recipes into the API using modkit
package module

import (
	"net/http"

	modkit "brewprints/internal/modkit"
	"brewprints/internal/modkit/httpkit"
	str "brewprints/internal/platform/strings"
	calcdomain "brewprints/internal/services/api/calc/domain"
	recipeshttp "brewprints/internal/services/api/recipes/http"
	recipesrepo "brewprints/internal/services/api/recipes/repo"
	recipessvc "brewprints/internal/services/api/recipes/service"
)

// Ports declares the injected port(s) for this module
type Ports struct {
	Calc calcdomain.ServicePort
}

// Module implements the recipes module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc recipessvc.Service
}

// New constructs the recipes module. The calc port is required
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("recipes"),
		modkit.WithPrefix("/recipes"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Calc == nil {
		panic("recipes module: missing required calc port")
	}

	cfg := FromConfig(deps.Cfg)

	svc := recipessvc.New(deps.PG, recipesrepo.NewPG(), injected.Calc)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptRecipesPort{svc: svc}

	auth := newTokenPort(cfg.AdminToken)

	external := b.Register
	m.register = func(r httpkit.Router) {
		recipeshttp.Register(r, m.svc, auth)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
