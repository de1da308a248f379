// Package module wires calc into the API using modkit
package module

import (
	"net/http"

	"brewprints/internal/core/water"
	modkit "brewprints/internal/modkit"
	"brewprints/internal/modkit/httpkit"
	str "brewprints/internal/platform/strings"
	calchttp "brewprints/internal/services/api/calc/http"
	calcsvc "brewprints/internal/services/api/calc/service"
	runsdomain "brewprints/internal/services/runs/domain"
)

// Ports declares the injected port(s) for this module. Recorder may be nil
// when run telemetry is disabled
type Ports struct {
	Recorder runsdomain.RecorderPort
}

// Module implements the calc module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc calcsvc.Service
}

// New constructs the calc module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("calc"),
		modkit.WithPrefix("/calc"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}

	cfg := FromConfig(deps.Cfg)

	terms, err := water.LoadTerms()
	if err != nil {
		panic("calc module: term pack failed to compile: " + err.Error())
	}

	svc := calcsvc.New(terms, calcsvc.Options{
		CacheCap: cfg.CacheCap,
		Recorder: injected.Recorder,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptCalcPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		calchttp.Register(r, m.svc)
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
