// Package module implements the run telemetry module. It is headless: no
// routes, just the Recorder port other modules consume
package module

import (
	"brewprints/internal/modkit"
	"brewprints/internal/modkit/httpkit"
	"brewprints/internal/services/runs/domain"
	"brewprints/internal/services/runs/repo"
	"brewprints/internal/services/runs/service"
)

// Ports exposed by the runs module
type Ports struct {
	Recorder domain.RecorderPort
}

// Module implements the runs module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the runs module. Without a clickhouse seam the recorder
// degrades to a no op so calculations keep working
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	var rec domain.RecorderPort = service.Nop{}
	if deps.CH != nil {
		rec = service.New(repo.NewCH(deps.CH), service.Options{Timeout: opts.Timeout})
	}

	return &Module{deps: deps, ports: Ports{Recorder: rec}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "runs" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
