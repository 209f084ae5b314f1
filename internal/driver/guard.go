package driver

import (
	"sync"

	"github.com/sourcelang/slc/internal/resolved"
	"github.com/sourcelang/slc/internal/sema"
)

// exportGuard is a mutex-guarded map from module identity to its export
// table, written once per module by its sema goroutine and read by every
// dependent (grounded on internal/module.Graph's sync.RWMutex-guarded
// map, generalized to this pipeline's second concurrent map).
type exportGuard struct {
	mu      sync.RWMutex
	exports map[string]sema.ExportTable
}

func newExportGuard() *exportGuard {
	return &exportGuard{exports: make(map[string]sema.ExportTable)}
}

func (g *exportGuard) set(id string, t sema.ExportTable) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.exports[id] = t
}

// snapshotFor returns only the export tables already available for the
// given import names; a sema goroutine only calls this after every
// dependency's done channel has closed, so every entry it asks for here
// is guaranteed present.
func (g *exportGuard) snapshotFor(names []string) map[string]sema.ExportTable {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(map[string]sema.ExportTable, len(names))
	for _, n := range names {
		if t, ok := g.exports[n]; ok {
			out[n] = t
		}
	}
	return out
}

type moduleGuard struct {
	mu      sync.Mutex
	modules map[string]*resolved.Module
}

func newModuleGuard() *moduleGuard {
	return &moduleGuard{modules: make(map[string]*resolved.Module)}
}

func (g *moduleGuard) set(id string, m *resolved.Module) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.modules[id] = m
}

func (g *moduleGuard) all() map[string]*resolved.Module {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make(map[string]*resolved.Module, len(g.modules))
	for k, v := range g.modules {
		out[k] = v
	}
	return out
}
