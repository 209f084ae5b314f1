// Package module builds the cross-file import dependency graph for a
// compilation: parsing each file exactly once, resolving `import` names
// against a set of search directories, detecting cycles, and handing back
// modules in dependency order so semantic analysis can run bottom-up
// (spec.md §4.3). Grounded on the shape of a hand-rolled module loader:
// an explicit load-stack for cycle detection, a path cache, and a
// Kahn's-algorithm topological sort.
package module

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sourcelang/slc/internal/ast"
	"github.com/sourcelang/slc/internal/diag"
	"github.com/sourcelang/slc/internal/parser"
	"github.com/sourcelang/slc/internal/source"
)

// SourceExtension is the project-configured source file extension
// (spec.md §6: "file extension is the project-configured source
// extension (e.g. `.sl`)").
const SourceExtension = ".sl"

// Module owns one parsed source file: its AST, its identity (the
// file-name stem, spec.md §3), and its list of import names in source
// order.
type Module struct {
	Identity string
	Path     string
	File     *ast.File
	Imports  []string
}

// Graph is the fully-loaded, cycle-free import dependency graph.
type Graph struct {
	mu      sync.RWMutex
	modules map[string]*Module
	order   []string // bottom-up: dependencies precede dependents
}

// Modules returns every loaded module.
func (g *Graph) Modules() map[string]*Module {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(map[string]*Module, len(g.modules))
	for k, v := range g.modules {
		out[k] = v
	}
	return out
}

// Get returns one module by identity.
func (g *Graph) Get(identity string) (*Module, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	m, ok := g.modules[identity]
	return m, ok
}

// Order returns module identities in bottom-up (dependencies-first)
// order, suitable for sema scheduling (spec.md §4.3, §5).
func (g *Graph) Order() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Loader collects a root file and its transitive imports into a Graph.
type Loader struct {
	searchPaths []string
	sink        *diag.Sink

	cache     map[string]*Module
	resolved  map[string]string // identity -> resolved file path, for ambiguous-stem detection
	loadStack []string
}

// NewLoader creates a Loader that searches the given directories (the
// `-i` flag, spec.md §6) for imported modules, in order.
func NewLoader(searchPaths []string, sink *diag.Sink) *Loader {
	return &Loader{
		searchPaths: searchPaths,
		sink:        sink,
		cache:       make(map[string]*Module),
		resolved:    make(map[string]string),
	}
}

// Load parses rootPath and every module it transitively imports,
// returning the resulting Graph in bottom-up order. Cycles and missing
// imports are reported to the sink and leave the Graph incomplete.
func (l *Loader) Load(rootPath string) *Graph {
	identity := identityOf(rootPath)
	l.loadOne(identity, rootPath)

	g := &Graph{modules: l.cache}
	g.order = l.topoOrder()
	return g
}

func identityOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (l *Loader) loadOne(identity, path string) *Module {
	if l.onStack(identity) {
		l.reportCycle(identity)
		return nil
	}
	if m, ok := l.cache[identity]; ok {
		return m
	}

	l.loadStack = append(l.loadStack, identity)
	defer func() { l.loadStack = l.loadStack[:len(l.loadStack)-1] }()

	data, err := os.ReadFile(path)
	if err != nil {
		l.sink.Errorf(source.Location{Path: path}, diag.MOD001, "could not read module %q: %v", identity, err)
		return nil
	}

	buf := source.New(path, data)
	f := parser.New(buf, l.sink).Parse()

	m := &Module{Identity: identity, Path: path, File: f}
	for _, imp := range f.Imports {
		m.Imports = append(m.Imports, imp.Name)
	}
	l.cache[identity] = m

	for _, imp := range f.Imports {
		impPath, ok := l.resolveImport(imp.Name)
		if !ok {
			l.sink.Errorf(imp.Pos(), diag.MOD001, "could not resolve module %q", imp.Name)
			continue
		}
		l.loadOne(imp.Name, impPath)
	}

	return m
}

func (l *Loader) onStack(identity string) bool {
	for _, s := range l.loadStack {
		if s == identity {
			return true
		}
	}
	return false
}

func (l *Loader) reportCycle(identity string) {
	cycle := append(append([]string{}, l.loadStack...), identity)
	l.sink.Errorf(source.Location{}, diag.MOD003, "import cycle detected: %s", strings.Join(cycle, " -> "))
}

// resolveImport locates `<name><SourceExtension>` on the search path.
// More than one search-path directory containing the same stem is an
// ambiguous-import error (spec.md §4.3/§7); it is reported once, on
// first resolution of that name.
func (l *Loader) resolveImport(name string) (string, bool) {
	if p, ok := l.resolved[name]; ok {
		return p, true
	}

	var matches []string
	for _, dir := range l.searchPaths {
		candidate := filepath.Join(dir, name+SourceExtension)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			abs, err := filepath.Abs(candidate)
			if err == nil {
				matches = append(matches, abs)
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", false
	case 1:
		l.resolved[name] = matches[0]
		return matches[0], true
	default:
		l.sink.Errorf(source.Location{}, diag.MOD002, "ambiguous import %q: found in %s", name, strings.Join(matches, ", "))
		l.resolved[name] = matches[0]
		return matches[0], true
	}
}

// topoOrder runs Kahn's algorithm over the dependency graph so that
// every module appears after the modules it imports.
func (l *Loader) topoOrder() []string {
	inDegree := make(map[string]int, len(l.cache))
	dependents := make(map[string][]string, len(l.cache))

	for id := range l.cache {
		inDegree[id] = 0
	}
	for id, m := range l.cache {
		for _, dep := range m.Imports {
			if _, ok := l.cache[dep]; !ok {
				continue // unresolved import already reported
			}
			inDegree[id]++
			dependents[dep] = append(dependents[dep], id)
		}
	}

	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue) // deterministic order among equally-ready modules

	var order []string
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		var freed []string
		for _, dependent := range dependents[id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				freed = append(freed, dependent)
			}
		}
		sort.Strings(freed)
		queue = append(queue, freed...)
	}

	return order
}

// ExportedNames returns the names exported by a module's top-level
// declarations, in declaration order (spec.md §3's exported symbol
// table). Sema does not merge these into an importer's local scope:
// an imported value is reached only through a `module::name`
// reference, and only type names are also looked up unqualified.
func ExportedNames(f *ast.File) []string {
	var names []string
	for _, d := range f.Decls {
		switch n := d.(type) {
		case *ast.FunctionDecl:
			if n.Exported {
				names = append(names, n.Name)
			}
		case *ast.VarDecl:
			if n.Exported {
				names = append(names, n.Name)
			}
		case *ast.StructDecl:
			if n.Exported {
				names = append(names, n.Name)
			}
		case *ast.EnumDecl:
			if n.Exported {
				names = append(names, n.Name)
			}
		}
	}
	return names
}
