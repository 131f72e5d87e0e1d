package lispi

import "sync"

// Globals is the single table of top-level definitions, shared by handle
// across every Env derived from the same root. A def made through any Env is
// visible everywhere at once, including inside closures created earlier.
type Globals struct {
	mu       sync.RWMutex
	bindings map[string]Value
}

func (g *Globals) Get(name string) (Value, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	val, ok := g.bindings[name]
	return val, ok
}

func (g *Globals) Set(name string, val Value) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.bindings[name] = val
}

// Env is the two-tier symbol table: the run-wide global table plus the local
// bindings of the current call frame. Resolution checks local before global.
type Env struct {
	globals *Globals
	local   map[string]Value
}

func (e *Env) Resolve(name string) (Value, bool) {
	if val, ok := e.local[name]; ok {
		return val, true
	}
	return e.globals.Get(name)
}

// Define binds a name in the global table.
func (e *Env) Define(name string, val Value) {
	e.globals.Set(name, val)
}

// fork builds a call-frame environment over the same global table.
func (e *Env) fork(local map[string]Value) *Env {
	return &Env{globals: e.globals, local: local}
}

// snapshotLocal copies the current local bindings for closure capture.
func (e *Env) snapshotLocal() map[string]Value {
	snapshot := make(map[string]Value, len(e.local))
	for k, v := range e.local {
		snapshot[k] = v
	}
	return snapshot
}
