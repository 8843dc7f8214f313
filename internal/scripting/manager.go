package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Manager owns one sandboxed VM holding every device hook script.
//
// Manager is safe for concurrent use; calls into the VM are serialized.
type Manager struct {
	mu        sync.Mutex
	state     *lua.LState
	instLimit int
	logger    *zap.Logger
}

// NewManager creates a Manager with an empty VM.
//
// Precondition: logger must be non-nil; instLimit >= 0 (0 uses DefaultInstructionLimit).
// Postcondition: Returns a non-nil Manager; hooks resolve to absent until LoadDir succeeds.
func NewManager(instLimit int, logger *zap.Logger) *Manager {
	if instLimit <= 0 {
		instLimit = DefaultInstructionLimit
	}
	return &Manager{
		state:     NewSandboxedState(),
		instLimit: instLimit,
		logger:    logger,
	}
}

// LoadDir executes every *.lua file in dir in lexicographic order inside a
// fresh VM, then swaps it in for the current one.
//
// Precondition: dir must be a readable directory.
// Postcondition: on error the previously loaded VM stays active.
func (m *Manager) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	L := NewSandboxedState()
	for _, path := range files {
		ctx, cancel := newBudgetContext(m.instLimit)
		L.SetContext(ctx)
		err := L.DoFile(path)
		cancel()
		L.RemoveContext()
		if err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	old := m.state
	m.state = L
	m.mu.Unlock()
	old.Close()

	m.logger.Debug("scripting: hooks loaded",
		zap.String("dir", dir),
		zap.Int("files", len(files)),
	)
	return nil
}

// HasHook reports whether a global function named hook is defined.
func (m *Manager) HasHook(hook string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.GetGlobal(hook).Type() == lua.LTFunction
}

// CallPredicate calls the global function hook with a single table argument
// built from fields and interprets its first return value as a boolean.
//
// ok is false when the hook is undefined or fails at runtime (including
// exhausting its opcode budget); runtime errors are logged at Warn level and
// never propagated.
//
// Postcondition: when ok is true, result is the Lua truthiness of the return value.
func (m *Manager) CallPredicate(hook string, fields map[string]any) (result bool, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	L := m.state
	fn := L.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return false, false
	}

	ctx, cancel := newBudgetContext(m.instLimit)
	defer cancel()
	L.SetContext(ctx)
	defer L.RemoveContext()

	if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, toTable(L, fields)); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return false, false
	}
	ret := L.Get(-1)
	L.Pop(1)
	return lua.LVAsBool(ret), true
}

// Close releases the VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Close()
}

func toTable(L *lua.LState, fields map[string]any) *lua.LTable {
	tbl := L.NewTable()
	for k, v := range fields {
		switch val := v.(type) {
		case bool:
			tbl.RawSetString(k, lua.LBool(val))
		case int:
			tbl.RawSetString(k, lua.LNumber(val))
		case float64:
			tbl.RawSetString(k, lua.LNumber(val))
		case string:
			tbl.RawSetString(k, lua.LString(val))
		}
	}
	return tbl
}
