package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/pollbind/internal/button"
	"github.com/dshills/pollbind/internal/keybind"
)

// Runner executes binding scripts against one Keybind instance.
//
// gopher-lua's LState is not goroutine-safe; a Runner must be used
// from a single goroutine, which matches the single-threaded model of
// the keybind engine itself.
type Runner struct {
	L  *lua.LState
	kb *keybind.Keybind
}

// NewRunner creates a sandboxed runner bound to kb.
func NewRunner(kb *keybind.Keybind) *Runner {
	r := &Runner{
		L:  lua.NewState(),
		kb: kb,
	}
	r.sandbox()
	r.register()
	return r
}

// Close releases the Lua state.
func (r *Runner) Close() {
	r.L.Close()
}

// sandbox removes the script-loading functions a binding script has no
// business using and clears the module search paths, so a script can
// only reach the functions registered here and Lua's pure built-ins.
func (r *Runner) sandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		r.L.SetGlobal(name, lua.LNil)
	}

	pkg := r.L.GetGlobal("package")
	if pkgTable, ok := pkg.(*lua.LTable); ok {
		r.L.SetField(pkgTable, "path", lua.LString(""))
		r.L.SetField(pkgTable, "cpath", lua.LString(""))
	}
}

// register installs the binding DSL.
func (r *Runner) register() {
	r.L.SetGlobal("bind", r.L.NewFunction(r.luaBind))
	r.L.SetGlobal("clear", r.L.NewFunction(r.luaClear))
	r.L.SetGlobal("buttons", r.L.NewFunction(r.luaButtons))
}

// luaBind implements bind(event, {id, ...}, state).
// Events are zero-based, matching the Go API. Button IDs are listed in
// press order with the primary last. The state argument is an
// expression understood by button.ParseState.
func (r *Runner) luaBind(L *lua.LState) int {
	event := L.CheckInt(1)
	tbl := L.CheckTable(2)
	expr := L.CheckString(3)

	ids := make([]button.ID, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		v := tbl.RawGetInt(i)
		n, ok := v.(lua.LNumber)
		if !ok {
			L.RaiseError("bind: button list entry %d is not a number", i)
		}
		ids = append(ids, button.ID(n))
	}

	state, err := button.ParseState(expr)
	if err != nil {
		L.RaiseError("bind event %d: %v", event, err)
	}
	if err := r.kb.Assign(event, ids, state); err != nil {
		L.RaiseError("bind: %v", err)
	}
	return 0
}

// luaClear implements clear(): unassigns every event.
func (r *Runner) luaClear(L *lua.LState) int {
	r.kb.Clear()
	return 0
}

// luaButtons implements buttons(): returns the managed button IDs in
// slot order, so scripts can sanity-check their wiring.
func (r *Runner) luaButtons(L *lua.LState) int {
	tbl := L.NewTable()
	r.kb.ForEach(func(b button.Button) {
		tbl.Append(lua.LNumber(b.ID()))
	})
	L.Push(tbl)
	return 1
}

// RunFile executes a binding script from a file.
func (r *Runner) RunFile(path string) error {
	if err := r.L.DoFile(path); err != nil {
		return fmt.Errorf("binding script %s: %w", path, err)
	}
	return nil
}

// RunString executes a binding script from source text.
func (r *Runner) RunString(src string) error {
	if err := r.L.DoString(src); err != nil {
		return fmt.Errorf("binding script: %w", err)
	}
	return nil
}
