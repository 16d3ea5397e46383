// Package script configures keybind assignments from Lua scripts.
//
// A binding script runs in a sandboxed Lua state with three globals:
//
//	bind(event, {id, ...}, state)  -- assign a sequence to an event
//	clear()                        -- unassign every event
//	buttons()                      -- list managed button IDs
//
// Example:
//
//	clear()
//	bind(0, {4}, "release")
//	bind(1, {2, 4}, "hold")       -- 2 is the modifier, 4 the primary
//	bind(2, {4}, "push|rapid")
//
// The sandbox removes dofile/loadfile/load/loadstring and clears the
// module search paths; scripts can use Lua's pure built-ins (string,
// table, math) but cannot load code from disk.
package script
