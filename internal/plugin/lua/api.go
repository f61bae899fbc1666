package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// installAPI creates the glyph table and replaces print.
func (s *State) installAPI() {
	L := s.L
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"insert":  s.apiInsert,
		"text":    s.apiText,
		"cursor":  s.apiCursor,
		"message": s.apiMessage,
		"quit":    s.apiQuit,
		"command": s.apiCommand,
	})
	L.SetGlobal("glyph", mod)
	L.SetGlobal("print", L.NewFunction(s.apiPrint))
}

func (s *State) apiInsert(L *lua.LState) int {
	text := L.CheckString(1)
	if err := s.host.Insert(text); err != nil {
		L.RaiseError("insert: %s", err.Error())
	}
	return 0
}

func (s *State) apiText(L *lua.LState) int {
	L.Push(lua.LString(s.host.Text()))
	return 1
}

func (s *State) apiCursor(L *lua.LState) int {
	line, col := s.host.Cursor()
	L.Push(lua.LNumber(line + 1))
	L.Push(lua.LNumber(col + 1))
	return 2
}

func (s *State) apiMessage(L *lua.LState) int {
	s.host.Message(L.CheckString(1))
	return 0
}

func (s *State) apiQuit(L *lua.LState) int {
	s.host.Quit()
	return 0
}

// apiCommand registers glyph.command(name, fn). A nil fn removes the
// command.
func (s *State) apiCommand(L *lua.LState) int {
	name := L.CheckString(1)
	if name == "" || strings.ContainsAny(name, " \t") {
		L.ArgError(1, "command name must be a single word")
		return 0
	}
	if L.Get(2) == lua.LNil {
		s.commands.RawSetString(name, lua.LNil)
		return 0
	}
	s.commands.RawSetString(name, L.CheckFunction(2))
	return 0
}

// apiPrint joins its arguments with tabs like the standard print and
// shows them on the status row.
func (s *State) apiPrint(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	s.host.Message(strings.Join(parts, "\t"))
	return 0
}
