package script

import (
	"encoding/json"
	"strings"

	"github.com/Shopify/go-lua"
)

// sandbox creates a safe Lua environment: only the base, string, table,
// and math libraries, no file or process access, no dynamic loading.
func sandbox(l *lua.State) {
	lua.Require(l, "_G", lua.BaseOpen, true)
	l.Pop(1)
	lua.Require(l, "string", lua.StringOpen, true)
	l.Pop(1)
	lua.Require(l, "table", lua.TableOpen, true)
	l.Pop(1)
	lua.Require(l, "math", lua.MathOpen, true)
	l.Pop(1)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		l.PushNil()
		l.SetGlobal(name)
	}

	l.Register("json_encode", jsonEncode)
	l.Register("json_decode", jsonDecode)
	l.Register("str_trim", strTrim)
}

// toLua converts a Go value to Lua.
func toLua(l *lua.State, v any) {
	switch val := v.(type) {
	case nil:
		l.PushNil()
	case bool:
		l.PushBoolean(val)
	case int:
		l.PushInteger(val)
	case int64:
		l.PushInteger(int(val))
	case float64:
		l.PushNumber(val)
	case string:
		l.PushString(val)
	case []any:
		l.NewTable()
		for i, item := range val {
			l.PushInteger(i + 1)
			toLua(l, item)
			l.SetTable(-3)
		}
	case map[string]any:
		l.NewTable()
		for k, item := range val {
			l.PushString(k)
			toLua(l, item)
			l.SetTable(-3)
		}
	default:
		// Unknown types degrade to their JSON encoding.
		if data, err := json.Marshal(val); err == nil {
			l.PushString(string(data))
		} else {
			l.PushNil()
		}
	}
}

// fromLua converts a Lua value to Go. Tables with contiguous integer
// keys become slices, everything else becomes a string-keyed map.
func fromLua(l *lua.State, idx int) any {
	switch l.TypeOf(idx) {
	case lua.TypeNil:
		return nil
	case lua.TypeBoolean:
		return l.ToBoolean(idx)
	case lua.TypeNumber:
		n, _ := l.ToNumber(idx)
		return n
	case lua.TypeString:
		s, _ := l.ToString(idx)
		return s
	case lua.TypeTable:
		l.PushValue(idx)

		isArray := true
		maxIndex := 0

		l.PushNil()
		for l.Next(-2) {
			if l.TypeOf(-2) != lua.TypeNumber {
				isArray = false
				l.Pop(2)
				break
			}
			n, _ := l.ToNumber(-2)
			if i := int(n); i > maxIndex {
				maxIndex = i
			}
			l.Pop(1)
		}

		if isArray && maxIndex > 0 {
			arr := make([]any, maxIndex)
			for i := 1; i <= maxIndex; i++ {
				l.PushInteger(i)
				l.Table(-2)
				arr[i-1] = fromLua(l, -1)
				l.Pop(1)
			}
			l.Pop(1)
			return arr
		}

		obj := make(map[string]any)
		l.PushNil()
		for l.Next(-2) {
			key, _ := l.ToString(-2)
			obj[key] = fromLua(l, -1)
			l.Pop(1)
		}
		l.Pop(1)
		return obj
	default:
		return nil
	}
}

func jsonEncode(l *lua.State) int {
	value := fromLua(l, 1)
	data, err := json.Marshal(value)
	if err != nil {
		l.PushNil()
		l.PushString(err.Error())
		return 2
	}
	l.PushString(string(data))
	return 1
}

func jsonDecode(l *lua.State) int {
	str := lua.CheckString(l, 1)
	var value any
	if err := json.Unmarshal([]byte(str), &value); err != nil {
		l.PushNil()
		l.PushString(err.Error())
		return 2
	}
	toLua(l, value)
	return 1
}

func strTrim(l *lua.State) int {
	str := lua.CheckString(l, 1)
	l.PushString(strings.TrimSpace(str))
	return 1
}
