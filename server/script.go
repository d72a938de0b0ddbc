package server

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"stubnest/models"
)

// executeLuaScript runs a route's Lua script in a fresh interpreter and
// converts its return value to a JSON tree. Three globals are exposed:
//
//	request — method, path, headers, body, path_params
//	state   — get(key)/set(key, value) over the shared script state map
//	objects — a deep snapshot of the object store (not live)
//
// The state accessors take the script-state lock only for the duration of the
// map access; no lock is held across script execution.
func executeLuaScript(script string, store *Store, req *models.ScriptRequest) (interface{}, error) {
	L := lua.NewState()
	defer L.Close()

	requestTable := L.NewTable()
	requestTable.RawSetString("method", lua.LString(req.Method))
	requestTable.RawSetString("path", lua.LString(req.Path))

	headersTable := L.NewTable()
	for key, value := range req.Headers {
		headersTable.RawSetString(key, lua.LString(value))
	}
	requestTable.RawSetString("headers", headersTable)

	if req.Body != nil {
		requestTable.RawSetString("body", goValueToLua(L, req.Body))
	}

	pathParamsTable := L.NewTable()
	for key, value := range req.PathParams {
		pathParamsTable.RawSetString(key, lua.LString(value))
	}
	requestTable.RawSetString("path_params", pathParamsTable)

	L.SetGlobal("request", requestTable)

	stateTable := L.NewTable()
	stateTable.RawSetString("get", L.NewFunction(func(L *lua.LState) int {
		key := L.CheckString(1)
		value, ok := store.ScriptGet(key)
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(goValueToLua(L, value))
		return 1
	}))
	stateTable.RawSetString("set", L.NewFunction(func(L *lua.LState) int {
		key := L.CheckString(1)
		store.ScriptSet(key, luaValueToGo(L.Get(2)))
		return 0
	}))
	L.SetGlobal("state", stateTable)

	objectsTable := L.NewTable()
	for objectType, data := range store.SnapshotObjects() {
		list := L.NewTable()
		for _, obj := range data {
			list.Append(goValueToLua(L, obj))
		}
		objectsTable.RawSetString(objectType, list)
	}
	L.SetGlobal("objects", objectsTable)

	if err := L.DoString(script); err != nil {
		return nil, fmt.Errorf("script execution failed: %w", err)
	}

	result := luaValueToGo(L.Get(-1))
	return result, nil
}

// goValueToLua converts a JSON tree into Lua values. JSON objects become
// string-keyed tables, arrays become sequence tables.
func goValueToLua(L *lua.LState, value interface{}) lua.LValue {
	switch v := value.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(v)
	case string:
		return lua.LString(v)
	case float64:
		return lua.LNumber(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case map[string]interface{}:
		table := L.NewTable()
		for key, elem := range v {
			table.RawSetString(key, goValueToLua(L, elem))
		}
		return table
	case []interface{}:
		table := L.NewTable()
		for _, elem := range v {
			table.Append(goValueToLua(L, elem))
		}
		return table
	default:
		return lua.LNil
	}
}

// luaValueToGo converts a Lua value back into a JSON tree. A table with a
// non-empty sequence part 1..n becomes an array of those elements, and its
// other keys are dropped; a table without one becomes a string-keyed object.
// Numbers that are integral come back as int64 so they serialize without a
// decimal point.
func luaValueToGo(value lua.LValue) interface{} {
	switch v := value.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(v)
	case lua.LString:
		return string(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case *lua.LTable:
		seqLen := v.MaxN()
		if seqLen > 0 {
			arr := make([]interface{}, 0, seqLen)
			for i := 1; i <= seqLen; i++ {
				arr = append(arr, luaValueToGo(v.RawGetInt(i)))
			}
			return arr
		}
		obj := make(map[string]interface{})
		v.ForEach(func(key, elem lua.LValue) {
			obj[key.String()] = luaValueToGo(elem)
		})
		return obj
	default:
		return nil
	}
}
