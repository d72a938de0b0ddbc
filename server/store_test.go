package server

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stubnest/models"
)

func TestStoreAppendAndListPreservesOrder(t *testing.T) {
	store := NewStore()

	for i := 0; i < 5; i++ {
		store.AppendObject("orders", models.StoredObject{
			Id:   fmt.Sprintf("id-%d", i),
			Data: map[string]interface{}{"seq": i},
		})
	}

	list, ok := store.ListObjects("orders")
	require.True(t, ok)
	require.Len(t, list, 5)
	for i, obj := range list {
		assert.Equal(t, fmt.Sprintf("id-%d", i), obj.Id)
	}

	_, ok = store.ListObjects("missing")
	assert.False(t, ok)
}

func TestStoreFindObject(t *testing.T) {
	store := NewStore()
	store.AppendObject("users", models.StoredObject{Id: "u1", Data: "first"})
	store.AppendObject("users", models.StoredObject{Id: "u2", Data: "second"})
	store.AppendObject("users", models.StoredObject{Id: "u1", Data: "duplicate"})

	obj, ok := store.FindObject("users", "u1")
	require.True(t, ok)
	assert.Equal(t, "first", obj.Data, "first match wins")

	_, ok = store.FindObject("users", "nope")
	assert.False(t, ok)
}

func TestStoreKeyedCache(t *testing.T) {
	store := NewStore()

	store.PutKeyed("/orders_abc", map[string]interface{}{"id": "abc"})
	value, ok := store.GetKeyed("/orders_abc")
	require.True(t, ok)
	assert.Equal(t, map[string]interface{}{"id": "abc"}, value)

	_, ok = store.GetKeyed("/orders_def")
	assert.False(t, ok)
}

func TestStoreScriptState(t *testing.T) {
	store := NewStore()

	_, ok := store.ScriptGet("counter")
	assert.False(t, ok)

	store.ScriptSet("counter", int64(3))
	value, ok := store.ScriptGet("counter")
	require.True(t, ok)
	assert.Equal(t, int64(3), value)
}

func TestStoreClearAll(t *testing.T) {
	store := NewStore()
	store.AppendObject("orders", models.StoredObject{Id: "x", Data: nil})
	store.PutKeyed("k", "v")
	store.ScriptSet("s", "v")

	store.ClearAll()

	_, ok := store.ListObjects("orders")
	assert.False(t, ok)
	_, ok = store.GetKeyed("k")
	assert.False(t, ok)
	_, ok = store.ScriptGet("s")
	assert.False(t, ok)
}

func TestSnapshotObjectsIsDeepCopy(t *testing.T) {
	store := NewStore()
	store.AppendObject("orders", models.StoredObject{
		Id:   "o1",
		Data: map[string]interface{}{"customer": "John"},
	})

	snapshot := store.SnapshotObjects()
	require.Len(t, snapshot["orders"], 1)

	// Mutating the snapshot must not leak into the store.
	snapshot["orders"][0].(map[string]interface{})["customer"] = "Mallory"

	obj, ok := store.FindObject("orders", "o1")
	require.True(t, ok)
	assert.Equal(t, "John", obj.Data.(map[string]interface{})["customer"])
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			store.AppendObject("orders", models.StoredObject{
				Id:   fmt.Sprintf("id-%d", i),
				Data: map[string]interface{}{"seq": i},
			})
		}(i)
		go func() {
			defer wg.Done()
			store.ListObjects("orders")
			store.SnapshotObjects()
		}()
	}
	wg.Wait()

	list, ok := store.ListObjects("orders")
	require.True(t, ok)
	assert.Len(t, list, 20)
}
