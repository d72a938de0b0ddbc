package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stubnest/models"
)

func seedOrders(store *Store) {
	store.AppendObject("orders", models.StoredObject{
		Id: "o1",
		Data: map[string]interface{}{
			"customer": "John Doe",
			"items":    []interface{}{"laptop", "mouse"},
			"shipping": map[string]interface{}{"city": "Springfield"},
		},
	})
	store.AppendObject("orders", models.StoredObject{
		Id: "o2",
		Data: map[string]interface{}{
			"customer": "Jane Smith",
			"items":    []interface{}{"keyboard"},
		},
	})
}

func TestResolveBulkReference(t *testing.T) {
	store := NewStore()
	seedOrders(store)

	result := resolveCrossReferences("{objects.orders}", store)
	arr, ok := result.([]interface{})
	assert.True(t, ok, "bulk reference should yield an array")
	assert.Len(t, arr, 2)

	first, _ := arr[0].(map[string]interface{})
	assert.Equal(t, "John Doe", first["customer"], "insertion order preserved")
}

func TestResolveBulkFieldReference(t *testing.T) {
	store := NewStore()
	seedOrders(store)

	result := resolveCrossReferences("{objects.orders.customer}", store)
	assert.Equal(t, []interface{}{"John Doe", "Jane Smith"}, result)
}

func TestResolveBulkFieldMissingPathOmitsObject(t *testing.T) {
	store := NewStore()
	seedOrders(store)

	// Only the first order has a shipping object.
	result := resolveCrossReferences("{objects.orders.shipping.city}", store)
	assert.Equal(t, []interface{}{"Springfield"}, result)
}

func TestResolveSingularReference(t *testing.T) {
	store := NewStore()
	seedOrders(store)

	result := resolveCrossReferences("{objects.orders[o2]}", store)
	obj, ok := result.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "Jane Smith", obj["customer"])
}

func TestResolveSingularFieldReference(t *testing.T) {
	store := NewStore()
	seedOrders(store)

	result := resolveCrossReferences("{objects.orders[o1].items}", store)
	assert.Equal(t, []interface{}{"laptop", "mouse"}, result)
}

func TestResolveAbsentBucketPassesThrough(t *testing.T) {
	store := NewStore()

	result := resolveCrossReferences("{objects.ghosts}", store)
	assert.Equal(t, "{objects.ghosts}", result)
}

func TestResolveUnknownIdPassesThrough(t *testing.T) {
	store := NewStore()
	seedOrders(store)

	result := resolveCrossReferences("{objects.orders[nope].customer}", store)
	assert.Equal(t, "{objects.orders[nope].customer}", result)
}

func TestResolveDottedBucketFallsThrough(t *testing.T) {
	store := NewStore()

	// A bucket literally named "orders.customer" wins first.
	store.AppendObject("orders.customer", models.StoredObject{
		Id:   "x",
		Data: map[string]interface{}{"whole": true},
	})
	result := resolveCrossReferences("{objects.orders.customer}", store)
	arr, ok := result.([]interface{})
	assert.True(t, ok)
	assert.Len(t, arr, 1)

	// Without that bucket, the same placeholder projects field "customer"
	// over bucket "orders".
	store.ClearAll()
	seedOrders(store)
	result = resolveCrossReferences("{objects.orders.customer}", store)
	assert.Equal(t, []interface{}{"John Doe", "Jane Smith"}, result)
}

func TestResolveWalksNestedTemplate(t *testing.T) {
	store := NewStore()
	seedOrders(store)

	template := map[string]interface{}{
		"report": map[string]interface{}{
			"customers": "{objects.orders.customer}",
		},
		"static": 12,
	}

	result := resolveCrossReferences(template, store)
	report := result.(map[string]interface{})["report"].(map[string]interface{})
	assert.Equal(t, []interface{}{"John Doe", "Jane Smith"}, report["customers"])
}

func TestExtractFieldValue(t *testing.T) {
	data := map[string]interface{}{
		"a": map[string]interface{}{
			"b": map[string]interface{}{"c": 3},
		},
	}

	value, ok := extractFieldValue(data, "a.b.c")
	assert.True(t, ok)
	assert.Equal(t, 3, value)

	_, ok = extractFieldValue(data, "a.x.c")
	assert.False(t, ok)

	// Walk fails when an intermediate node is not an object
	_, ok = extractFieldValue(data, "a.b.c.d")
	assert.False(t, ok)
}
