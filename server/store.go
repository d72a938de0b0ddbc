package server

import (
	"encoding/json"
	"sync"

	"stubnest/models"
)

// Store holds all mutable server state: the object buckets backing
// cross-references, the keyed response cache backing GET auto-retrieval, and
// the key/value map shared across script invocations. Each map has its own
// reader-writer lock; locks are held only around map access, never across a
// script execution.
type Store struct {
	objectsMutex sync.RWMutex
	objects      map[string][]models.StoredObject

	keyedMutex sync.RWMutex
	keyed      map[string]interface{}

	scriptMutex sync.RWMutex
	scriptState map[string]interface{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		objects:     make(map[string][]models.StoredObject),
		keyed:       make(map[string]interface{}),
		scriptState: make(map[string]interface{}),
	}
}

// AppendObject pushes obj onto the ordered list under objectType, creating
// the bucket if absent. Insertion order is preserved.
func (s *Store) AppendObject(objectType string, obj models.StoredObject) {
	s.objectsMutex.Lock()
	defer s.objectsMutex.Unlock()
	s.objects[objectType] = append(s.objects[objectType], obj)
}

// ListObjects returns a snapshot of the bucket under objectType in creation
// order. The second return is false when the bucket does not exist.
func (s *Store) ListObjects(objectType string) ([]models.StoredObject, bool) {
	s.objectsMutex.RLock()
	defer s.objectsMutex.RUnlock()

	list, ok := s.objects[objectType]
	if !ok {
		return nil, false
	}
	snapshot := make([]models.StoredObject, len(list))
	copy(snapshot, list)
	return snapshot, true
}

// FindObject scans the bucket under objectType for the first object whose id
// equals id.
func (s *Store) FindObject(objectType, id string) (models.StoredObject, bool) {
	s.objectsMutex.RLock()
	defer s.objectsMutex.RUnlock()

	for _, obj := range s.objects[objectType] {
		if obj.Id == id {
			return obj, true
		}
	}
	return models.StoredObject{}, false
}

// SnapshotObjects returns a deep copy of every bucket's object data, keyed by
// object type. Scripts receive this copy so concurrent mutation during a
// script run cannot be observed.
func (s *Store) SnapshotObjects() map[string][]interface{} {
	s.objectsMutex.RLock()
	defer s.objectsMutex.RUnlock()

	snapshot := make(map[string][]interface{}, len(s.objects))
	for objectType, list := range s.objects {
		data := make([]interface{}, 0, len(list))
		for _, obj := range list {
			data = append(data, deepCopyValue(obj.Data))
		}
		snapshot[objectType] = data
	}
	return snapshot
}

// PutKeyed stores value under key in the keyed response cache.
func (s *Store) PutKeyed(key string, value interface{}) {
	s.keyedMutex.Lock()
	defer s.keyedMutex.Unlock()
	s.keyed[key] = value
}

// GetKeyed looks up key in the keyed response cache.
func (s *Store) GetKeyed(key string) (interface{}, bool) {
	s.keyedMutex.RLock()
	defer s.keyedMutex.RUnlock()

	value, ok := s.keyed[key]
	return value, ok
}

// ScriptGet reads a value from the shared script state map.
func (s *Store) ScriptGet(key string) (interface{}, bool) {
	s.scriptMutex.RLock()
	defer s.scriptMutex.RUnlock()

	value, ok := s.scriptState[key]
	return value, ok
}

// ScriptSet writes a value into the shared script state map.
func (s *Store) ScriptSet(key string, value interface{}) {
	s.scriptMutex.Lock()
	defer s.scriptMutex.Unlock()
	s.scriptState[key] = value
}

// ClearAll empties the object buckets, the keyed response cache, and the
// script state map.
func (s *Store) ClearAll() {
	s.objectsMutex.Lock()
	s.objects = make(map[string][]models.StoredObject)
	s.objectsMutex.Unlock()

	s.keyedMutex.Lock()
	s.keyed = make(map[string]interface{})
	s.keyedMutex.Unlock()

	s.scriptMutex.Lock()
	s.scriptState = make(map[string]interface{})
	s.scriptMutex.Unlock()
}

// deepCopyValue copies an arbitrary JSON tree. Values built from
// encoding/json or yaml.v3 round-trip cleanly; anything else falls back to a
// marshal/unmarshal cycle.
func deepCopyValue(value interface{}) interface{} {
	switch v := value.(type) {
	case nil, bool, string, float64, int, int64:
		return v
	case map[string]interface{}:
		copied := make(map[string]interface{}, len(v))
		for k, elem := range v {
			copied[k] = deepCopyValue(elem)
		}
		return copied
	case []interface{}:
		copied := make([]interface{}, len(v))
		for i, elem := range v {
			copied[i] = deepCopyValue(elem)
		}
		return copied
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		var out interface{}
		if err := json.Unmarshal(data, &out); err != nil {
			return nil
		}
		return out
	}
}
