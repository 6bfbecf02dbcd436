package storage

import (
	"encoding/json"
	"log"
)

// LoadCollection parses a collection snapshot. ok is false when the collection
// is unreadable or absent; a parse failure is returned as err.
func LoadCollection[T any](a *Adapter, name string) (items []T, ok bool, err error) {
	raw, found := a.Get(a.Key(name))
	if !found {
		return nil, false, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("[Storage] corrupt %s collection: %v", name, err)
		return nil, true, err
	}
	return items, true, nil
}

// SaveCollection writes the whole collection back and reports success.
func SaveCollection[T any](a *Adapter, name string, items []T) bool {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		log.Printf("[Storage] encode %s collection: %v", name, err)
		return false
	}
	return a.Set(a.Key(name), string(data))
}
