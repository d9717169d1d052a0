package models

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Key is the set of primary key types an entity may use.
type Key interface {
	int64 | uuid.UUID
}

// Entity is implemented by every model exposed through the CRUD API.
type Entity[K Key] interface {
	GetID() K
}

// ParseKey converts a route segment into the entity's key type.
func ParseKey[K Key](raw string) (K, error) {
	var key K

	switch k := any(&key).(type) {
	case *int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return key, fmt.Errorf("invalid integer id %q: %w", raw, err)
		}
		*k = v
	case *uuid.UUID:
		v, err := uuid.Parse(raw)
		if err != nil {
			return key, fmt.Errorf("invalid uuid id %q: %w", raw, err)
		}
		*k = v
	}

	return key, nil
}

// FormatKey renders a key the same way it appears in routes and cache keys.
func FormatKey[K Key](key K) string {
	switch k := any(key).(type) {
	case int64:
		return strconv.FormatInt(k, 10)
	case uuid.UUID:
		return k.String()
	}

	return fmt.Sprint(key)
}

// SerialKey reports whether keys of type K are generated by a database sequence.
func SerialKey[K Key]() bool {
	var key K
	_, ok := any(key).(int64)
	return ok
}

// KeyFormat names the swagger format of a key type.
func KeyFormat[K Key]() (string, string) {
	var key K
	if _, ok := any(key).(int64); ok {
		return "integer", "int64"
	}

	return "string", "uuid"
}
