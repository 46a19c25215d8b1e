package gen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/syssam/polygen/compiler/load"
)

// Storage describes an entity store choice and the extension that serves it.
type Storage struct {
	Name   string // entity store as offered to the user.
	Module string // extension identifier, e.g. "sql" or "mongodb".
	SQL    bool   // backed by a JDBC connection pool.
}

// NewStorage returns the storage of the named entity store. The lookup is
// case-insensitive and fails for stores outside the EntityStores catalog.
func NewStorage(name string) (*Storage, error) {
	for _, s := range EntityStores {
		if strings.EqualFold(s, name) {
			return &Storage{Name: s, Module: EntityStoreModule(s), SQL: load.IsSQLStore(s)}, nil
		}
	}
	return nil, fmt.Errorf("polygen: invalid entity store %q", name)
}

// EntityStoreModule returns the extension identifier of an entity store.
// The SQL dialect stores share the "sql" extension; every other store maps
// to its lower-cased name.
func EntityStoreModule(store string) string {
	for _, s := range SQLEntityStores {
		if strings.EqualFold(s, store) {
			return "sql"
		}
	}
	return strings.ToLower(store)
}

// String implements the fmt.Stringer interface for template usage.
func (s *Storage) String() string { return s.Name }

// oneOf returns the catalog spelling of choice, matched case-insensitively.
func oneOf(catalog []string, choice string) (string, bool) {
	i := slices.IndexFunc(catalog, func(s string) bool { return strings.EqualFold(s, choice) })
	if i < 0 {
		return "", false
	}
	return catalog[i], true
}
