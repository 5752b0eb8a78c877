package room

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yml
var catalogYAML []byte

type catalogFile struct {
	Rooms []Room `yaml:"rooms"`
}

// DefaultCatalog returns a fresh, all-vacant copy of the built-in rooms.
func DefaultCatalog() ([]*Room, error) {
	return ParseCatalog(catalogYAML)
}

func ParseCatalog(data []byte) ([]*Room, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse room catalog: %w", err)
	}
	seen := make(map[string]struct{}, len(f.Rooms))
	out := make([]*Room, 0, len(f.Rooms))
	for i := range f.Rooms {
		r := f.Rooms[i]
		if r.ID == "" {
			return nil, fmt.Errorf("room catalog entry %d has no id", i)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("room catalog has duplicate id %q", r.ID)
		}
		seen[r.ID] = struct{}{}
		r.vacate()
		out = append(out, &r)
	}
	return out, nil
}
