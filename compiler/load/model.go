package load

import "slices"

// Application types understood by the loader.
const (
	CommandLine = "Command Line"
	RestAPI     = "Rest API"
)

// Model is the declarative description of the application being scaffolded.
// It is decoded from the model document and, once finalized, exported back
// into the same shape.
type Model struct {
	Name            string               `json:"name,omitempty" yaml:"name"`
	PackageName     string               `json:"packageName,omitempty" yaml:"packageName"`
	ApplicationType string               `json:"applicationtype,omitempty" yaml:"applicationtype"`
	Features        []string             `json:"features" yaml:"features"`
	EntityStore     string               `json:"entitystore,omitempty" yaml:"entitystore"`
	Indexing        string               `json:"indexing,omitempty" yaml:"indexing"`
	Caching         string               `json:"caching,omitempty" yaml:"caching"`
	Metrics         string               `json:"metrics,omitempty" yaml:"metrics"`
	DBPool          string               `json:"dbpool,omitempty" yaml:"dbpool"`
	Modules         *OrderedMap[*Module] `json:"modules" yaml:"modules"`

	// Set on finalized models only.
	EntityStoreModule string `json:"entitystoremodule,omitempty" yaml:"entitystoremodule"`
	JavaPackageDir    string `json:"javaPackageDir,omitempty" yaml:"javaPackageDir"`
	Version           string `json:"version,omitempty" yaml:"version"`

	// Current is per-run scratch state. It is accepted on input so documents
	// written by older tools still load, and is never exported.
	Current any `json:"current,omitempty" yaml:"current"`
}

// Module groups the entities and services of one domain module.
type Module struct {
	Name     string     `json:"name,omitempty" yaml:"name"`
	Entities []*Entity  `json:"entities,omitempty" yaml:"entities"`
	Services []*Service `json:"services,omitempty" yaml:"services"`
}

// Entity is a domain object rendered as a generated interface.
type Entity struct {
	Name              string               `json:"name" yaml:"name"`
	Properties        *OrderedMap[*Member] `json:"properties,omitempty" yaml:"properties"`
	Associations      *OrderedMap[*Member] `json:"associations,omitempty" yaml:"associations"`
	ManyAssociations  *OrderedMap[*Member] `json:"manyassociations,omitempty" yaml:"manyassociations"`
	NamedAssociations *OrderedMap[*Member] `json:"namedassociations,omitempty" yaml:"namedassociations"`
}

// Member describes a property or association of an entity.
// Type holds the fully-qualified type name.
type Member struct {
	Name string `json:"name,omitempty" yaml:"name"`
	Type string `json:"type,omitempty" yaml:"type"`
}

// Service is a service composite together with its configuration composite.
type Service struct {
	Name          string                       `json:"name" yaml:"name"`
	Configuration *OrderedMap[*ConfigProperty] `json:"configuration,omitempty" yaml:"configuration"`
}

// ConfigProperty is one runtime-tunable setting of a configuration composite.
// Default is any scalar; when nil the default is derived from Type.
type ConfigProperty struct {
	Name        string   `json:"name,omitempty" yaml:"name"`
	Type        string   `json:"type,omitempty" yaml:"type"`
	Default     any      `json:"default,omitempty" yaml:"default"`
	Description []string `json:"description,omitempty" yaml:"description"`
}

func (m *Module) mapKey() string {
	if m == nil {
		return ""
	}
	return m.Name
}

func (m *Module) setMapKey(k string) {
	if m != nil {
		m.Name = k
	}
}

func (m *Member) mapKey() string {
	if m == nil {
		return ""
	}
	return m.Name
}

func (m *Member) setMapKey(k string) {
	if m != nil {
		m.Name = k
	}
}

func (p *ConfigProperty) mapKey() string {
	if p == nil {
		return ""
	}
	return p.Name
}

func (p *ConfigProperty) setMapKey(k string) {
	if p != nil {
		p.Name = k
	}
}

// HasFeature reports whether the named feature was selected.
func (m *Model) HasFeature(name string) bool {
	return slices.Contains(m.Features, name)
}
