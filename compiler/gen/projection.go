package gen

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/syssam/polygen/compiler/load"
)

// Framework types imported by generated composites.
const (
	PropertyType         = "org.apache.polygene.api.property.Property"
	AssociationType      = "org.apache.polygene.api.association.Association"
	ManyAssociationType  = "org.apache.polygene.api.association.ManyAssociation"
	NamedAssociationType = "org.apache.polygene.api.association.NamedAssociation"
)

// Projection is the rendering input derived from one entity or one
// configuration composite.
type Projection struct {
	// State holds the member declaration fragments in declaration order.
	State []string
	// Imports holds every member type plus the Property base type,
	// deduplicated, in first-seen order.
	Imports []string
	// Kinds holds the association base types used by the entity.
	Kinds []string
	// PropertyLines holds the lines of the flat property file.
	// Set for configuration composites only.
	PropertyLines []string
}

// JavaImports returns the import list of the generated source: imports and
// kinds merged and sorted. Unqualified names and java.lang types are dropped.
func (p *Projection) JavaImports() []string {
	var out []string
	for _, name := range slices.Concat(p.Imports, p.Kinds) {
		i := strings.LastIndex(name, ".")
		if i < 0 || name[:i] == "java.lang" || slices.Contains(out, name) {
			continue
		}
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

func (p *Projection) addImport(name string) {
	if !slices.Contains(p.Imports, name) {
		p.Imports = append(p.Imports, name)
	}
}

func (p *Projection) addKind(name string) {
	if !slices.Contains(p.Kinds, name) {
		p.Kinds = append(p.Kinds, name)
	}
}

// memberKind describes one of the four member collections of an entity.
type memberKind struct {
	Name    string
	Type    string
	members func(*load.Entity) *load.OrderedMap[*load.Member]
}

var memberKinds = [...]memberKind{
	{"Property", PropertyType, func(e *load.Entity) *load.OrderedMap[*load.Member] { return e.Properties }},
	{"Association", AssociationType, func(e *load.Entity) *load.OrderedMap[*load.Member] { return e.Associations }},
	{"ManyAssociation", ManyAssociationType, func(e *load.Entity) *load.OrderedMap[*load.Member] { return e.ManyAssociations }},
	{"NamedAssociation", NamedAssociationType, func(e *load.Entity) *load.OrderedMap[*load.Member] { return e.NamedAssociations }},
}

// ProjectEntity turns an entity definition into member declarations and its
// import set. An entity without properties gets a single String property
// called name so the generated interface is never empty.
func ProjectEntity(module string, e *load.Entity) (*Projection, error) {
	p := &Projection{}
	p.addImport(PropertyType)
	if e.Properties.Len() == 0 {
		p.State = append(p.State, "Property<String> name();")
	}
	for _, kind := range memberKinds {
		members := kind.members(e)
		if members.Len() > 0 && kind.Type != PropertyType {
			p.addKind(kind.Type)
		}
		for key, m := range members.All() {
			if err := checkMember(module, e.Name, key, m); err != nil {
				return nil, err
			}
			p.State = append(p.State, fmt.Sprintf("%s<%s> %s();", kind.Name, TypeNameOnly(m.Type), m.Name))
			p.addImport(m.Type)
		}
	}
	return p, nil
}

func checkMember(module, composite, key string, m *load.Member) error {
	switch {
	case m == nil:
		return NewProjectionError(module, composite, key, "empty member declaration")
	case m.Name == "":
		return NewProjectionError(module, composite, key, "member has no name")
	case m.Type == "":
		return NewProjectionError(module, composite, m.Name, "member has no type")
	}
	return nil
}

// Default property-file values by configuration type.
var configDefaults = map[string]string{
	"String":  "",
	"Boolean": "false",
	"Long":    "0",
	"Integer": "0",
	"Double":  "0.0",
	"Float":   "0.0",
}

// ComplexConfigDefault is the property-file value of a configuration
// property whose type has no textual default.
const ComplexConfigDefault = "\n    # TODO: complex configuration type. "

// ProjectConfiguration turns the configuration of a service into the
// configuration composite declarations and the lines of its property file.
// A service without configuration gets a sample property.
func ProjectConfiguration(module string, s *load.Service) (*Projection, error) {
	p := &Projection{}
	p.addImport(PropertyType)
	if s.Configuration.Len() == 0 {
		p.State = []string{
			"/** TODO: remove sample property",
			" */",
			"Property<String> name();",
		}
		p.PropertyLines = []string{
			"# This is just the sample configuration value. ",
			"# TODO: Remove this config value ",
			"name=sample config value",
		}
		return p, nil
	}
	for key, prop := range s.Configuration.All() {
		switch {
		case prop == nil:
			return nil, NewProjectionError(module, s.Name, key, "empty configuration property")
		case prop.Name == "":
			return nil, NewProjectionError(module, s.Name, key, "configuration property has no name")
		case prop.Type == "":
			return nil, NewProjectionError(module, s.Name, prop.Name, "configuration property has no type")
		}
		p.addImport(prop.Type)
		p.State = append(p.State, "/**")
		for _, line := range prop.Description {
			p.State = append(p.State, " * "+line)
			p.PropertyLines = append(p.PropertyLines, "# "+line)
		}
		p.State = append(p.State, " */", fmt.Sprintf("Property<%s> %s();", TypeNameOnly(prop.Type), prop.Name))
		p.PropertyLines = append(p.PropertyLines, prop.Name+"="+ConfigDefault(prop))
	}
	return p, nil
}

// ConfigDefault returns the property-file value of a configuration property.
// An explicit default wins; otherwise the value is derived from the type,
// which may be written qualified (java.lang.Long) or simple (Long).
func ConfigDefault(prop *load.ConfigProperty) string {
	switch v := prop.Default.(type) {
	case nil:
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
	if v, ok := configDefaults[strings.TrimPrefix(prop.Type, "java.lang.")]; ok {
		return v
	}
	return ComplexConfigDefault
}
