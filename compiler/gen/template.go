package gen

import (
	"embed"
	"io/fs"
	"strings"
	"text/template"

	"github.com/syssam/polygen/compiler/load"
)

//go:embed all:template
var templateDir embed.FS

// Templates returns the embedded template tree. Paths are relative to its
// root, e.g. "DomainModule/entity.tmpl".
func Templates() fs.FS {
	sub, err := fs.Sub(templateDir, "template")
	if err != nil {
		panic(err)
	}
	return sub
}

// Funcs returns the helpers available to every template.
func Funcs(c *Config) template.FuncMap {
	return template.FuncMap{
		"hasFeature":             c.HasFeature,
		"firstUpper":             FirstUpper,
		"typeNameOnly":           TypeNameOnly,
		"configurationClassName": ConfigurationClassName,
		"lower":                  strings.ToLower,
		"upper":                  strings.ToUpper,
		"title":                  Title,
		"plural":                 Plural,
		"dasherize":              Dasherize,
		"resourcePath":           ResourcePath,
		"join":                   strings.Join,
	}
}

// Data is passed to every template. The finalized configuration is embedded,
// so templates refer to choices directly, e.g. {{ .PackageName }}.
type Data struct {
	*Config

	// Layers of the application, in assembly order.
	Layers []*Layer

	// Set while rendering a layer assembler.
	Layer *Layer

	// Set while rendering domain sources.
	Module  *load.Module
	Entity  *load.Entity
	Service *load.Service
	Clazz   *Projection
}

// Layer is one layer of the generated application and the bootstrap
// modules assembled into it.
type Layer struct {
	Name    string
	Modules []string
	Uses    []string // names of the layers below
}

// EntityRef is an entity together with the module declaring it.
type EntityRef struct {
	Module *load.Module
	Entity *load.Entity
}

// Entities returns every entity of the model in declaration order.
func (d *Data) Entities() []EntityRef {
	var refs []EntityRef
	for _, m := range d.Modules.All() {
		for _, e := range m.Entities {
			refs = append(refs, EntityRef{Module: m, Entity: e})
		}
	}
	return refs
}

// with returns a copy of d for rendering a nested element.
func (d *Data) with(f func(*Data)) *Data {
	cp := *d
	f(&cp)
	return &cp
}
