// gen is a codegen cmd for generating the choice catalogs from catalog.yaml.
package main

import (
	"log"
	"os"
	"slices"

	"github.com/dave/jennifer/jen"
	"gopkg.in/yaml.v3"
)

type catalog struct {
	Name    string   `yaml:"name"`
	Doc     string   `yaml:"doc"`
	Const   string   `yaml:"const"`
	Default string   `yaml:"default"`
	Choices []string `yaml:"choices"`
}

func main() {
	buf, err := os.ReadFile("catalog.yaml")
	if err != nil {
		log.Fatal("reading catalog file:", err)
	}
	var catalogs []catalog
	if err := yaml.Unmarshal(buf, &catalogs); err != nil {
		log.Fatal("decoding catalog file:", err)
	}
	f := jen.NewFile("gen")
	f.HeaderComment("Code generated by internal/gen.go. DO NOT EDIT.")
	for _, c := range catalogs {
		if c.Const != "" && !slices.Contains(c.Choices, c.Default) {
			log.Fatalf("catalog %s: default %q is not a choice", c.Name, c.Default)
		}
		f.Comment(c.Doc)
		f.Var().Id(c.Name).Op("=").Index().String().ValuesFunc(func(g *jen.Group) {
			for _, choice := range c.Choices {
				g.Lit(choice)
			}
		})
		f.Line()
		if c.Const != "" {
			f.Commentf("%s is the %s choice used when none is made.", c.Const, c.Name)
			f.Const().Id(c.Const).Op("=").Lit(c.Default)
			f.Line()
		}
	}
	if err := f.Save("catalog_gen.go"); err != nil {
		log.Fatal("writing go file:", err)
	}
}
