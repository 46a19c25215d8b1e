package gen

import (
	"strings"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/polygen/compiler/load"
)

// FirstUpper upper-cases the first character of text.
func FirstUpper(text string) string {
	return load.FirstUpper(text)
}

// TypeNameOnly returns the simple name of a possibly-qualified type name,
// the text after the last dot.
func TypeNameOnly(text string) string {
	if i := strings.LastIndexByte(text, '.'); i >= 0 {
		return text[i+1:]
	}
	return text
}

// ConfigurationClassName derives the configuration composite name of a
// service: a trailing "Service" is dropped and "Configuration" appended.
func ConfigurationClassName(service string) string {
	return strings.TrimSuffix(service, "Service") + "Configuration"
}

// JavaPackageDir converts a Java package name to its source directory.
func JavaPackageDir(pkg string) string {
	return strings.ReplaceAll(pkg, ".", "/")
}

// Title returns s in title case. A new caser is created per call since
// casers keep state and templates render concurrently.
func Title(s string) string {
	return cases.Title(language.English).String(s)
}

// Plural returns the plural form of a word, used for resource paths.
func Plural(s string) string {
	return inflect.Pluralize(s)
}

// Dasherize converts camel-cased names to dashed lower case.
func Dasherize(s string) string {
	return inflect.Dasherize(s)
}

// ResourcePath returns the REST path under which an entity is exposed,
// for example "OrderLine" becomes "order-lines".
func ResourcePath(entity string) string {
	return Dasherize(Plural(entity))
}
