package load

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultImportPath is read when no model path is given.
	DefaultImportPath = "./model.json"
	// DefaultExportPath is written when no export path is given.
	DefaultExportPath = "exported-model.json"
	// DefaultPackagePrefix prefixes the application name to form the default Java package.
	DefaultPackagePrefix = "com.acme."
	// DefaultDBPool is the connection pool used by SQL-backed entity stores.
	DefaultDBPool = "DBCP"
)

// ReadFile decodes the model document at path. Files ending in .yaml or .yml
// are decoded as YAML, everything else as JSON. No defaults are applied.
func ReadFile(path string) (*Model, error) {
	if path == "" {
		path = DefaultImportPath
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var m *Model
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		m, err = UnmarshalYAML(buf)
	default:
		m, err = Unmarshal(buf)
	}
	if err != nil {
		return nil, &ParseError{Path: path, Cause: err}
	}
	return m, nil
}

// Import reads the model document at path and applies the loader defaults
// for the given application name.
func Import(path, appname string) (*Model, error) {
	m, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	m.Defaults(appname)
	return m, nil
}

// Unmarshal decodes a JSON model document. Numbers in free-form values,
// like configuration defaults, are kept as json.Number so they are rendered
// and exported as written.
func Unmarshal(buf []byte) (*Model, error) {
	m := &Model{}
	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.UseNumber()
	if err := dec.Decode(m); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after model document")
	}
	return m, nil
}

// UnmarshalYAML decodes a YAML model document.
func UnmarshalYAML(buf []byte) (*Model, error) {
	m := &Model{}
	if err := yaml.Unmarshal(buf, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Defaults fills every top-level field the document left unset.
// The application type is always reset to RestAPI; interactive answers may
// change it afterwards.
func (m *Model) Defaults(appname string) {
	if m.Name == "" {
		m.Name = FirstUpper(appname)
	}
	if m.PackageName == "" {
		m.PackageName = DefaultPackagePrefix + appname
	}
	m.ApplicationType = RestAPI
	if m.Features == nil {
		m.Features = []string{}
	}
	m.Features = dedup(m.Features)
	if m.Modules == nil {
		m.Modules = NewOrderedMap[*Module]()
	}
	if m.DBPool == "" && IsSQLStore(m.EntityStore) {
		m.DBPool = DefaultDBPool
	}
}

// Marshal encodes the model the way it is exported: 4-space indentation,
// trailing newline and no scratch state.
func Marshal(m *Model) ([]byte, error) {
	out := *m
	out.Current = nil
	buf, err := json.MarshalIndent(&out, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(buf, '\n'), nil
}

// Export writes the model to path. An empty path writes DefaultExportPath,
// a path without extension gets ".json" appended.
func Export(path string, m *Model) error {
	switch {
	case path == "":
		path = DefaultExportPath
	case filepath.Ext(path) == "":
		path += ".json"
	}
	buf, err := Marshal(m)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}

// IsSQLStore reports whether the entity store is backed by SQL.
// It matches any store whose name mentions SQL, like the pool question does.
func IsSQLStore(store string) bool {
	return strings.Contains(store, "SQL")
}

// AppName derives an application name from a directory or project name by
// dropping every character that cannot appear in a Java identifier.
func AppName(dir string) string {
	base := filepath.Base(filepath.Clean(dir))
	var b strings.Builder
	for _, r := range base {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "app"
	}
	return b.String()
}

// FirstUpper upper-cases the first character of text.
func FirstUpper(text string) string {
	r, size := utf8.DecodeRuneInString(text)
	if size == 0 {
		return text
	}
	return string(unicode.ToUpper(r)) + text[size:]
}

func dedup(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
