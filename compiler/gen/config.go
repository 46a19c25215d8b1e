package gen

import (
	"io/fs"
	"log/slog"
	"slices"

	"github.com/syssam/polygen/compiler/load"
)

// DefaultVersion is the Polygene release the generated build depends on.
const DefaultVersion = "3.0.0"

// Config is the finalized generation configuration. It is built once by
// NewConfig from the loaded model and the user's answers, and is not
// modified afterwards.
type Config struct {
	// Application choices, as stored in the model.
	Name            string
	PackageName     string
	ApplicationType string
	EntityStore     string
	DBPool          string
	Indexing        string
	Caching         string
	Metrics         string
	Features        []string
	Modules         *load.OrderedMap[*load.Module]

	// Derived during finalization.
	EntityStoreModule string
	JavaPackageDir    string
	Version           string

	// Target is the directory the project is written to.
	Target string
	// Strict makes template copy failures fatal.
	Strict bool
	// Workers bounds concurrent template rendering.
	Workers int
	// Logger receives progress and copy failures.
	Logger *slog.Logger
	// Templates overrides the embedded template tree.
	Templates fs.FS
}

// NewConfig creates a new Config with the given options and finalizes it.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	if err := c.finalize(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// finalize fills the choices still missing with their defaults and
// computes the derived fields. It is the only normalization pass.
func (c *Config) finalize() error {
	if c.Name == "" {
		return NewConfigError("Name", nil, "application name cannot be empty")
	}
	if c.PackageName == "" {
		return NewConfigError("PackageName", nil, "package name cannot be empty")
	}
	if c.ApplicationType == "" {
		c.ApplicationType = DefaultApplicationType
	}
	appType, ok := oneOf(ApplicationTypes, c.ApplicationType)
	if !ok {
		return NewConfigError("ApplicationType", c.ApplicationType, "unknown application type")
	}
	c.ApplicationType = appType
	c.EntityStore = orDefault(c.EntityStore, DefaultEntityStore)
	c.Indexing = orDefault(c.Indexing, DefaultIndexing)
	c.Caching = orDefault(c.Caching, DefaultCaching)
	c.Metrics = orDefault(c.Metrics, DefaultMetrics)
	c.EntityStoreModule = EntityStoreModule(c.EntityStore)
	switch {
	case !c.SQLBacked():
		c.DBPool = ""
	case c.DBPool == "":
		c.DBPool = DefaultDBPool
	}
	c.JavaPackageDir = JavaPackageDir(c.PackageName)
	c.Version = orDefault(c.Version, DefaultVersion)
	c.Features = dedup(c.Features)
	if c.Modules == nil {
		c.Modules = load.NewOrderedMap[*load.Module]()
	}
	c.Target = orDefault(c.Target, ".")
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return nil
}

// HasFeature reports whether the named feature was selected.
func (c *Config) HasFeature(name string) bool {
	return slices.Contains(c.Features, name)
}

// SQLBacked reports whether the entity store needs a connection pool.
func (c *Config) SQLBacked() bool {
	return load.IsSQLStore(c.EntityStore)
}

// IsRestAPI reports whether a Rest API application is generated.
func (c *Config) IsRestAPI() bool {
	return c.ApplicationType == load.RestAPI
}

// EnabledFeatures returns the selected features known to the generator,
// in catalog order.
func (c *Config) EnabledFeatures() []Feature {
	var enabled []Feature
	for _, f := range AllFeatures {
		if c.HasFeature(f.Name) {
			enabled = append(enabled, f)
		}
	}
	return enabled
}

// Model returns a snapshot of the finalized configuration as a model
// document, ready to be exported.
func (c *Config) Model() *load.Model {
	return &load.Model{
		Name:              c.Name,
		PackageName:       c.PackageName,
		ApplicationType:   c.ApplicationType,
		Features:          slices.Clone(c.Features),
		EntityStore:       c.EntityStore,
		Indexing:          c.Indexing,
		Caching:           c.Caching,
		Metrics:           c.Metrics,
		DBPool:            c.DBPool,
		Modules:           c.Modules,
		EntityStoreModule: c.EntityStoreModule,
		JavaPackageDir:    c.JavaPackageDir,
		Version:           c.Version,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
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
