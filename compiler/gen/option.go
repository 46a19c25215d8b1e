package gen

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/syssam/polygen/compiler/load"
)

// Option configures generation.
type Option func(*Config) error

// WithModel copies the choices and modules of a loaded model. Fields the
// model leaves empty are not touched, so answers applied before are kept.
// Choices found in a catalog take its spelling, whatever their case; others
// are taken as written, and unknown stores fall back to their lower-cased
// name as extension identifier.
func WithModel(m *load.Model) Option {
	return func(c *Config) error {
		if m == nil {
			return NewConfigError("Model", nil, "model cannot be nil")
		}
		set := func(dst *string, v string) {
			if v != "" {
				*dst = v
			}
		}
		set(&c.Name, m.Name)
		set(&c.PackageName, m.PackageName)
		choice := func(dst *string, catalog []string, v string) {
			if known, ok := oneOf(catalog, v); ok {
				v = known
			}
			set(dst, v)
		}
		choice(&c.ApplicationType, ApplicationTypes, m.ApplicationType)
		choice(&c.EntityStore, EntityStores, m.EntityStore)
		choice(&c.DBPool, DBPools, m.DBPool)
		choice(&c.Indexing, Indexings, m.Indexing)
		choice(&c.Caching, Cachings, m.Caching)
		choice(&c.Metrics, MetricsProviders, m.Metrics)
		set(&c.Version, m.Version)
		if m.Features != nil {
			c.Features = append([]string(nil), m.Features...)
		}
		if m.Modules != nil {
			c.Modules = m.Modules
		}
		return nil
	}
}

// WithName sets the application name.
func WithName(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return NewConfigError("Name", nil, "application name cannot be empty")
		}
		c.Name = name
		return nil
	}
}

// WithPackageName sets the root Java package.
// For example: "com.acme.shop".
func WithPackageName(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("PackageName", nil, "package name cannot be empty")
		}
		c.PackageName = pkg
		return nil
	}
}

// WithApplicationType sets the application type.
// Supported types: "Command Line", "Rest API".
func WithApplicationType(t string) Option {
	return func(c *Config) error {
		v, ok := oneOf(ApplicationTypes, t)
		if !ok {
			return NewConfigError("ApplicationType", t, "unsupported application type; use Command Line or Rest API")
		}
		c.ApplicationType = v
		return nil
	}
}

// WithEntityStore sets the entity store by catalog name.
func WithEntityStore(store string) Option {
	return func(c *Config) error {
		s, err := NewStorage(store)
		if err != nil {
			return NewConfigError("EntityStore", store, "unknown entity store")
		}
		c.EntityStore = s.Name
		return nil
	}
}

// WithDBPool sets the connection pool. It is dropped during finalization
// when the entity store is not SQL-backed.
func WithDBPool(pool string) Option {
	return catalogOption("DBPool", DBPools, pool, func(c *Config) *string { return &c.DBPool })
}

// WithIndexing sets the indexing extension.
func WithIndexing(indexing string) Option {
	return catalogOption("Indexing", Indexings, indexing, func(c *Config) *string { return &c.Indexing })
}

// WithCaching sets the caching extension.
func WithCaching(caching string) Option {
	return catalogOption("Caching", Cachings, caching, func(c *Config) *string { return &c.Caching })
}

// WithMetrics sets the metrics extension.
func WithMetrics(metrics string) Option {
	return catalogOption("Metrics", MetricsProviders, metrics, func(c *Config) *string { return &c.Metrics })
}

func catalogOption(option string, catalog []string, choice string, field func(*Config) *string) Option {
	return func(c *Config) error {
		v, ok := oneOf(catalog, choice)
		if !ok {
			return NewConfigError(option, choice, "unknown choice")
		}
		*field(c) = v
		return nil
	}
}

// WithFeatures replaces the selected features.
// Every name must be one of FeatureNames.
func WithFeatures(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			if _, ok := LookupFeature(name); !ok {
				return NewConfigError("Features", name, "unknown feature")
			}
		}
		c.Features = append([]string{}, names...)
		return nil
	}
}

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithVersion sets the Polygene version of the generated build.
func WithVersion(v string) Option {
	return func(c *Config) error {
		c.Version = v
		return nil
	}
}

// WithStrict makes template copy failures fatal.
func WithStrict(strict bool) Option {
	return func(c *Config) error {
		c.Strict = strict
		return nil
	}
}

// WithWorkers sets the number of templates rendered concurrently.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Workers", n, "must be at least 1")
		}
		c.Workers = n
		return nil
	}
}

// WithLogger sets the logger used for progress and copy failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithTemplates replaces the embedded template tree.
func WithTemplates(fsys fs.FS) Option {
	return func(c *Config) error {
		if fsys == nil {
			return NewConfigError("Templates", nil, "template filesystem cannot be nil")
		}
		c.Templates = fsys
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
