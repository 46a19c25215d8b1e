package gen

import (
	"errors"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/polygen/compiler/load"
)

func TestWithModel(t *testing.T) {
	t.Run("copies declared values", func(t *testing.T) {
		modules := load.NewOrderedMap[*load.Module]()
		modules.Set("Orders", &load.Module{Name: "Orders"})
		m := &load.Model{
			Name:        "Shop",
			PackageName: "com.example.shop",
			EntityStore: "MongoDB",
			Features:    []string{"jmx"},
			Modules:     modules,
		}
		c := &Config{}
		require.NoError(t, WithModel(m)(c))

		assert.Equal(t, "Shop", c.Name)
		assert.Equal(t, "com.example.shop", c.PackageName)
		assert.Equal(t, "MongoDB", c.EntityStore)
		assert.Equal(t, []string{"jmx"}, c.Features)
		assert.Same(t, modules, c.Modules)
	})

	t.Run("empty fields keep earlier values", func(t *testing.T) {
		c := &Config{Indexing: "Solr", Features: []string{"security"}}
		require.NoError(t, WithModel(&load.Model{Name: "Shop"})(c))

		assert.Equal(t, "Solr", c.Indexing)
		assert.Equal(t, []string{"security"}, c.Features)
	})

	t.Run("features are copied", func(t *testing.T) {
		m := &load.Model{Features: []string{"jmx"}}
		c := &Config{}
		require.NoError(t, WithModel(m)(c))

		c.Features[0] = "changed"
		assert.Equal(t, "jmx", m.Features[0])
	})

	t.Run("catalog choices take the catalog spelling", func(t *testing.T) {
		m := &load.Model{
			Name:            "Shop",
			PackageName:     "com.example.shop",
			ApplicationType: "command line",
			EntityStore:     "mysql",
			Indexing:        "solr",
			Caching:         "ehcache",
		}
		c, err := NewConfig(WithModel(m))
		require.NoError(t, err)

		assert.Equal(t, load.CommandLine, c.ApplicationType)
		assert.Equal(t, "MySQL", c.EntityStore)
		assert.Equal(t, "sql", c.EntityStoreModule)
		assert.True(t, c.SQLBacked())
		assert.Equal(t, DefaultDBPool, c.DBPool)
		assert.Equal(t, "Solr", c.Indexing)
		assert.Equal(t, "EhCache", c.Caching)
	})

	t.Run("unknown store is kept as written", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithModel(&load.Model{EntityStore: "Oracle"})(c))
		assert.Equal(t, "Oracle", c.EntityStore)
	})

	t.Run("nil model", func(t *testing.T) {
		err := WithModel(nil)(&Config{})
		assert.True(t, IsConfigError(err))
	})
}

func TestCatalogOptions(t *testing.T) {
	tests := []struct {
		name    string
		opt     Option
		get     func(*Config) string
		want    string
		wantErr bool
	}{
		{"application type", WithApplicationType("Command Line"), func(c *Config) string { return c.ApplicationType }, "Command Line", false},
		{"application type case", WithApplicationType("rest api"), func(c *Config) string { return c.ApplicationType }, "Rest API", false},
		{"application type unknown", WithApplicationType("Desktop"), nil, "", true},
		{"entity store", WithEntityStore("postgresql"), func(c *Config) string { return c.EntityStore }, "PostgreSQL", false},
		{"entity store unknown", WithEntityStore("Oracle"), nil, "", true},
		{"pool", WithDBPool("BoneCP"), func(c *Config) string { return c.DBPool }, "BoneCP", false},
		{"pool unknown", WithDBPool("Hikari"), nil, "", true},
		{"indexing", WithIndexing("ElasticSearch"), func(c *Config) string { return c.Indexing }, "ElasticSearch", false},
		{"indexing unknown", WithIndexing("Lucene"), nil, "", true},
		{"caching", WithCaching("ehcache"), func(c *Config) string { return c.Caching }, "EhCache", false},
		{"caching unknown", WithCaching("Redis"), nil, "", true},
		{"metrics", WithMetrics("Codahale"), func(c *Config) string { return c.Metrics }, "Codahale", false},
		{"metrics unknown", WithMetrics("Prometheus"), nil, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := tt.opt(c)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.get(c))
		})
	}
}

func TestWithFeatures(t *testing.T) {
	t.Run("replaces selection", func(t *testing.T) {
		c := &Config{Features: []string{"envisage"}}
		require.NoError(t, WithFeatures("jmx", "mixin scripting")(c))
		assert.Equal(t, []string{"jmx", "mixin scripting"}, c.Features)
	})

	t.Run("no features is an empty selection", func(t *testing.T) {
		c := &Config{Features: []string{"envisage"}}
		require.NoError(t, WithFeatures()(c))
		assert.NotNil(t, c.Features)
		assert.Empty(t, c.Features)
	})

	t.Run("unknown feature", func(t *testing.T) {
		err := WithFeatures("jmx", "telepathy")(&Config{})
		require.Error(t, err)
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "telepathy", cfgErr.Value)
	})
}

func TestSimpleOptions(t *testing.T) {
	t.Run("empty values are rejected", func(t *testing.T) {
		for _, opt := range []Option{WithName(""), WithPackageName(""), WithTarget(""), WithWorkers(0), WithLogger(nil), WithTemplates(nil)} {
			assert.True(t, IsConfigError(opt(&Config{})))
		}
	})

	t.Run("values are set", func(t *testing.T) {
		logger := slog.New(slog.DiscardHandler)
		templates := fstest.MapFS{}
		c := &Config{}
		require.NoError(t, c.Apply(
			WithName("Shop"),
			WithPackageName("com.example.shop"),
			WithTarget("out"),
			WithVersion("3.1.0"),
			WithStrict(true),
			WithWorkers(4),
			WithLogger(logger),
			WithTemplates(templates),
		))

		assert.Equal(t, "Shop", c.Name)
		assert.Equal(t, "com.example.shop", c.PackageName)
		assert.Equal(t, "out", c.Target)
		assert.Equal(t, "3.1.0", c.Version)
		assert.True(t, c.Strict)
		assert.Equal(t, 4, c.Workers)
		assert.Same(t, logger, c.Logger)
		assert.NotNil(t, c.Templates)
	})
}

func TestApply(t *testing.T) {
	t.Run("stops at first error", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(WithName(""), WithTarget("out"))

		require.Error(t, err)
		assert.Empty(t, c.Target)
	})

	t.Run("ApplyAll collects errors", func(t *testing.T) {
		c := &Config{}
		err := c.ApplyAll(WithName(""), WithTarget("out"), WithCaching("Redis"))

		require.Error(t, err)
		assert.Equal(t, "out", c.Target)
		assert.Contains(t, err.Error(), "Name")
		assert.Contains(t, err.Error(), "Caching")
	})
}
