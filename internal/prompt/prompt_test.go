package prompt

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/polygen/compiler/gen"
	"github.com/syssam/polygen/compiler/load"
)

func model(t *testing.T, doc string) *load.Model {
	t.Helper()
	m, err := load.Unmarshal([]byte(doc))
	require.NoError(t, err)
	m.Defaults("shop")
	return m
}

func TestAskDefaults(t *testing.T) {
	var out bytes.Buffer
	m := model(t, `{"features":["jmx"]}`)
	a, err := New(strings.NewReader(""), &out).Ask(m)
	require.NoError(t, err)

	assert.Equal(t, &Answers{
		Name:            "Shop",
		PackageName:     load.DefaultPackagePrefix + "shop",
		ApplicationType: load.RestAPI,
		EntityStore:     gen.DefaultEntityStore,
		Indexing:        gen.DefaultIndexing,
		Caching:         gen.DefaultCaching,
		Metrics:         gen.DefaultMetrics,
		Features:        []string{"jmx"},
	}, a)
	assert.Contains(t, out.String(), "Name of your application (Shop): ")
	assert.NotContains(t, out.String(), "Connection pool")
	assert.Contains(t, out.String(), "[x] jmx")
}

func TestAskAnswers(t *testing.T) {
	input := strings.Join([]string{
		"Store",
		"org.store",
		"1",
		"mysql",
		"bonecp",
		"",
		"3",
		"Codahale",
		"security, 2, jmx",
	}, "\n") + "\n"
	var out bytes.Buffer
	a, err := New(strings.NewReader(input), &out).Ask(model(t, `{}`))
	require.NoError(t, err)

	assert.Equal(t, "Store", a.Name)
	assert.Equal(t, "org.store", a.PackageName)
	assert.Equal(t, load.CommandLine, a.ApplicationType)
	assert.Equal(t, "MySQL", a.EntityStore)
	assert.Equal(t, "BoneCP", a.DBPool)
	assert.Equal(t, gen.DefaultIndexing, a.Indexing)
	assert.Equal(t, "EhCache", a.Caching)
	assert.Equal(t, "Codahale", a.Metrics)
	assert.Equal(t, []string{"security", "jmx"}, a.Features)
	assert.Contains(t, out.String(), "Connection pool")
}

func TestChoose(t *testing.T) {
	choices := []string{"None", "Memcache", "EhCache"}
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"index", "2\n", "Memcache"},
		{"name ignores case", "EHCACHE\n", "EhCache"},
		{"empty takes default", "\n", "None"},
		{"invalid is asked again", "7\nfoo\n3\n", "EhCache"},
		{"invalid at end of input takes default", "foo", "None"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := New(strings.NewReader(tt.input), &out).Choose("Caching system", choices, "None")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid answers are reported", func(t *testing.T) {
		var out bytes.Buffer
		_, err := New(strings.NewReader("0\n1\n"), &out).Choose("Caching system", choices, "None")
		require.NoError(t, err)
		assert.Contains(t, out.String(), `"0" is not a valid choice`)
	})
}

func TestInput(t *testing.T) {
	t.Run("repeated until answered", func(t *testing.T) {
		var out bytes.Buffer
		got, err := New(strings.NewReader("\n  \nShop\n"), &out).Input("Name of your application", "")
		require.NoError(t, err)
		assert.Equal(t, "Shop", got)
		assert.Equal(t, 3, strings.Count(out.String(), "Name of your application: "))
	})

	t.Run("no answer and no default", func(t *testing.T) {
		_, err := New(strings.NewReader(""), io.Discard).Input("Name of your application", "")
		assert.True(t, errors.Is(err, ErrNoAnswer))
	})
}

func TestFeatures(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   []string
		want  []string
	}{
		{"empty keeps default", "\n", []string{"jmx"}, []string{"jmx"}},
		{"none clears", "none\n", []string{"jmx"}, []string{}},
		{"indexes and names", "1,Security\n", nil, []string{"envisage", "security"}},
		{"duplicates collapse", "jmx,jmx\n", nil, []string{"jmx"}},
		{"unknown is asked again", "ldap\njmx\n", nil, []string{"jmx"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(strings.NewReader(tt.input), io.Discard).Features(tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnswersOptions(t *testing.T) {
	a := &Answers{
		Name:            "Store",
		PackageName:     "org.store",
		ApplicationType: load.CommandLine,
		EntityStore:     "PostgreSQL",
		DBPool:          "BoneCP",
		Indexing:        "Solr",
		Caching:         "None",
		Metrics:         "None",
		Features:        []string{"jmx"},
	}
	m := model(t, `{"name":"Shop","entitystore":"Memory","features":["security"]}`)
	c, err := gen.NewConfig(append([]gen.Option{gen.WithModel(m)}, a.Options()...)...)
	require.NoError(t, err)

	assert.Equal(t, "Store", c.Name)
	assert.Equal(t, "PostgreSQL", c.EntityStore)
	assert.Equal(t, "sql", c.EntityStoreModule)
	assert.Equal(t, "BoneCP", c.DBPool)
	assert.Equal(t, "Solr", c.Indexing)
	assert.Equal(t, []string{"jmx"}, c.Features)
	assert.Equal(t, "org/store", c.JavaPackageDir)
}
