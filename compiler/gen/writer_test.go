package gen

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWriter(t *testing.T, fsys fstest.MapFS, opts ...Option) (*TemplateWriter, string) {
	t.Helper()
	dir := t.TempDir()
	opts = append([]Option{
		WithName("Shop"),
		WithPackageName("com.acme.shop"),
		WithTarget(dir),
		WithTemplates(fsys),
		WithFeatures("jmx"),
	}, opts...)
	c := MustNewConfig(opts...)
	return NewTemplateWriter(c, &Data{Config: c}), dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(buf)
}

func TestTemplateWriterCopyTemplate(t *testing.T) {
	fsys := fstest.MapFS{
		"hello.tmpl":   {Data: []byte(`{{ .Name }} in {{ .JavaPackageDir }}{{ if hasFeature "jmx" }} with jmx{{ end }}`)},
		"helpers.tmpl": {Data: []byte(`{{ typeNameOnly "java.lang.String" }} {{ configurationClassName "MailService" }} {{ resourcePath "OrderLine" }} {{ firstUpper "x" }}`)},
	}
	w, dir := newTestWriter(t, fsys)
	w.CopyTemplate("hello.tmpl", "out/hello.txt", nil)
	w.CopyTemplate("helpers.tmpl", "helpers.txt", nil)
	require.NoError(t, w.Flush(context.Background()))

	assert.Equal(t, "Shop in com/acme/shop with jmx", readFile(t, filepath.Join(dir, "out", "hello.txt")))
	assert.Equal(t, "String MailConfiguration order-lines X", readFile(t, filepath.Join(dir, "helpers.txt")))
	assert.Empty(t, w.Failures())
	assert.Equal(t, 2, w.Metrics().FilesWritten)
}

func TestTemplateWriterData(t *testing.T) {
	fsys := fstest.MapFS{"layer.tmpl": {Data: []byte(`{{ .Layer.Name }}:{{ join .Layer.Modules "," }}`)}}
	w, dir := newTestWriter(t, fsys)
	w.CopyTemplate("layer.tmpl", "layer.txt", &Data{Config: w.root.Config, Layer: &Layer{Name: "domain", Modules: []string{"A", "B"}}})
	require.NoError(t, w.Flush(context.Background()))

	assert.Equal(t, "domain:A,B", readFile(t, filepath.Join(dir, "layer.txt")))
}

func TestTemplateWriterFailures(t *testing.T) {
	var logs bytes.Buffer
	fsys := fstest.MapFS{
		"ok.tmpl":     {Data: []byte("ok")},
		"broken.tmpl": {Data: []byte("{{ .Name ")},
		"field.tmpl":  {Data: []byte("{{ .NoSuchField }}")},
	}
	w, dir := newTestWriter(t, fsys, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	w.CopyTemplate("missing.tmpl", "missing.txt", nil)
	w.CopyTemplate("broken.tmpl", "broken.txt", nil)
	w.CopyTemplate("field.tmpl", "field.txt", nil)
	w.CopyTemplate("ok.tmpl", "ok.txt", nil)
	require.NoError(t, w.Flush(context.Background()))

	failures := w.Failures()
	require.Len(t, failures, 3)
	assert.Equal(t, "missing.tmpl", failures[0].Template)
	assert.Equal(t, "broken.tmpl", failures[1].Template)
	assert.Equal(t, "field.tmpl", failures[2].Template)
	assert.True(t, errors.Is(failures[0], ErrTemplateCopy))
	assert.True(t, errors.Is(failures[0], os.ErrNotExist))

	assert.Equal(t, "ok", readFile(t, filepath.Join(dir, "ok.txt")))
	assert.NoFileExists(t, filepath.Join(dir, "missing.txt"))
	assert.NoFileExists(t, filepath.Join(dir, "broken.txt"))
	assert.Contains(t, logs.String(), "unable to copy template")
	assert.Contains(t, logs.String(), "template=missing.tmpl")
	assert.Equal(t, 3, w.Metrics().Failed)
}

func TestTemplateWriterCopyBinary(t *testing.T) {
	fsys := fstest.MapFS{"gradlew": {Data: []byte("#!/bin/sh\necho {{ .Name }}\n")}}
	w, dir := newTestWriter(t, fsys)
	w.CopyBinary("gradlew", "gradlew", 0o755)
	require.NoError(t, w.Flush(context.Background()))

	assert.Equal(t, "#!/bin/sh\necho {{ .Name }}\n", readFile(t, filepath.Join(dir, "gradlew")))
	info, err := os.Stat(filepath.Join(dir, "gradlew"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o100)
}

func TestTemplateWriterCopyToConfig(t *testing.T) {
	w, _ := newTestWriter(t, fstest.MapFS{})
	w.CopyToConfig("x.tmpl", "MailService.properties", nil)

	assert.Equal(t, []string{
		"app/src/dist/config/development/MailService.properties",
		"app/src/dist/config/qa/MailService.properties",
		"app/src/dist/config/staging/MailService.properties",
		"app/src/dist/config/production/MailService.properties",
		"app/src/test/resources/MailService.properties",
	}, w.Pending())
}

func TestTemplateWriterBootstrap(t *testing.T) {
	t.Run("condition gates the module", func(t *testing.T) {
		w, _ := newTestWriter(t, fstest.MapFS{})
		w.CopyBootstrap(LayerInfrastructure, "CachingModule", false)
		assert.Empty(t, w.Pending())

		w.CopyBootstrap(LayerInfrastructure, "JmxModule", true)
		assert.Equal(t, []string{"bootstrap/src/main/java/com/acme/shop/bootstrap/infrastructure/JmxModule.java"}, w.Pending())
	})

	t.Run("entity store module", func(t *testing.T) {
		fsys := fstest.MapFS{"StorageModule/bootstrap.tmpl": {Data: []byte("{{ .EntityStore }}/{{ .EntityStoreModule }}")}}
		w, dir := newTestWriter(t, fsys, WithEntityStore("MySQL"))
		w.CopyEntityStore("MySQL")
		require.NoError(t, w.Flush(context.Background()))

		got := readFile(t, filepath.Join(dir, "bootstrap/src/main/java/com/acme/shop/bootstrap/infrastructure/MySQLStorageModule.java"))
		assert.Equal(t, "MySQL/sql", got)
	})
}

func TestTemplateWriterOrder(t *testing.T) {
	fsys := fstest.MapFS{}
	var names []string
	for i := range 20 {
		name := string(rune('a' + i))
		names = append(names, name)
		fsys["t/"+name+".tmpl"] = &fstest.MapFile{Data: []byte(name + "{{ .Name }}")}
	}
	w, dir := newTestWriter(t, fsys, WithWorkers(8))
	for _, name := range names {
		w.CopyTemplate("t/"+name+".tmpl", "same.txt", nil)
	}
	require.NoError(t, w.Flush(context.Background()))

	assert.Equal(t, "tShop", readFile(t, filepath.Join(dir, "same.txt")), "last queued copy wins")
	assert.Equal(t, 20, w.Metrics().FilesWritten)
	assert.Empty(t, w.Pending())
}

func TestTemplateWriterCanceled(t *testing.T) {
	w, dir := newTestWriter(t, fstest.MapFS{"a.tmpl": {Data: []byte("a")}})
	w.CopyTemplate("a.tmpl", "a.txt", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := w.Flush(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(dir, "a.txt"))
}
