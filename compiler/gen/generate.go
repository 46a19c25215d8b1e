package gen

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/syssam/polygen/compiler/load"
)

// Layers of a generated application, in assembly order.
const (
	LayerConfig         = "config"
	LayerInfrastructure = "infrastructure"
	LayerDomain         = "domain"
	LayerConnectivity   = "connectivity"
)

// bootstrapModule is a statically registered bootstrap module. Its template
// is read from "<Name>/bootstrap.tmpl".
type bootstrapModule struct {
	Layer string
	Name  string
	Cond  func(*Config) bool
}

func always(*Config) bool { return true }

// bootstrapModules lists the modules every application may assemble, besides
// the entity store, the features and the domain modules.
var bootstrapModules = []bootstrapModule{
	{LayerConfig, "ConfigModule", always},
	{LayerInfrastructure, "IndexingModule", always},
	{LayerInfrastructure, "SerializationModule", always},
	{LayerInfrastructure, "CachingModule", func(c *Config) bool { return c.Caching != "None" }},
	{LayerInfrastructure, "MetricsModule", func(c *Config) bool { return c.Metrics != "None" }},
	{LayerConnectivity, "RestModule", (*Config).IsRestAPI},
}

// applications maps every application type to the writer of its sources.
var applications = map[string]func(*TemplateWriter, *Data){
	load.CommandLine: writeCommandLine,
	load.RestAPI:     writeRestAPI,
}

// Generate writes the project described by c to c.Target.
//
// Sources are queued by the application writer, the build tool writer, the
// bootstrap writer and the domain writer, in that order, and written in one
// Flush. Projection errors abort the run before anything is written; template
// copy failures are logged and skipped, or returned joined when c.Strict is set.
func Generate(ctx context.Context, c *Config) error {
	if c == nil {
		return NewConfigError("Config", nil, "missing configuration")
	}
	app, ok := applications[c.ApplicationType]
	if !ok {
		return NewGenerationError("application", "", fmt.Sprintf("no writer for application type %q", c.ApplicationType), nil)
	}
	root := &Data{Config: c, Layers: Assembly(c)}
	w := NewTemplateWriter(c, root)

	c.Logger.Info("generating application",
		"name", c.Name,
		"type", c.ApplicationType,
		"entitystore", c.EntityStore,
		"target", c.Target,
	)
	app(w, root)
	writeBuildTool(w, root)
	writeBootstrap(w, root)
	if err := writeDomain(w, root); err != nil {
		return err
	}
	if err := w.Flush(ctx); err != nil {
		return NewGenerationError("write", "", "", err)
	}

	m := w.Metrics()
	c.Logger.Info("generated application", "files", m.FilesWritten, "bytes", m.BytesWritten, "failed", m.Failed)
	if failures := w.Failures(); c.Strict && len(failures) > 0 {
		errs := make([]error, len(failures))
		for i, f := range failures {
			errs[i] = f
		}
		return errors.Join(errs...)
	}
	return nil
}

// Assembly returns the layers of the application and the bootstrap modules
// assembled into each, in assembly order. Empty layers are left out.
func Assembly(c *Config) []*Layer {
	layers := []*Layer{
		{Name: LayerConfig},
		{Name: LayerInfrastructure},
		{Name: LayerDomain},
		{Name: LayerConnectivity},
	}
	add := func(layer, module string) {
		for _, l := range layers {
			if l.Name == layer {
				l.Modules = append(l.Modules, module)
			}
		}
	}
	add(LayerInfrastructure, c.EntityStore+"StorageModule")
	for _, m := range bootstrapModules {
		if m.Cond(c) {
			add(m.Layer, m.Name)
		}
	}
	for _, f := range c.EnabledFeatures() {
		if f.Module != "" {
			add(f.Layer, f.Module)
		}
	}
	for _, m := range c.Modules.All() {
		if m != nil && m.Name != "" {
			add(LayerDomain, m.Name+"Module")
		}
	}
	var out []*Layer
	for _, l := range layers {
		if len(l.Modules) == 0 {
			continue
		}
		for _, below := range out {
			l.Uses = append(l.Uses, below.Name)
		}
		out = append(out, l)
	}
	return out
}

func appDir(d *Data) string {
	return path.Join("app/src/main/java", d.JavaPackageDir, "app")
}

func writeCommandLine(w *TemplateWriter, d *Data) {
	w.CopyTemplate("CommandLineApplication/Main.tmpl", path.Join(appDir(d), d.Name+"Main.java"), nil)
}

func writeRestAPI(w *TemplateWriter, d *Data) {
	w.CopyTemplate("RestAPIApplication/Launcher.tmpl", path.Join(appDir(d), d.Name+"Launcher.java"), nil)
	w.CopyTemplate("RestAPIApplication/RestApplication.tmpl",
		path.Join("rest/src/main/java", d.JavaPackageDir, "rest", d.Name+"RestApplication.java"), nil)
	w.CopyToConfig("RestAPIApplication/web.properties.tmpl", "web.properties", nil)
}

func writeBuildTool(w *TemplateWriter, d *Data) {
	w.CopyTemplate("buildtool/settings.gradle.tmpl", "settings.gradle", nil)
	w.CopyTemplate("buildtool/build.gradle.tmpl", "build.gradle", nil)
	for _, project := range []string{"app", "bootstrap", "model"} {
		w.CopyTemplate("buildtool/"+project+".gradle.tmpl", project+"/build.gradle", nil)
	}
	if d.IsRestAPI() {
		w.CopyTemplate("buildtool/rest.gradle.tmpl", "rest/build.gradle", nil)
	}
	w.CopyBinary("buildtool/gradle-wrapper.properties", "gradle/wrapper/gradle-wrapper.properties", 0o644)
	w.CopyBinary("buildtool/gradlew", "gradlew", 0o755)
	w.CopyBinary("buildtool/gradlew.bat", "gradlew.bat", 0o644)
	w.CopyTemplate("README.md.tmpl", "README.md", nil)
}

func writeBootstrap(w *TemplateWriter, d *Data) {
	bootstrap := path.Join("bootstrap/src/main/java", d.JavaPackageDir, "bootstrap")
	w.CopyTemplate("Assembler/ApplicationAssembler.tmpl", path.Join(bootstrap, d.Name+"ApplicationAssembler.java"), nil)
	for _, l := range d.Layers {
		data := d.with(func(d *Data) { d.Layer = l })
		w.CopyTemplate("Assembler/Layer.tmpl", path.Join(bootstrap, l.Name, Title(l.Name)+"Layer.java"), data)
	}
	w.CopyEntityStore(d.EntityStore)
	if d.SQLBacked() {
		w.CopyToConfig("StorageModule/datasource.properties.tmpl", "datasource.properties", nil)
	}
	for _, m := range bootstrapModules {
		w.CopyBootstrap(m.Layer, m.Name, m.Cond(d.Config))
	}
	for _, f := range d.EnabledFeatures() {
		w.CopyBootstrap(f.Layer, f.Module, f.Module != "")
	}
}

// writeDomain projects every entity and service of every module and queues
// the resulting sources. It fails on the first member that cannot be projected.
func writeDomain(w *TemplateWriter, d *Data) error {
	for name, m := range d.Modules.All() {
		if m == nil || m.Name == "" {
			return NewProjectionError(name, "", "", "module has no name")
		}
		md := d.with(func(d *Data) { d.Module = m })
		w.CopyTemplate("DomainModule/bootstrap.tmpl", w.bootstrapPath(LayerDomain, m.Name+"Module"), md)

		dir := path.Join("model/src/main/java", d.JavaPackageDir, "model", strings.ToLower(m.Name))
		for i, e := range m.Entities {
			if e == nil || e.Name == "" {
				return NewProjectionError(m.Name, fmt.Sprintf("entities[%d]", i), "", "entity has no name")
			}
			clazz, err := ProjectEntity(m.Name, e)
			if err != nil {
				return err
			}
			data := md.with(func(d *Data) { d.Entity, d.Clazz = e, clazz })
			w.CopyTemplate("DomainModule/entity.tmpl", path.Join(dir, e.Name+".java"), data)
		}
		for i, s := range m.Services {
			if s == nil || s.Name == "" {
				return NewProjectionError(m.Name, fmt.Sprintf("services[%d]", i), "", "service has no name")
			}
			clazz, err := ProjectConfiguration(m.Name, s)
			if err != nil {
				return err
			}
			data := md.with(func(d *Data) { d.Service, d.Clazz = s, clazz })
			w.CopyTemplate("DomainModule/service.tmpl", path.Join(dir, s.Name+".java"), data)
			w.CopyTemplate("DomainModule/configuration.tmpl", path.Join(dir, ConfigurationClassName(s.Name)+".java"), data)
			w.CopyToConfig("DomainModule/configuration.properties.tmpl", s.Name+".properties", data)
		}
	}
	return nil
}
