package gen

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sync"
	"text/template"

	"golang.org/x/sync/errgroup"
)

// configDirs are the directories every configuration file is copied to.
var configDirs = []string{
	"app/src/dist/config/development",
	"app/src/dist/config/qa",
	"app/src/dist/config/staging",
	"app/src/dist/config/production",
	"app/src/test/resources",
}

// TemplateWriter queues template copies and writes them to the target
// directory on Flush. Copy failures never abort the run: they are logged,
// recorded and the file is skipped.
type TemplateWriter struct {
	fsys    fs.FS
	funcs   template.FuncMap
	root    *Data
	outDir  string
	workers int
	logger  *slog.Logger

	tasks []*fileTask

	mu       sync.Mutex
	failures []*TemplateCopyError
	metrics  WriterMetrics
}

// WriterMetrics counts the files written by a TemplateWriter.
type WriterMetrics struct {
	FilesWritten int
	BytesWritten int64
	Failed       int
}

// fileTask represents a single file copy.
type fileTask struct {
	from   string      // template path, relative to the template tree
	to     string      // output path, relative to outDir
	data   any         // template data, nil for binary copies
	binary bool        // copy without interpolation
	mode   fs.FileMode // file mode of the written file

	out []byte
	err error
}

// NewTemplateWriter creates a writer for the given configuration. Templates
// without explicit data are rendered with root.
func NewTemplateWriter(c *Config, root *Data) *TemplateWriter {
	fsys := c.Templates
	if fsys == nil {
		fsys = Templates()
	}
	return &TemplateWriter{
		fsys:    fsys,
		funcs:   Funcs(c),
		root:    root,
		outDir:  c.Target,
		workers: max(c.Workers, 1),
		logger:  c.Logger,
	}
}

// CopyTemplate queues the template at from to be rendered into to.
// A nil data renders the template with the root data.
func (w *TemplateWriter) CopyTemplate(from, to string, data any) {
	if data == nil {
		data = w.root
	}
	w.tasks = append(w.tasks, &fileTask{from: from, to: to, data: data, mode: 0o644})
}

// CopyBinary queues a verbatim copy of the file at from.
func (w *TemplateWriter) CopyBinary(from, to string, mode fs.FileMode) {
	w.tasks = append(w.tasks, &fileTask{from: from, to: to, binary: true, mode: mode})
}

// CopyToConfig queues the template at from to be rendered under name into
// every configuration directory of the application.
func (w *TemplateWriter) CopyToConfig(from, name string, data any) {
	for _, dir := range configDirs {
		w.CopyTemplate(from, path.Join(dir, name), data)
	}
}

// CopyBootstrap queues the bootstrap assembler of a module when cond holds.
// The template is read from "<module>/bootstrap.tmpl".
func (w *TemplateWriter) CopyBootstrap(layer, module string, cond bool) {
	if !cond {
		return
	}
	w.CopyTemplate(path.Join(module, "bootstrap.tmpl"), w.bootstrapPath(layer, module), nil)
}

// CopyEntityStore queues the storage module assembler of an entity store.
func (w *TemplateWriter) CopyEntityStore(store string) {
	w.CopyTemplate("StorageModule/bootstrap.tmpl", w.bootstrapPath(LayerInfrastructure, store+"StorageModule"), nil)
}

func (w *TemplateWriter) bootstrapPath(layer, module string) string {
	return path.Join("bootstrap/src/main/java", w.root.JavaPackageDir, "bootstrap", layer, module+".java")
}

// Pending returns the output paths queued so far, in queue order.
func (w *TemplateWriter) Pending() []string {
	out := make([]string, len(w.tasks))
	for i, t := range w.tasks {
		out[i] = t.to
	}
	return out
}

// Flush renders the queued files in parallel and writes them in queue order,
// so the result does not depend on the number of workers. It only fails when
// ctx is done; copy failures are reported by Failures.
func (w *TemplateWriter) Flush(ctx context.Context) error {
	tasks := w.tasks
	w.tasks = nil

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for _, t := range tasks {
		eg.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
				t.out, t.err = w.render(t)
				return nil
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for _, t := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if t.err == nil {
			t.err = w.write(t)
		}
		if t.err != nil {
			w.fail(t)
		}
	}
	return nil
}

// render executes a single task in memory.
func (w *TemplateWriter) render(t *fileTask) ([]byte, error) {
	buf, err := fs.ReadFile(w.fsys, t.from)
	if err != nil {
		return nil, err
	}
	if t.binary {
		return buf, nil
	}
	tmpl, err := template.New(path.Base(t.from)).Funcs(w.funcs).Parse(string(buf))
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	var b bytes.Buffer
	if err := tmpl.Execute(&b, t.data); err != nil {
		return nil, fmt.Errorf("execute: %w", err)
	}
	return b.Bytes(), nil
}

// write stores a rendered task below outDir.
func (w *TemplateWriter) write(t *fileTask) error {
	fullPath := filepath.Join(w.outDir, filepath.FromSlash(t.to))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(fullPath, t.out, t.mode); err != nil {
		return err
	}
	w.logger.Debug("wrote file", "path", t.to, "bytes", len(t.out))

	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.BytesWritten += int64(len(t.out))
	w.mu.Unlock()
	return nil
}

func (w *TemplateWriter) fail(t *fileTask) {
	copyErr := &TemplateCopyError{Template: t.from, Target: t.to, Cause: t.err}
	w.logger.Warn("unable to copy template", "template", t.from, "target", t.to, "error", t.err)

	w.mu.Lock()
	w.failures = append(w.failures, copyErr)
	w.metrics.Failed++
	w.mu.Unlock()
}

// Failures returns the copy failures recorded by Flush.
func (w *TemplateWriter) Failures() []*TemplateCopyError {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]*TemplateCopyError(nil), w.failures...)
}

// Metrics returns the write metrics.
func (w *TemplateWriter) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}
