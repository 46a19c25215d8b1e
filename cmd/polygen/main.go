// Command polygen scaffolds a Polygene application from a model document.
//
// Usage:
//
//	polygen [--import=model.json] [--export=exported-model] [--noPrompt] [--target=dir]
//
// Every flag can also be set with a POLYGEN_<FLAG> environment variable or in
// a .polygen.yaml file in the working directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/syssam/polygen/compiler/gen"
	"github.com/syssam/polygen/compiler/load"
	"github.com/syssam/polygen/internal/prompt"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		var logged *loggedError
		if !errors.As(err, &logged) {
			fmt.Fprintln(os.Stderr, "polygen:", err)
		}
		stop()
		os.Exit(1)
	}
}

// loggedError is an error already reported through the logger.
type loggedError struct {
	error
}

func (e *loggedError) Unwrap() error { return e.error }

// options are the resolved command line settings.
type options struct {
	Import   string
	Export   string
	NoPrompt bool
	Target   string
	Strict   bool
	Workers  int
	Verbose  bool
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "polygen",
		Short: "Generate a Polygene application from a model document",
		Long: `polygen reads a model document describing the modules, entities and
services of an application, asks for the choices the document leaves open and
writes a Gradle project with the bootstrap assembly and domain sources.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := readConfig(v); err != nil {
				newLogger(errOut, false).Error("generation failed", "error", err)
				return &loggedError{err}
			}
			opts := options{
				Import:   v.GetString("import"),
				Export:   v.GetString("export"),
				NoPrompt: v.GetBool("noPrompt"),
				Target:   v.GetString("target"),
				Strict:   v.GetBool("strict"),
				Workers:  v.GetInt("workers"),
				Verbose:  v.GetBool("verbose"),
			}
			logger := newLogger(errOut, opts.Verbose)
			if err := run(cmd.Context(), opts, logger, in, out); err != nil {
				logger.Error("generation failed", "error", err)
				return &loggedError{err}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("import", "", "model document to read (default "+load.DefaultImportPath+")")
	flags.String("export", "exported-model", `write the finalized model to this file, ".json" is appended when missing; empty disables`)
	flags.Bool("noPrompt", false, "do not ask questions, use the model and the defaults")
	flags.String("target", ".", "directory the project is written to")
	flags.Bool("strict", false, "fail when a template cannot be copied")
	flags.Int("workers", 1, "number of templates rendered concurrently")
	flags.BoolP("verbose", "v", false, "log every written file")
	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}

	v.SetEnvPrefix("polygen")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetConfigName(".polygen")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	return cmd
}

// readConfig loads the optional configuration file.
func readConfig(v *viper.Viper) error {
	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("read configuration: %w", err)
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(ctx context.Context, opts options, logger *slog.Logger, in io.Reader, out io.Writer) error {
	target, err := filepath.Abs(opts.Target)
	if err != nil {
		return fmt.Errorf("resolve target: %w", err)
	}
	appname := load.AppName(target)

	m, err := importModel(opts.Import, appname)
	if err != nil {
		return err
	}
	logger.Debug("loaded model", "name", m.Name, "modules", m.Modules.Len())

	genOpts := []gen.Option{gen.WithModel(m)}
	if !opts.NoPrompt {
		answers, err := prompt.New(in, out).Ask(m)
		if err != nil {
			return err
		}
		genOpts = append(genOpts, answers.Options()...)
	}
	genOpts = append(genOpts,
		gen.WithTarget(target),
		gen.WithStrict(opts.Strict),
		gen.WithWorkers(max(opts.Workers, 1)),
		gen.WithLogger(logger),
	)
	cfg, err := gen.NewConfig(genOpts...)
	if err != nil {
		return err
	}
	if err := gen.Generate(ctx, cfg); err != nil {
		return err
	}

	if opts.Export != "" {
		if err := load.Export(opts.Export, cfg.Model()); err != nil {
			return err
		}
		logger.Info("exported model", "path", opts.Export)
	}
	return nil
}

// importModel reads the model at path. Without an explicit path a missing
// default document starts an empty model.
func importModel(path, appname string) (*load.Model, error) {
	if path != "" {
		return load.Import(path, appname)
	}
	m, err := load.Import(load.DefaultImportPath, appname)
	if errors.Is(err, fs.ErrNotExist) {
		m = &load.Model{}
		m.Defaults(appname)
		return m, nil
	}
	return m, err
}
