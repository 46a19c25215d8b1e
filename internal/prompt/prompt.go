// Package prompt asks for the application choices the model document left
// open.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/syssam/polygen/compiler/gen"
	"github.com/syssam/polygen/compiler/load"
)

// ErrNoAnswer is returned when the input ends before a question without
// default is answered.
var ErrNoAnswer = errors.New("prompt: no answer")

// Answers holds the choices made in one prompt session.
type Answers struct {
	Name            string
	PackageName     string
	ApplicationType string
	EntityStore     string
	DBPool          string // empty unless EntityStore is SQL-backed
	Indexing        string
	Caching         string
	Metrics         string
	Features        []string
}

// Options converts the answers into generator options. They are meant to be
// applied after gen.WithModel so the answers win over the document.
func (a *Answers) Options() []gen.Option {
	opts := []gen.Option{
		gen.WithName(a.Name),
		gen.WithPackageName(a.PackageName),
		gen.WithApplicationType(a.ApplicationType),
		gen.WithEntityStore(a.EntityStore),
		gen.WithIndexing(a.Indexing),
		gen.WithCaching(a.Caching),
		gen.WithMetrics(a.Metrics),
		gen.WithFeatures(a.Features...),
	}
	if a.DBPool != "" {
		opts = append(opts, gen.WithDBPool(a.DBPool))
	}
	return opts
}

// Prompter asks questions on out and reads the answers from in, one per line.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	eof bool
}

// New returns a Prompter reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask runs the question flow. Defaults are taken from m, falling back to the
// catalog defaults. The model itself is not modified.
func (p *Prompter) Ask(m *load.Model) (*Answers, error) {
	a := &Answers{}
	var err error
	if a.Name, err = p.Input("Name of your application", m.Name); err != nil {
		return nil, err
	}
	if a.PackageName, err = p.Input("Java package name", m.PackageName); err != nil {
		return nil, err
	}
	if a.ApplicationType, err = p.Choose("Application type", gen.ApplicationTypes, or(m.ApplicationType, gen.DefaultApplicationType)); err != nil {
		return nil, err
	}
	if a.EntityStore, err = p.Choose("Entity store", gen.EntityStores, or(m.EntityStore, gen.DefaultEntityStore)); err != nil {
		return nil, err
	}
	if load.IsSQLStore(a.EntityStore) {
		if a.DBPool, err = p.Choose("Connection pool", gen.DBPools, or(m.DBPool, gen.DefaultDBPool)); err != nil {
			return nil, err
		}
	}
	if a.Indexing, err = p.Choose("Indexing system", gen.Indexings, or(m.Indexing, gen.DefaultIndexing)); err != nil {
		return nil, err
	}
	if a.Caching, err = p.Choose("Caching system", gen.Cachings, or(m.Caching, gen.DefaultCaching)); err != nil {
		return nil, err
	}
	if a.Metrics, err = p.Choose("Metrics provider", gen.MetricsProviders, or(m.Metrics, gen.DefaultMetrics)); err != nil {
		return nil, err
	}
	if a.Features, err = p.Features(m.Features); err != nil {
		return nil, err
	}
	return a, nil
}

// Input asks a free-text question. An empty answer takes def; without a
// default the question is repeated until answered.
func (p *Prompter) Input(question, def string) (string, error) {
	for {
		p.ask(question, def)
		answer, err := p.readLine()
		if err != nil {
			return "", err
		}
		switch {
		case answer != "":
			return answer, nil
		case def != "":
			return def, nil
		case p.eof:
			return "", fmt.Errorf("%w: %s", ErrNoAnswer, strings.ToLower(question))
		}
	}
}

// Choose asks for one of choices, by 1-based index or by name.
func (p *Prompter) Choose(question string, choices []string, def string) (string, error) {
	for {
		fmt.Fprintf(p.out, "? %s\n", question)
		for i, c := range choices {
			fmt.Fprintf(p.out, "  %d) %s\n", i+1, c)
		}
		p.ask("  choose", def)
		answer, err := p.readLine()
		if err != nil {
			return "", err
		}
		if answer == "" {
			return def, nil
		}
		if c, ok := pick(choices, answer); ok {
			return c, nil
		}
		fmt.Fprintf(p.out, "  %q is not a valid choice\n", answer)
		if p.eof {
			return def, nil
		}
	}
}

// Features asks for the features to enable, as a comma separated list of
// indexes or names. An empty answer keeps def, "none" selects nothing.
func (p *Prompter) Features(def []string) ([]string, error) {
	for {
		fmt.Fprintln(p.out, "? Features")
		for i, f := range gen.AllFeatures {
			mark := " "
			if slices.Contains(def, f.Name) {
				mark = "x"
			}
			fmt.Fprintf(p.out, "  %d) [%s] %s (%s) %s\n", i+1, mark, f.Name, f.Stage, f.Description)
		}
		p.ask("  choose", strings.Join(def, ","))
		answer, err := p.readLine()
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(answer) {
		case "":
			return slices.Clone(def), nil
		case "none":
			return []string{}, nil
		}
		if selected, ok := pickAll(gen.FeatureNames, answer); ok {
			return selected, nil
		}
		fmt.Fprintf(p.out, "  %q is not a valid selection\n", answer)
		if p.eof {
			return slices.Clone(def), nil
		}
	}
}

func (p *Prompter) ask(question, def string) {
	if def != "" {
		fmt.Fprintf(p.out, "%s (%s): ", question, def)
		return
	}
	fmt.Fprintf(p.out, "%s: ", question)
}

// readLine returns the next trimmed line. At the end of the input it returns
// an empty line and sets eof.
func (p *Prompter) readLine() (string, error) {
	if p.eof {
		return "", nil
	}
	line, err := p.in.ReadString('\n')
	switch {
	case errors.Is(err, io.EOF):
		p.eof = true
	case err != nil:
		return "", fmt.Errorf("prompt: read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// pick resolves an answer given as 1-based index or as choice name.
func pick(choices []string, answer string) (string, bool) {
	if i, err := strconv.Atoi(answer); err == nil {
		if i >= 1 && i <= len(choices) {
			return choices[i-1], true
		}
		return "", false
	}
	for _, c := range choices {
		if strings.EqualFold(c, answer) {
			return c, true
		}
	}
	return "", false
}

func pickAll(choices []string, answer string) ([]string, bool) {
	selected := []string{}
	for _, field := range strings.Split(answer, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		c, ok := pick(choices, field)
		if !ok {
			return nil, false
		}
		if !slices.Contains(selected, c) {
			selected = append(selected, c)
		}
	}
	return selected, true
}

func or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
