package mod

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sourceplane/chasm/internal/model"
)

// Step is an instruction together with the line it was loaded from
type Step struct {
	Line        int
	Text        string
	Instruction Instruction
}

// Program is the ordered instruction list loaded from one mod file
type Program struct {
	Path  string
	Steps []Step
}

type loadOptions struct {
	registry *Registry
	lenient  bool
	logger   zerolog.Logger
}

// Option configures Load
type Option func(*loadOptions)

// WithRegistry loads instructions from r instead of the default registry
func WithRegistry(r *Registry) Option {
	return func(o *loadOptions) { o.registry = r }
}

// WithLenient maps unknown instruction names to noop instead of failing
func WithLenient() Option {
	return func(o *loadOptions) { o.lenient = true }
}

// WithLogger sets the logger used for load diagnostics
func WithLogger(logger zerolog.Logger) Option {
	return func(o *loadOptions) { o.logger = logger }
}

// Load reads and compiles a mod file. Any failing line aborts the whole load.
func Load(path string, opts ...Option) (*Program, error) {
	o := loadOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		r, err := DefaultRegistry()
		if err != nil {
			return nil, err
		}
		o.registry = r
	}
	return load(path, o)
}

// LoadAll loads several mod files in order, sharing one registry
func LoadAll(paths []string, opts ...Option) ([]*Program, error) {
	o := loadOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil && len(paths) > 0 {
		r, err := DefaultRegistry()
		if err != nil {
			return nil, err
		}
		o.registry = r
	}

	programs := make([]*Program, 0, len(paths))
	for _, path := range paths {
		p, err := load(path, o)
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, nil
}

func load(path string, o loadOptions) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, model.AtLine(path, 0, fmt.Errorf("%w: %v", model.ErrSourceNotFound, err))
		}
		return nil, fmt.Errorf("failed to read mod file %s: %w", path, err)
	}

	logger := o.logger.With().Str("mod", path).Logger()
	program := &Program{Path: path}

	for i, raw := range strings.Split(string(data), "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, rest := splitInstruction(line)
		args, err := ParseArgs(rest)
		if err != nil {
			return nil, model.AtLine(path, lineNo, err)
		}

		inst, err := o.registry.Build(name, args)
		if err != nil {
			if o.lenient && errors.Is(err, model.ErrUnknownInstruction) {
				logger.Warn().Int("line", lineNo).Str("instruction", name).Msg("unknown instruction treated as noop")
				inst = &Noop{Requested: name}
			} else {
				return nil, model.AtLine(path, lineNo, err)
			}
		}

		program.Steps = append(program.Steps, Step{Line: lineNo, Text: line, Instruction: inst})
	}

	logger.Debug().Int("instructions", len(program.Steps)).Msg("mod loaded")
	return program, nil
}

// splitInstruction separates the first whitespace-delimited token from the rest
func splitInstruction(line string) (string, string) {
	idx := strings.IndexAny(line, " \t")
	if idx < 0 {
		return line, ""
	}
	return line[:idx], strings.TrimSpace(line[idx+1:])
}

// Process applies every instruction in file order to a copy of data and
// returns the copy. The caller's records are never modified; on error the
// result is nil, so a program applies fully or not at all.
func (p *Program) Process(data model.Dataset, rng RandSource) (model.Dataset, error) {
	out := data.Clone()
	for _, step := range p.Steps {
		var err error
		out, err = step.Instruction.Apply(out, rng)
		if err != nil {
			return nil, model.AtLine(p.Path, step.Line, fmt.Errorf("%s: %w", step.Instruction.Name(), err))
		}
	}
	return out, nil
}

// Len returns the number of loaded instructions
func (p *Program) Len() int {
	return len(p.Steps)
}
