package runner

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sourceplane/chasm/internal/loader"
	"github.com/sourceplane/chasm/internal/mod"
	"github.com/sourceplane/chasm/internal/model"
	"github.com/sourceplane/chasm/internal/normalize"
	"github.com/sourceplane/chasm/internal/resolve"
	"github.com/sourceplane/chasm/internal/schema"
)

// Request lists the inputs of one assembly run
type Request struct {
	Data    string
	Layers  []string
	Mods    []string
	Lenient bool
}

// Result is the resolved dataset and config handed to the renderer
type Result struct {
	RunID   string
	Dataset model.Dataset
	Config  *model.ChartConfig
}

// Runner assembles a chart dataset and config from raw inputs
type Runner struct {
	Logger    zerolog.Logger
	Rand      mod.RandSource
	registry  *mod.Registry
	validator *schema.Validator
}

// NewRunner creates a runner using the built-in instruction registry
func NewRunner(logger zerolog.Logger, rng mod.RandSource) (*Runner, error) {
	registry, err := mod.DefaultRegistry()
	if err != nil {
		return nil, err
	}
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to load layer schema: %w", err)
	}
	return &Runner{
		Logger:    logger,
		Rand:      rng,
		registry:  registry,
		validator: validator,
	}, nil
}

// Registry exposes the instruction registry used to load mods
func (r *Runner) Registry() *mod.Registry {
	return r.registry
}

// LoadPrograms compiles every mod file without applying it
func (r *Runner) LoadPrograms(paths []string, lenient bool) ([]*mod.Program, error) {
	opts := []mod.Option{mod.WithRegistry(r.registry), mod.WithLogger(r.Logger)}
	if lenient {
		opts = append(opts, mod.WithLenient())
	}
	return mod.LoadAll(paths, opts...)
}

// ResolveConfig folds layers over the defaults, inferring keys from sample when given
func (r *Runner) ResolveConfig(layers []string, sample *model.Record) (*model.ChartConfig, error) {
	return resolve.NewResolver(r.validator, r.Logger).Resolve(layers, sample)
}

// Run executes one assembly: ingest, apply mods, check shape, resolve config.
// Any failure aborts the run and no partial result is returned.
func (r *Runner) Run(req Request) (*Result, error) {
	if r.Rand == nil {
		return nil, fmt.Errorf("runner has no random source")
	}

	runID := uuid.NewString()
	logger := r.Logger.With().Str("run", runID).Logger()

	data, err := loader.LoadData(req.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
	if err := normalize.Dataset(data); err != nil {
		return nil, fmt.Errorf("invalid input data: %w", err)
	}
	logger.Debug().Int("records", len(data)).Msg("data loaded")

	// All programs must load before any is applied
	programs, err := r.LoadPrograms(req.Mods, req.Lenient)
	if err != nil {
		return nil, fmt.Errorf("failed to load mods: %w", err)
	}

	for _, program := range programs {
		data, err = program.Process(data, r.Rand)
		if err != nil {
			return nil, fmt.Errorf("mod failed: %w", err)
		}
		logger.Debug().Str("mod", program.Path).Int("records", len(data)).Msg("mod applied")
	}

	if err := normalize.Dataset(data); err != nil {
		return nil, fmt.Errorf("mods produced inconsistent records: %w", err)
	}

	cfg, err := r.ResolveConfig(req.Layers, sampleOf(data))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config: %w", err)
	}

	logger.Info().
		Int("records", len(data)).
		Int("layers", len(req.Layers)).
		Int("mods", len(programs)).
		Strs("ykeys", cfg.DataYKeys).
		Msg("chart assembled")

	return &Result{RunID: runID, Dataset: data, Config: cfg}, nil
}

// sampleOf returns the first record, or an empty record for an empty dataset
// so key inference still runs and yields empty lists
func sampleOf(data model.Dataset) *model.Record {
	if first := data.First(); first != nil {
		return first
	}
	return &model.Record{}
}
