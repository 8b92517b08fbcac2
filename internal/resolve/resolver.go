package resolve

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/sourceplane/chasm/internal/loader"
	"github.com/sourceplane/chasm/internal/model"
	"github.com/sourceplane/chasm/internal/schema"
)

// LayerLoader parses one layer source
type LayerLoader func(source string) (*loader.Layer, error)

// Resolver folds config layers over the defaults and infers series keys
type Resolver struct {
	load      LayerLoader
	validator *schema.Validator
	logger    zerolog.Logger
}

// NewResolver creates a resolver that reads layers with loader.LoadLayer
func NewResolver(validator *schema.Validator, logger zerolog.Logger) *Resolver {
	return &Resolver{
		load:      loader.LoadLayer,
		validator: validator,
		logger:    logger.With().Str("component", "resolver").Logger(),
	}
}

// WithLoader replaces the layer loader
func (r *Resolver) WithLoader(load LayerLoader) *Resolver {
	r.load = load
	return r
}

// Resolve starts from the defaults and applies every layer in order; later
// layers override earlier ones. With a non-nil sample, key lists that no
// layer set are inferred from the sample's field names.
func (r *Resolver) Resolve(sources []string, sample *model.Record) (*model.ChartConfig, error) {
	cfg := model.DefaultChartConfig()

	for _, source := range sources {
		layer, err := r.load(source)
		if err != nil {
			return nil, fmt.Errorf("failed to load layer: %w", err)
		}
		if err := r.Apply(cfg, layer); err != nil {
			return nil, err
		}
	}

	if sample == nil {
		return cfg, nil
	}

	inferred, err := inferMissing(cfg, sample)
	if err != nil {
		return nil, fmt.Errorf("key inference failed: %w", err)
	}
	if len(inferred) > 0 {
		r.logger.Debug().Strs("fields", inferred).Strs("ykeys", cfg.DataYKeys).Msg("inferred series keys")
	}
	return cfg, nil
}

// Apply validates one layer and folds its recognized fields into cfg
func (r *Resolver) Apply(cfg *model.ChartConfig, layer *loader.Layer) error {
	if r.validator != nil {
		if err := r.validator.ValidateLayer(layer.Fields); err != nil {
			return model.AtField(layer.Source, "", fmt.Errorf("%w: %v", model.ErrSchemaValidation, err))
		}
	}

	// Sorted so errors and logs are stable
	names := make([]string, 0, len(layer.Fields))
	for name := range layer.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var ignored []string
	for _, name := range names {
		known, err := cfg.Set(name, layer.Fields[name])
		if err != nil {
			return model.AtField(layer.Source, name, err)
		}
		if !known {
			ignored = append(ignored, name)
		}
	}

	event := r.logger.Debug().Str("layer", layer.Source).Int("fields", len(names)-len(ignored))
	if len(ignored) > 0 {
		event = event.Strs("ignored", ignored)
	}
	event.Msg("layer applied")
	return nil
}
