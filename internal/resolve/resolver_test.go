package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sourceplane/chasm/internal/loader"
	"github.com/sourceplane/chasm/internal/model"
	"github.com/sourceplane/chasm/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver(t *testing.T) *Resolver {
	t.Helper()
	v, err := schema.NewValidator()
	require.NoError(t, err)
	return NewResolver(v, zerolog.Nop())
}

func TestResolveDefaults(t *testing.T) {
	cfg, err := newResolver(t).Resolve(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultChartConfig(), cfg)
}

func TestResolveLaterLayersWin(t *testing.T) {
	cfg, err := newResolver(t).Resolve([]string{"chart_title: A", "chart_title: B"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "B", cfg.ChartTitle)
}

func TestResolveIgnoresUnknownFields(t *testing.T) {
	cfg, err := newResolver(t).Resolve([]string{"{foo: bar, author: {name: me}}"}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultChartConfig(), cfg)
	assert.False(t, cfg.Known("foo"))
}

func TestResolveFromFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.yaml")
	theme := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(base, []byte(`chart_title: Revenue
chart_margin_l: 20
chart_xaxis_showgrid: false
marker_line_width: 1
`), 0o600))
	require.NoError(t, os.WriteFile(theme, []byte(`chart_paper_bgcolor: "#000000"
chart_colorway: ["#ff0000", "#00ff00"]
chart_margin_l: 30
`), 0o600))

	cfg, err := newResolver(t).Resolve([]string{base, theme}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Revenue", cfg.ChartTitle)
	assert.Equal(t, 30, cfg.ChartMarginL)
	assert.Equal(t, 5, cfg.ChartMarginR)
	assert.False(t, cfg.XAxisShowGrid)
	assert.True(t, cfg.YAxisShowGrid)
	assert.Equal(t, 1.0, cfg.MarkerLineWidth)
	assert.Equal(t, "#000000", cfg.ChartPaperBGColor)
	assert.Equal(t, []string{"#ff0000", "#00ff00"}, cfg.ChartColorway)
}

func TestResolveErrors(t *testing.T) {
	r := newResolver(t)

	_, err := r.Resolve([]string{filepath.Join(t.TempDir(), "absent.yaml")}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrSourceNotFound))
	assert.Contains(t, err.Error(), "absent.yaml")

	_, err = r.Resolve([]string{"chart_margin_t: wide"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrSchemaValidation))
	assert.Contains(t, err.Error(), "chart_margin_t")

	_, err = r.Resolve([]string{"chart_title: ok", "{broken"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrLayerParse))
}

func TestApplyWithoutValidatorStillTypeChecks(t *testing.T) {
	r := NewResolver(nil, zerolog.Nop())
	cfg := model.DefaultChartConfig()

	err := r.Apply(cfg, &loader.Layer{Source: "test", Fields: map[string]interface{}{"chart_xaxis_visible": "yes"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrSchemaValidation))

	var located *model.LocatedError
	require.True(t, errors.As(err, &located))
	assert.Equal(t, "chart_xaxis_visible", located.Field)
}

func TestResolveInfersKeys(t *testing.T) {
	sample := model.NewRecord("x", "a", "y", 1, "z", 3, "y2", 2)

	cfg, err := newResolver(t).Resolve(nil, sample)
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "y2"}, cfg.DataYKeys)
	assert.Equal(t, []string{"z"}, cfg.DataYKeysSecondary)
}

func TestResolveExplicitKeysSkipInference(t *testing.T) {
	sample := model.NewRecord("x", "a", "y", 1, "y2", 2)

	cfg, err := newResolver(t).Resolve([]string{"data_ykeys: [y2]", "data_ykeys_secondary: []"}, sample)
	require.NoError(t, err)
	assert.Equal(t, []string{"y2"}, cfg.DataYKeys)
	assert.Equal(t, []string{}, cfg.DataYKeysSecondary)
}

func TestResolveLayerPatternAndNullReset(t *testing.T) {
	sample := model.NewRecord("month", "jan", "sales", 1, "returns", 2)

	cfg, err := newResolver(t).Resolve([]string{
		"data_ykeys: [sales]",
		"{data_ykeys: null, data_ykeys_pattern: 'sales|returns', data_xkey: month}",
	}, sample)
	require.NoError(t, err)
	assert.Equal(t, "month", cfg.DataXKey)
	assert.Equal(t, []string{"sales", "returns"}, cfg.DataYKeys)
}

func TestResolveSingleStringKeyList(t *testing.T) {
	cfg, err := newResolver(t).Resolve([]string{"data_ykeys: revenue"}, model.NewRecord("revenue", 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"revenue"}, cfg.DataYKeys)
}
