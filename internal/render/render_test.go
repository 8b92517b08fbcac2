package render

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sourceplane/chasm/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testBundle() *model.Bundle {
	cfg := model.DefaultChartConfig()
	cfg.DataYKeys = []string{"y"}
	data := model.Dataset{
		model.NewRecord("x", "q1", "y", 4),
		model.NewRecord("x", "q2", "y", 5.5),
	}
	return NewRenderer().RenderBundle(model.Metadata{Name: "sales", ChartType: "bar"}, cfg, data)
}

func TestRenderBundleDefaults(t *testing.T) {
	b := NewRenderer().RenderBundle(model.Metadata{Name: "empty"}, model.DefaultChartConfig(), nil)
	assert.Equal(t, "ChartBundle", b.Kind)
	assert.NotNil(t, b.Data)
	assert.Equal(t, []string{}, b.Metadata.Layers)
	assert.Equal(t, []string{}, b.Metadata.Mods)
}

func TestWriteBundleJSONKeepsRecordOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "chart.json")
	require.NoError(t, NewRenderer().WriteBundle(testBundle(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		Kind   string            `json:"kind"`
		Config model.ChartConfig `json:"config"`
		Data   []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "ChartBundle", decoded.Kind)
	assert.Equal(t, []string{"y"}, decoded.Config.DataYKeys)
	require.Len(t, decoded.Data, 2)

	var rec model.Record
	require.NoError(t, json.Unmarshal(decoded.Data[1], &rec))
	assert.Equal(t, []string{"x", "y"}, rec.Keys())
	y, _ := rec.Get("y")
	assert.Equal(t, 5.5, y)
}

func TestWriteBundleYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.yaml")
	require.NoError(t, NewRenderer().WriteBundle(testBundle(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(raw, &decoded))
	assert.Equal(t, "ChartBundle", decoded["kind"])
	assert.Less(t, strings.Index(string(raw), "x: q1"), strings.Index(string(raw), "y: 4"))
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := NewRenderer().Render(testBundle(), "xml")
	assert.Error(t, err)
}

func TestDebugDump(t *testing.T) {
	out := NewRenderer().DebugDump(testBundle())
	assert.Contains(t, out, "Bundle: sales (bar)")
	assert.Contains(t, out, "Records: 2")
	assert.Contains(t, out, "Y keys: [y]")
}

func TestDatasetViewerTable(t *testing.T) {
	data := model.Dataset{
		model.NewRecord("label", "first", "y", 1, "note", nil),
		model.NewRecord("label", "b", "y", 22, "note", "ok"),
	}
	out := NewDatasetViewer(data).Table()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "label  y   note", lines[0])
	assert.Equal(t, "first  1   null", lines[2])
	assert.Equal(t, "b      22  ok", lines[3])
}

func TestDatasetViewerLimits(t *testing.T) {
	data := model.Dataset{model.NewRecord("y", 1), model.NewRecord("y", 2), model.NewRecord("y", 3)}
	viewer := NewDatasetViewer(data)
	viewer.MaxRows = 1
	out := viewer.Table()
	assert.Contains(t, out, "2 more records")

	assert.Equal(t, "No records", NewDatasetViewer(nil).Table())
}
