package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sourceplane/chasm/internal/model"
	"gopkg.in/yaml.v3"
)

// Renderer materializes a resolved dataset and config into a chart bundle
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderBundle creates the hand-off document for the renderer
func (r *Renderer) RenderBundle(metadata model.Metadata, cfg *model.ChartConfig, data model.Dataset) *model.Bundle {
	if data == nil {
		data = model.Dataset{}
	}
	if metadata.Layers == nil {
		metadata.Layers = []string{}
	}
	if metadata.Mods == nil {
		metadata.Mods = []string{}
	}
	return &model.Bundle{
		APIVersion: "chasm.sourceplane.io/v1",
		Kind:       "ChartBundle",
		Metadata:   metadata,
		Config:     cfg,
		Data:       data,
	}
}

// RenderJSON renders bundle as JSON
func (r *Renderer) RenderJSON(bundle *model.Bundle) ([]byte, error) {
	return json.MarshalIndent(bundle, "", "  ")
}

// RenderYAML renders bundle as YAML
func (r *Renderer) RenderYAML(bundle *model.Bundle) ([]byte, error) {
	return yaml.Marshal(bundle)
}

// Render encodes the bundle in the given format (json or yaml)
func (r *Renderer) Render(bundle *model.Bundle, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return r.RenderYAML(bundle)
	case "json", "":
		return r.RenderJSON(bundle)
	}
	return nil, fmt.Errorf("unsupported output format %q", format)
}

// WriteBundle writes bundle to file (JSON or YAML based on extension)
func (r *Renderer) WriteBundle(bundle *model.Bundle, path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	format := "json"
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		format = "yaml"
	}

	data, err := r.Render(bundle, format)
	if err != nil {
		return fmt.Errorf("failed to render bundle: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write bundle to %s: %w", path, err)
	}

	return nil
}

// DebugDump outputs a short summary of the bundle
func (r *Renderer) DebugDump(bundle *model.Bundle) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Bundle: %s (%s)\n", bundle.Metadata.Name, bundle.Metadata.ChartType)
	fmt.Fprintf(&sb, "Records: %d\n", len(bundle.Data))
	fmt.Fprintf(&sb, "Layers: %v\n", bundle.Metadata.Layers)
	fmt.Fprintf(&sb, "Mods: %v\n", bundle.Metadata.Mods)
	if bundle.Config != nil {
		fmt.Fprintf(&sb, "Title: %s\n", bundle.Config.ChartTitle)
		fmt.Fprintf(&sb, "X key: %s\n", bundle.Config.DataXKey)
		fmt.Fprintf(&sb, "Y keys: %v\n", bundle.Config.DataYKeys)
		fmt.Fprintf(&sb, "Secondary Y keys: %v\n", bundle.Config.DataYKeysSecondary)
	}
	return sb.String()
}
