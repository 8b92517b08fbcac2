package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/sourceplane/chasm/internal/model"
	"gopkg.in/yaml.v3"
)

// Layer is a partial config mapping parsed from one overlay source
type Layer struct {
	Source string
	Inline bool
	Fields map[string]interface{}
}

// LoadLayer parses one layer source. A source naming an existing file is read
// from disk; anything else must be an inline YAML mapping.
func LoadLayer(source string) (*Layer, error) {
	data, isFile, err := readSource(source)
	if err != nil {
		return nil, err
	}

	label := source
	if !isFile {
		label = inlineLabel(source)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, model.AtField(label, "", fmt.Errorf("%w: %v", model.ErrLayerParse, err))
	}

	layer := &Layer{Source: label, Inline: !isFile, Fields: map[string]interface{}{}}

	// Empty document
	if node.Kind == 0 || len(node.Content) == 0 {
		return layer, nil
	}
	doc := node.Content[0]
	if doc.Kind == yaml.ScalarNode && doc.Tag == "!!null" {
		return layer, nil
	}

	if doc.Kind != yaml.MappingNode {
		if !isFile {
			return nil, model.AtField(source, "", fmt.Errorf("%w: no such file and not an inline mapping", model.ErrSourceNotFound))
		}
		return nil, model.AtField(label, "", fmt.Errorf("%w: layer must be a mapping", model.ErrLayerParse))
	}

	if err := doc.Decode(&layer.Fields); err != nil {
		return nil, model.AtField(label, "", fmt.Errorf("%w: %v", model.ErrLayerParse, err))
	}
	return layer, nil
}

// LoadData reads raw records from a file path or from inline JSON text
func LoadData(raw string) (model.Dataset, error) {
	data := []byte(raw)
	label := "inline data"
	if info, err := os.Stat(raw); err == nil && info.Mode().IsRegular() {
		data, err = os.ReadFile(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to read data file %s: %w", raw, err)
		}
		label = raw
	} else if trimmed := strings.TrimSpace(raw); trimmed != "" && !strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "{") {
		return nil, model.AtField(raw, "", fmt.Errorf("%w: no such file and not inline JSON", model.ErrSourceNotFound))
	}

	if strings.TrimSpace(string(data)) == "" {
		return model.Dataset{}, nil
	}

	dataset, err := model.DecodeDataset(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", label, err)
	}
	return dataset, nil
}

func readSource(source string) ([]byte, bool, error) {
	info, err := os.Stat(source)
	switch {
	case err == nil && info.Mode().IsRegular():
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, true, fmt.Errorf("failed to read layer file %s: %w", source, err)
		}
		return data, true, nil
	case err == nil:
		return nil, false, model.AtField(source, "", fmt.Errorf("%w: not a regular file", model.ErrSourceNotFound))
	case errors.Is(err, fs.ErrNotExist), looksInline(source):
		return []byte(source), false, nil
	default:
		return nil, false, fmt.Errorf("failed to access layer %s: %w", source, err)
	}
}

// looksInline reports whether a string cannot plausibly be a path
func looksInline(source string) bool {
	return strings.ContainsAny(source, "\n{}:") || strings.TrimSpace(source) == ""
}

// inlineLabel produces a short single-line description of an inline layer
func inlineLabel(source string) string {
	line := strings.TrimSpace(strings.ReplaceAll(source, "\n", " "))
	if len(line) > 40 {
		line = line[:37] + "..."
	}
	return fmt.Sprintf("inline layer %q", line)
}
