package model

import (
	"fmt"
	"math"
	"sort"
)

// Config field names recognized by layers
const (
	FieldDataXKey                  = "data_xkey"
	FieldDataYKeys                 = "data_ykeys"
	FieldDataYKeysPattern          = "data_ykeys_pattern"
	FieldDataYKeysSecondary        = "data_ykeys_secondary"
	FieldDataYKeysSecondaryPattern = "data_ykeys_secondary_pattern"

	FieldChartTitle        = "chart_title"
	FieldChartMarginL      = "chart_margin_l"
	FieldChartMarginR      = "chart_margin_r"
	FieldChartMarginT      = "chart_margin_t"
	FieldChartMarginB      = "chart_margin_b"
	FieldChartPaperBGColor = "chart_paper_bgcolor"
	FieldChartPlotBGColor  = "chart_plot_bgcolor"
	FieldChartColorway     = "chart_colorway"
	FieldMarkerLineWidth   = "marker_line_width"

	FieldXAxisTitle          = "chart_xaxis_title"
	FieldXAxisVisible        = "chart_xaxis_visible"
	FieldXAxisShowTickLabels = "chart_xaxis_showticklabels"
	FieldXAxisShowGrid       = "chart_xaxis_showgrid"
	FieldXAxisZeroLine       = "chart_xaxis_zeroline"

	FieldYAxisTitle          = "chart_yaxis_title"
	FieldYAxisVisible        = "chart_yaxis_visible"
	FieldYAxisShowTickLabels = "chart_yaxis_showticklabels"
	FieldYAxisShowGrid       = "chart_yaxis_showgrid"
	FieldYAxisZeroLine       = "chart_yaxis_zeroline"
)

// ChartConfig is the flat settings object handed to the renderer
type ChartConfig struct {
	DataXKey                  string   `yaml:"data_xkey" json:"data_xkey"`
	DataYKeys                 []string `yaml:"data_ykeys" json:"data_ykeys"`
	DataYKeysPattern          string   `yaml:"data_ykeys_pattern" json:"data_ykeys_pattern"`
	DataYKeysSecondary        []string `yaml:"data_ykeys_secondary" json:"data_ykeys_secondary"`
	DataYKeysSecondaryPattern string   `yaml:"data_ykeys_secondary_pattern" json:"data_ykeys_secondary_pattern"`

	ChartTitle        string   `yaml:"chart_title" json:"chart_title"`
	ChartMarginL      int      `yaml:"chart_margin_l" json:"chart_margin_l"`
	ChartMarginR      int      `yaml:"chart_margin_r" json:"chart_margin_r"`
	ChartMarginT      int      `yaml:"chart_margin_t" json:"chart_margin_t"`
	ChartMarginB      int      `yaml:"chart_margin_b" json:"chart_margin_b"`
	ChartPaperBGColor string   `yaml:"chart_paper_bgcolor" json:"chart_paper_bgcolor"`
	ChartPlotBGColor  string   `yaml:"chart_plot_bgcolor" json:"chart_plot_bgcolor"`
	ChartColorway     []string `yaml:"chart_colorway" json:"chart_colorway"`
	MarkerLineWidth   float64  `yaml:"marker_line_width" json:"marker_line_width"`

	XAxisTitle          string `yaml:"chart_xaxis_title" json:"chart_xaxis_title"`
	XAxisVisible        bool   `yaml:"chart_xaxis_visible" json:"chart_xaxis_visible"`
	XAxisShowTickLabels bool   `yaml:"chart_xaxis_showticklabels" json:"chart_xaxis_showticklabels"`
	XAxisShowGrid       bool   `yaml:"chart_xaxis_showgrid" json:"chart_xaxis_showgrid"`
	XAxisZeroLine       bool   `yaml:"chart_xaxis_zeroline" json:"chart_xaxis_zeroline"`

	YAxisTitle          string `yaml:"chart_yaxis_title" json:"chart_yaxis_title"`
	YAxisVisible        bool   `yaml:"chart_yaxis_visible" json:"chart_yaxis_visible"`
	YAxisShowTickLabels bool   `yaml:"chart_yaxis_showticklabels" json:"chart_yaxis_showticklabels"`
	YAxisShowGrid       bool   `yaml:"chart_yaxis_showgrid" json:"chart_yaxis_showgrid"`
	YAxisZeroLine       bool   `yaml:"chart_yaxis_zeroline" json:"chart_yaxis_zeroline"`
}

// DefaultChartConfig returns a config with every field at its baseline value
func DefaultChartConfig() *ChartConfig {
	return &ChartConfig{
		DataXKey:                  "x",
		DataYKeysPattern:          `^y\d*$`,
		DataYKeysSecondaryPattern: `^z\d*$`,

		ChartTitle:        "Hello Bar Chart",
		ChartMarginL:      5,
		ChartMarginR:      5,
		ChartMarginT:      5,
		ChartMarginB:      5,
		ChartPaperBGColor: "#ffffff",
		ChartPlotBGColor:  "#ffffff",

		XAxisTitle:          "x-Title",
		XAxisVisible:        true,
		XAxisShowTickLabels: true,
		XAxisShowGrid:       true,
		XAxisZeroLine:       true,

		YAxisTitle:          "y-Title",
		YAxisVisible:        true,
		YAxisShowTickLabels: true,
		YAxisShowGrid:       true,
		YAxisZeroLine:       true,
	}
}

// KeyListField pairs a key-list field with the field holding its inference pattern
type KeyListField struct {
	Field   string
	Pattern string
}

// KeyListFields lists the series-key fields that support inference
var KeyListFields = []KeyListField{
	{Field: FieldDataYKeys, Pattern: FieldDataYKeysPattern},
	{Field: FieldDataYKeysSecondary, Pattern: FieldDataYKeysSecondaryPattern},
}

// Known reports whether name is a recognized config field
func (c *ChartConfig) Known(name string) bool {
	_, ok := c.slot(name)
	return ok
}

// FieldNames returns every recognized field name, sorted
func FieldNames() []string {
	names := make([]string, len(allFields))
	copy(names, allFields)
	sort.Strings(names)
	return names
}

var allFields = []string{
	FieldDataXKey, FieldDataYKeys, FieldDataYKeysPattern, FieldDataYKeysSecondary, FieldDataYKeysSecondaryPattern,
	FieldChartTitle, FieldChartMarginL, FieldChartMarginR, FieldChartMarginT, FieldChartMarginB,
	FieldChartPaperBGColor, FieldChartPlotBGColor, FieldChartColorway, FieldMarkerLineWidth,
	FieldXAxisTitle, FieldXAxisVisible, FieldXAxisShowTickLabels, FieldXAxisShowGrid, FieldXAxisZeroLine,
	FieldYAxisTitle, FieldYAxisVisible, FieldYAxisShowTickLabels, FieldYAxisShowGrid, FieldYAxisZeroLine,
}

// KeyList returns the current value of a key-list field; ok is false for non-list fields
func (c *ChartConfig) KeyList(name string) ([]string, bool) {
	s, ok := c.slot(name)
	if !ok || s.list == nil {
		return nil, false
	}
	return *s.list, true
}

// StringField returns the current value of a string field
func (c *ChartConfig) StringField(name string) (string, bool) {
	s, ok := c.slot(name)
	if !ok || s.str == nil {
		return "", false
	}
	return *s.str, true
}

// Set assigns value to the named field, coercing it to the field type.
// It returns false for unrecognized field names.
func (c *ChartConfig) Set(name string, value interface{}) (bool, error) {
	s, ok := c.slot(name)
	if !ok {
		return false, nil
	}

	var err error
	switch {
	case s.str != nil:
		*s.str, err = asString(value)
	case s.num != nil:
		*s.num, err = asInt(value)
	case s.flt != nil:
		*s.flt, err = asFloat(value)
	case s.flag != nil:
		*s.flag, err = asBool(value)
	case s.list != nil:
		*s.list, err = asStringList(value)
	}
	if err != nil {
		return true, fmt.Errorf("%w: %s: %v", ErrSchemaValidation, name, err)
	}
	return true, nil
}

// slot points at the storage for one field; exactly one pointer is set
type slot struct {
	str  *string
	num  *int
	flt  *float64
	flag *bool
	list *[]string
}

func (c *ChartConfig) slot(name string) (slot, bool) {
	switch name {
	case FieldDataXKey:
		return slot{str: &c.DataXKey}, true
	case FieldDataYKeys:
		return slot{list: &c.DataYKeys}, true
	case FieldDataYKeysPattern:
		return slot{str: &c.DataYKeysPattern}, true
	case FieldDataYKeysSecondary:
		return slot{list: &c.DataYKeysSecondary}, true
	case FieldDataYKeysSecondaryPattern:
		return slot{str: &c.DataYKeysSecondaryPattern}, true
	case FieldChartTitle:
		return slot{str: &c.ChartTitle}, true
	case FieldChartMarginL:
		return slot{num: &c.ChartMarginL}, true
	case FieldChartMarginR:
		return slot{num: &c.ChartMarginR}, true
	case FieldChartMarginT:
		return slot{num: &c.ChartMarginT}, true
	case FieldChartMarginB:
		return slot{num: &c.ChartMarginB}, true
	case FieldChartPaperBGColor:
		return slot{str: &c.ChartPaperBGColor}, true
	case FieldChartPlotBGColor:
		return slot{str: &c.ChartPlotBGColor}, true
	case FieldChartColorway:
		return slot{list: &c.ChartColorway}, true
	case FieldMarkerLineWidth:
		return slot{flt: &c.MarkerLineWidth}, true
	case FieldXAxisTitle:
		return slot{str: &c.XAxisTitle}, true
	case FieldXAxisVisible:
		return slot{flag: &c.XAxisVisible}, true
	case FieldXAxisShowTickLabels:
		return slot{flag: &c.XAxisShowTickLabels}, true
	case FieldXAxisShowGrid:
		return slot{flag: &c.XAxisShowGrid}, true
	case FieldXAxisZeroLine:
		return slot{flag: &c.XAxisZeroLine}, true
	case FieldYAxisTitle:
		return slot{str: &c.YAxisTitle}, true
	case FieldYAxisVisible:
		return slot{flag: &c.YAxisVisible}, true
	case FieldYAxisShowTickLabels:
		return slot{flag: &c.YAxisShowTickLabels}, true
	case FieldYAxisShowGrid:
		return slot{flag: &c.YAxisShowGrid}, true
	case FieldYAxisZeroLine:
		return slot{flag: &c.YAxisZeroLine}, true
	}
	return slot{}, false
}

func asString(v interface{}) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("expected string, got %T", v)
}

func asInt(v interface{}) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("expected integer, got %v", t)
		}
		return int(t), nil
	}
	return 0, fmt.Errorf("expected integer, got %T", v)
}

func asFloat(v interface{}) (float64, error) {
	switch t := v.(type) {
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case float64:
		return t, nil
	}
	return 0, fmt.Errorf("expected number, got %T", v)
}

func asBool(v interface{}) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("expected boolean, got %T", v)
}

// asStringList accepts a list of strings, a single string, or null (unset)
func asStringList(v interface{}) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{t}, nil
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out, nil
	case []interface{}:
		out := make([]string, 0, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d: expected string, got %T", i, item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected list of strings, got %T", v)
}
