package model

// Bundle is the hand-off document consumed by the renderer
type Bundle struct {
	APIVersion string       `json:"apiVersion" yaml:"apiVersion"`
	Kind       string       `json:"kind" yaml:"kind"`
	Metadata   Metadata     `json:"metadata" yaml:"metadata"`
	Config     *ChartConfig `json:"config" yaml:"config"`
	Data       Dataset      `json:"data" yaml:"data"`
}

// Metadata describes how a bundle was assembled
type Metadata struct {
	Name      string   `json:"name" yaml:"name"`
	ChartType string   `json:"chartType" yaml:"chartType"`
	RunID     string   `json:"runId,omitempty" yaml:"runId,omitempty"`
	Layers    []string `json:"layers" yaml:"layers"`
	Mods      []string `json:"mods" yaml:"mods"`
}
