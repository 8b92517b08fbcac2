package main

import (
	"fmt"

	"github.com/sourceplane/chasm/internal/mod"
	"github.com/sourceplane/chasm/internal/model"
	"github.com/sourceplane/chasm/internal/render"
	"github.com/sourceplane/chasm/internal/runner"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Print the resolved config and dataset without writing a bundle",
	RunE: func(cmd *cobra.Command, args []string) error {
		return debugChart()
	},
}

func registerDebugCommand(root *cobra.Command) {
	root.AddCommand(debugCmd)

	addInputFlags(debugCmd)
	debugCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for mod instructions (0 = time based)")
}

func debugChart() error {
	r, err := runner.NewRunner(logger, mod.NewRand(seed))
	if err != nil {
		return err
	}

	result, err := r.Run(runner.Request{Data: dataInput, Layers: layerPaths, Mods: modPaths, Lenient: lenient})
	if err != nil {
		return err
	}

	renderer := render.NewRenderer()
	bundle := renderer.RenderBundle(model.Metadata{Name: "debug", RunID: result.RunID, Layers: layerPaths, Mods: modPaths}, result.Config, result.Dataset)

	fmt.Println(renderer.DebugDump(bundle))

	cfg, err := yaml.Marshal(result.Config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	fmt.Println("Resolved config:")
	fmt.Println(string(cfg))
	fmt.Println(render.NewDatasetViewer(result.Dataset).Table())
	return nil
}
