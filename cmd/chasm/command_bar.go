package main

import (
	"fmt"

	"github.com/sourceplane/chasm/internal/mod"
	"github.com/sourceplane/chasm/internal/model"
	"github.com/sourceplane/chasm/internal/render"
	"github.com/sourceplane/chasm/internal/runner"
	"github.com/spf13/cobra"
)

var barCmd = &cobra.Command{
	Use:   "bar",
	Short: "Assemble a bar chart bundle",
	Long:  "Load data, apply mods in order, fold layers over the default config and write the chart bundle for the renderer.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return assembleChart("bar")
	},
}

func registerBarCommand(root *cobra.Command) {
	root.AddCommand(barCmd)

	addInputFlags(barCmd)
	barCmd.Flags().StringVarP(&outputFile, "output", "o", "build/chart.json", "Output bundle path (.json or .yaml)")
	barCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for mod instructions (0 = time based)")
	barCmd.Flags().BoolVarP(&viewData, "view", "v", false, "Print the resolved dataset as a table")
	barCmd.Flags().StringVarP(&chartName, "name", "n", "chart", "Chart name recorded in the bundle")
}

func assembleChart(chartType string) error {
	r, err := runner.NewRunner(logger, mod.NewRand(seed))
	if err != nil {
		return err
	}

	result, err := r.Run(runner.Request{
		Data:    dataInput,
		Layers:  layerPaths,
		Mods:    modPaths,
		Lenient: lenient,
	})
	if err != nil {
		return err
	}

	renderer := render.NewRenderer()
	bundle := renderer.RenderBundle(model.Metadata{
		Name:      chartName,
		ChartType: chartType,
		RunID:     result.RunID,
		Layers:    layerPaths,
		Mods:      modPaths,
	}, result.Config, result.Dataset)

	if err := renderer.WriteBundle(bundle, outputFile); err != nil {
		return fmt.Errorf("failed to write bundle: %w", err)
	}

	fmt.Printf("✓ Bundle assembled with %d records\n", len(bundle.Data))
	fmt.Printf("✓ Saved to: %s\n", outputFile)

	if viewData {
		fmt.Println("\n" + render.NewDatasetViewer(result.Dataset).Table())
	}

	return nil
}
