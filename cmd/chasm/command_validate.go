package main

import (
	"fmt"

	"github.com/sourceplane/chasm/internal/mod"
	"github.com/sourceplane/chasm/internal/runner"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate mod files and layers without producing a bundle",
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateInputs()
	},
}

func registerValidateCommand(root *cobra.Command) {
	root.AddCommand(validateCmd)

	addInputFlags(validateCmd)
	validateCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for mod instructions when --data is given (0 = time based)")
}

func validateInputs() error {
	r, err := runner.NewRunner(logger, mod.NewRand(seed))
	if err != nil {
		return err
	}

	fmt.Println("□ Loading mods...")
	programs, err := r.LoadPrograms(modPaths, lenient)
	if err != nil {
		return err
	}
	for _, p := range programs {
		fmt.Printf("  %s: %d instructions\n", p.Path, p.Len())
	}

	fmt.Println("□ Resolving layers...")
	if _, err := r.ResolveConfig(layerPaths, nil); err != nil {
		return err
	}

	if dataInput != "" {
		fmt.Println("□ Running pipeline...")
		if _, err := r.Run(runner.Request{Data: dataInput, Layers: layerPaths, Mods: modPaths, Lenient: lenient}); err != nil {
			return err
		}
	}

	fmt.Println("✓ All validation passed")
	return nil
}
