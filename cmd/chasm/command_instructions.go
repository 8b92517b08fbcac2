package main

import (
	"fmt"

	"github.com/sourceplane/chasm/internal/mod"
	"github.com/spf13/cobra"
)

var instructionsCmd = &cobra.Command{
	Use:     "instructions [instruction]",
	Aliases: []string{"instruction"},
	Short:   "List mod instructions",
	Long:    "List the instructions available to mod files. Use 'chasm instructions <name>' for its parameters.",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return listInstructions(args)
	},
}

func registerInstructionsCommand(root *cobra.Command) {
	root.AddCommand(instructionsCmd)

	instructionsCmd.Flags().BoolVarP(&longFormat, "long", "l", false, "Show parameters for every instruction")
}

func listInstructions(args []string) error {
	registry, err := mod.DefaultRegistry()
	if err != nil {
		return err
	}

	if len(args) > 0 {
		info, err := ExtractInstructionInfo(registry, args[0])
		if err != nil {
			return err
		}
		PrintLongFormat(info)
		return nil
	}

	fmt.Println("Available Instructions:")
	for _, name := range registry.Names() {
		info, err := ExtractInstructionInfo(registry, name)
		if err != nil {
			return err
		}
		if longFormat {
			PrintLongFormat(info)
		} else {
			PrintShortFormat(info)
		}
	}

	if !longFormat {
		fmt.Println("\nRun 'chasm instructions <name>' for detailed information")
	}
	return nil
}
