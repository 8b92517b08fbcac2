package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Chart Assembler - A tool for creating charts from data")
		fmt.Printf("Version: %s (%s %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func registerInfoCommand(root *cobra.Command) {
	root.AddCommand(infoCmd)
}
