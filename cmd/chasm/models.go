package main

import (
	"fmt"

	"github.com/sourceplane/chasm/internal/mod"
	"github.com/sourceplane/chasm/internal/schema"
)

// InstructionInfo holds what the CLI shows about one instruction
type InstructionInfo struct {
	Name        string
	Kind        mod.Kind
	Description string
	Required    []schema.Property
	Optional    []schema.Property
}

// ExtractInstructionInfo collects metadata for a registered instruction
func ExtractInstructionInfo(registry *mod.Registry, name string) (*InstructionInfo, error) {
	spec, ok := registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("instruction not found: %s", name)
	}

	props, err := registry.Parameters(name)
	if err != nil {
		return nil, fmt.Errorf("failed to describe %s: %w", name, err)
	}

	info := &InstructionInfo{Name: spec.Name, Kind: spec.Kind, Description: spec.Description}
	for _, p := range props {
		if p.Required {
			info.Required = append(info.Required, p)
		} else {
			info.Optional = append(info.Optional, p)
		}
	}
	return info, nil
}

// PrintShortFormat prints instruction info on one line
func PrintShortFormat(info *InstructionInfo) {
	fmt.Printf("  %-16s %-5s  %s\n", info.Name, info.Kind, info.Description)
}

// PrintLongFormat prints instruction info with its parameters
func PrintLongFormat(info *InstructionInfo) {
	fmt.Printf("\n━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Printf("Instruction: %s (%s)\n", info.Name, info.Kind)
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	if info.Description != "" {
		fmt.Printf("Description:\n  %s\n\n", info.Description)
	}

	printParams("Required Parameters", info.Required)
	printParams("Optional Parameters", info.Optional)

	if len(info.Required) == 0 && len(info.Optional) == 0 {
		fmt.Printf("Takes no parameters\n\n")
	}
}

func printParams(title string, props []schema.Property) {
	if len(props) == 0 {
		return
	}
	fmt.Printf("%s:\n", title)
	for _, p := range props {
		if p.Description != "" {
			fmt.Printf("  • %-10s %-8s - %s\n", p.Name, p.Type, p.Description)
		} else {
			fmt.Printf("  • %-10s %s\n", p.Name, p.Type)
		}
	}
	fmt.Printf("\n")
}
