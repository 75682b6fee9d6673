package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matt-g-everett/animatable/definitions"
)

type listOptions struct {
	jsonOutput bool
}

type listGroup struct {
	Title string   `json:"title"`
	Names []string `json:"names"`
}

var groupTitleStyle = lipgloss.NewStyle().Bold(true)

func newListCmd(flags *rootFlags) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available animations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, flags, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runList(cmd *cobra.Command, flags *rootFlags, opts *listOptions) error {
	reg, _, err := catalogueRegistry(flags)
	if err != nil {
		return err
	}

	builtin := make(map[string]bool)
	var groups []listGroup
	for _, g := range definitions.Groups() {
		groups = append(groups, listGroup{Title: g.Title, Names: g.Names})
		for _, name := range g.Names {
			builtin[name] = true
		}
	}
	var custom []string
	for _, name := range reg.Names() {
		if !builtin[name] {
			custom = append(custom, name)
		}
	}
	if len(custom) > 0 {
		sort.Strings(custom)
		groups = append(groups, listGroup{Title: "Custom", Names: custom})
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(groups)
	}
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, groupTitleStyle.Render(g.Title))
		fmt.Fprintln(out, "  "+strings.Join(g.Names, ", "))
	}
	return nil
}
