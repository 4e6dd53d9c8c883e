package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the title and sections of a .docx or .pptx as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			doc, err := inspectDocument(data)
			if err != nil {
				return err
			}
			return encodeDocFile(cmd.OutOrStdout(), doc)
		},
	}
}
