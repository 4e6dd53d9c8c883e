package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"z-doc-ai-api/internal/application/export"
	"z-doc-ai-api/internal/domain/entity"
)

func newRenderCmd() *cobra.Command {
	var (
		docType string
		inPath  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a YAML document description into .docx or .pptx",
		Example: `  docctl render --type word --in report.yaml --out report.docx
  docctl render --type slide --in pitch.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := entity.ParseContainerType(docType)
			if err != nil {
				return fmt.Errorf("--type must be word or slide: %w", err)
			}

			f, err := os.Open(inPath)
			if err != nil {
				return err
			}
			defer f.Close()

			doc, err := decodeDocFile(f)
			if err != nil {
				return err
			}

			artifact, err := export.Render(doc.assemble(ct))
			if err != nil {
				return err
			}

			dest := outPath
			if dest == "" {
				dest = filepath.Join(filepath.Dir(inPath), artifact.Filename)
			}
			if err := os.WriteFile(dest, artifact.Data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", dest, len(artifact.Data))
			return nil
		},
	}

	cmd.Flags().StringVar(&docType, "type", "word", "container type: word or slide")
	cmd.Flags().StringVar(&inPath, "in", "", "input YAML file")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default: <title>.<ext> next to the input)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
