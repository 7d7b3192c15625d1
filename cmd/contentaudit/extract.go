package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"contentaudit/internal/driver"
	"contentaudit/internal/extract"
	"contentaudit/internal/record"
	"contentaudit/internal/source"
)

func newExtractCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [flags] <file.ts>",
		Short: "Print the records extracted from one question file as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runExtract(cmd, args[0])
		},
	}
	cmd.Flags().Bool("force", false, "extract even when the file does not qualify for auditing")
	return cmd
}

type extractOutput struct {
	File    string          `json:"file"`
	Skipped string          `json:"skipped,omitempty"`
	Count   int             `json:"count"`
	Records []record.Record `json:"records"`
}

func (app *cli) runExtract(cmd *cobra.Command, path string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}

	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	file := fileSet.Get(id)

	out := extractOutput{File: file.Path, Records: []record.Record{}}
	if why := driver.Qualify(file.Content); why != driver.NotExcluded && !force {
		app.logger.Info("file does not qualify, use --force to extract anyway",
			zap.String("path", path), zap.Stringer("reason", why))
		out.Skipped = why.String()
	} else {
		out.Records = extract.Extract(file, extract.Options{Logger: app.logger, Path: file.Path})
		out.Count = len(out.Records)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
