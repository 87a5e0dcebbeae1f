package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikbrunner/quotes/internal/exporter"
	"github.com/nikbrunner/quotes/internal/importer"
)

var exportFormat string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Append quotes from a JSON or HTML export",
	Long: `Append every quote in the file to the collection. Duplicates are kept.
Files ending in .html or .htm are read as HTML exports, anything else as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write the collection to a file",
	Long:  `Write the collection as JSON (default) or HTML. The default path is ~/Downloads/quotes.<format>.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", exporter.FormatJSON, "Export format: json or html")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	items, err := importer.Parse(f, importer.FormatFromPath(path))
	if err != nil {
		return err
	}

	s, kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	if err := s.ImportAppend(items); err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	logger.Info("quotes imported", zap.String("file", path), zap.Int("count", len(items)))
	fmt.Fprintln(cmd.OutOrStdout(), "Quotes imported successfully!")
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		var err error
		if path, err = exporter.DefaultExportPath(exportFormat); err != nil {
			return err
		}
	}

	s, kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := exporter.Export(f, s.All(), exportFormat); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d quotes to %s\n", s.Len(), path)
	return nil
}
