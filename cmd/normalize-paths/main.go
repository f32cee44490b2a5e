package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mostruario/internal/normalize"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

type options struct {
	input  string
	output string
	column string
	marker string
}

func newRootCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "normalize-paths",
		Short: "Rewrite absolute image paths in the catalog CSV as project-relative paths",
		Long: `Reads the catalog CSV, rewrites every value of the image column so that it is
relative to the catalog project root, and writes the result to a new file.
The input file is never modified.`,
		Example: `  # Defaults: catalogo.csv -> catalogo_corrigido.csv
  $ normalize-paths

  # Custom files and marker directory
  $ normalize-paths -i export.csv -o export_fixed.csv --marker catalogo_digital`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := normalize.File(opts.input, opts.output, opts.column, opts.marker)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			successColor.Fprintf(out, "CSV corrigido salvo como: %s\n", opts.output)
			fmt.Fprintf(out, "linhas: %d, corrigidas: %d, inalteradas: %d\n", report.Rows, report.Rewritten, report.Passthrough)
			if report.Suspicious > 0 {
				warningColor.Fprintf(out, "atenção: %d caminho(s) ainda parecem absolutos\n", report.Suspicious)
			}
			return nil
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "catalogo.csv", "catalog CSV to read")
	flags.StringVarP(&opts.output, "output", "o", "catalogo_corrigido.csv", "file to write the corrected CSV to")
	flags.StringVar(&opts.column, "column", normalize.DefaultColumn, "column holding the image paths")
	flags.StringVar(&opts.marker, "marker", normalize.DefaultMarker, "project directory name that prefixes the relative path")
	return cmd
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		errorColor.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(1)
	}
}
