package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/pvefw2sql/pkg/converter"
	"github.com/ccollicutt/pvefw2sql/pkg/output"
)

// Exit codes.
const (
	ExitOK      = 0 // every line converted
	ExitSkipped = 1 // some lines were skipped
	ExitError   = 2 // the run was aborted
)

// ExitCode is set by commands to indicate the result
var ExitCode = ExitOK

// ConvertOptions holds command-line options for the convert command.
type ConvertOptions struct {
	Table   string
	Verbose bool
	Quiet   bool
}

// NewConvertCommand creates the command that converts a log file to SQL.
func NewConvertCommand() *cobra.Command {
	opts := &ConvertOptions{}

	cmd := &cobra.Command{
		Use:   "pvefw2sql <input_file> <output_file>",
		Short: "Convert Proxmox firewall logs to SQL",
		Long: `pvefw2sql reads a Proxmox VE firewall (PVEFW) log file and writes a SQL
script: one CREATE TABLE IF NOT EXISTS statement followed by one INSERT
statement per log line.

Malformed lines are reported on stderr and skipped.

Exit codes:
  0 - All lines converted
  1 - Some lines were skipped
  2 - Input missing or runtime error`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Table, "table", converter.DefaultTable, "Name of the database table")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show skip reasons and timing in the summary")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "One-line summary only")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, opts *ConvertOptions) error {
	input, outputPath := args[0], args[1]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ExitCode = ExitOK

	conv, err := converter.New(
		converter.WithTable(opts.Table),
		converter.WithWarnings(cmd.ErrOrStderr()),
	)
	if err != nil {
		return err
	}

	if !opts.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Reading from '%s' and writing to '%s'...\n", input, outputPath)
	}

	result, err := conv.ConvertFile(ctx, input, outputPath)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	report := output.NewReport(result)
	var formatter output.Formatter = output.NewTextFormatter(output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting %s summary: %w", formatter.Name(), err)
	}

	if report.HasSkipped() {
		ExitCode = ExitSkipped
	}

	return nil
}
