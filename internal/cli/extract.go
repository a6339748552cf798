package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipmeta"
	"clipmeta/clipboard"
	"clipmeta/internal/logger"
)

var extractOpts outputOptions

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Report image metadata for the current clipboard",
	Long: `Reads every item on the system clipboard and prints one record per item.

Examples:
  clipmeta extract
  clipmeta extract --format text
  clipmeta extract -o clipboard.json`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

func init() {
	extractOpts.addFlags(extractCmd)
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if err := extractOpts.resolve(cmd, cfg); err != nil {
		return err
	}

	src, err := clipboard.OpenSystem(cmd.Context())
	if err != nil {
		return err
	}
	defer src.Close()

	return emit(cmd, src, extractOpts)
}

// emit runs one extraction over src and writes the records.
func emit(cmd *cobra.Command, src clipmeta.Source, o outputOptions) error {
	infos := clipmeta.NewExtractor(src, clipmeta.WithLogger(logger.Component("extract"))).Extract()

	w, closeFn, err := o.open(cmd)
	if err != nil {
		return err
	}
	if err := writeRecords(w, infos, o); err != nil {
		closeFn()
		return fmt.Errorf("failed to write records: %w", err)
	}
	return closeFn()
}
