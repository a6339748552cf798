package cli

import (
	"github.com/spf13/cobra"

	"clipmeta/clipboard"
)

var inspectOpts outputOptions

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>...",
	Short: "Report image metadata for files as if they were clipboard items",
	Long: `Loads each file as one clipboard item, in argument order, and prints one
record per file. The declared type of each item is the MIME type of its
extension.

Examples:
  clipmeta inspect photo.heic screenshot.png
  clipmeta inspect *.jpg --format text`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectOpts.addFlags(inspectCmd)
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if err := inspectOpts.resolve(cmd, cfg); err != nil {
		return err
	}

	src, err := clipboard.FromFiles(args...)
	if err != nil {
		return err
	}
	return emit(cmd, src, inspectOpts)
}
