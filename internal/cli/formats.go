package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"clipmeta/formats"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List recognized image signatures",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "FORMAT\tSIGNATURE\tMAGIC")
		for _, sig := range formats.Signatures {
			fmt.Fprintf(w, "%s\t%s\t%s\n", sig.Format, sig.Name, magicString(sig.Magic))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

// magicString renders a signature as hex bytes, with ?? for wildcards.
func magicString(magic string) string {
	parts := make([]string, len(magic))
	for i := 0; i < len(magic); i++ {
		if magic[i] == '?' {
			parts[i] = "??"
		} else {
			parts[i] = fmt.Sprintf("%02X", magic[i])
		}
	}
	return strings.Join(parts, " ")
}
