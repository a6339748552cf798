package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"clipmeta"
	"clipmeta/internal/config"
)

// outputOptions are the record output flags shared by extract, inspect
// and watch. Flags left unset fall back to the config file.
type outputOptions struct {
	format string
	pretty bool
	human  bool
	output string
}

func (o *outputOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVarP(&o.format, "format", "f", "json", "Output format (json, text)")
	cmd.Flags().BoolVar(&o.pretty, "pretty", true, "Indent JSON output")
	cmd.Flags().BoolVar(&o.human, "human", true, "Human readable sizes in text output")
}

// resolve fills unset flags from the config.
func (o *outputOptions) resolve(cmd *cobra.Command, c *config.Config) error {
	if !cmd.Flags().Changed("format") {
		o.format = c.Output.Format
	}
	if !cmd.Flags().Changed("pretty") {
		o.pretty = c.Output.Pretty
	}
	if !cmd.Flags().Changed("human") {
		o.human = c.Output.HumanSizes
	}
	switch o.format {
	case "json", "text":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", o.format)
	}
}

// open returns the destination writer and a function that closes it.
func (o *outputOptions) open(cmd *cobra.Command) (io.Writer, func() error, error) {
	if o.output == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.OpenFile(o.output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open output file: %w", err)
	}
	return f, f.Close, nil
}

// writeRecords renders one extraction result.
func writeRecords(w io.Writer, infos []clipmeta.ImageInfo, o outputOptions) error {
	switch o.format {
	case "text":
		_, err := io.WriteString(w, formatText(infos, o.human))
		return err
	default:
		var data []byte
		var err error
		if o.pretty {
			data, err = json.MarshalIndent(infos, "", "  ")
		} else {
			data, err = json.Marshal(infos)
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}

func formatText(infos []clipmeta.ImageInfo, human bool) string {
	if len(infos) == 0 {
		return "clipboard is empty\n"
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tFORMAT\tDIMENSIONS\tSIZE\tTYPE")
	for _, info := range infos {
		dims := "-"
		switch {
		case info.Dimensions != nil:
			dims = fmt.Sprintf("%dx%d", info.Dimensions.Width, info.Dimensions.Height)
		case info.Error != clipmeta.ErrorNone:
			dims = string(info.Error)
		}

		size := fmt.Sprintf("%d B", info.SizeBytes)
		if human {
			size = humanize.Bytes(uint64(info.SizeBytes))
		}

		declared := info.DeclaredType
		if declared == "" {
			declared = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", info.Index, info.Format, dims, size, declared)
	}
	tw.Flush()
	return sb.String()
}
