package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JakeFAU/cus-report/internal/docx"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.docx>",
		Short: "Prints the text of a generated report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}
			contents, err := docx.Extract(data)
			if err != nil {
				return fmt.Errorf("extract document: %w", err)
			}
			return printContents(cmd.OutOrStdout(), contents)
		},
	}
}

func printContents(w io.Writer, contents docx.Contents) error {
	var b strings.Builder
	if contents.Title != "" {
		fmt.Fprintf(&b, "# %s\n", contents.Title)
	}
	if contents.Identifier != "" {
		fmt.Fprintf(&b, "run: %s\n", contents.Identifier)
	}
	for _, block := range contents.Blocks {
		if block.IsTable {
			for _, row := range block.Rows {
				b.WriteString(strings.Join(row, "\t"))
				b.WriteByte('\n')
			}
			continue
		}
		if block.Text == "" {
			continue
		}
		b.WriteString(block.Text)
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write contents: %w", err)
	}
	return nil
}
