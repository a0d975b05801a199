package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/areflesh/text-annot/internal/core/domain"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export annotations as JSON or a table",
	Long: `Export the annotations of a file.

Without flags a table is printed when stdout is a terminal and JSON
otherwise. Use -o to write the JSON to a file; when the path is a directory
the file is named annotations_<name>.json.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Write the JSON export to this path")
	exportCmd.Flags().Bool("json", false, "Print JSON")
	exportCmd.Flags().Bool("table", false, "Print a table")
	exportCmd.MarkFlagsMutuallyExclusive("json", "table")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	asJSON, _ := cmd.Flags().GetBool("json")
	asTable, _ := cmd.Flags().GetBool("table")

	session, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	export := session.Export()

	if output != "" {
		path, err := writeExport(export, output)
		if err != nil {
			return err
		}
		cmd.Printf("Exported %d annotations to %s\n", export.AnnotatedSentences, path)
		return nil
	}

	if !asJSON && !asTable {
		asTable = cmd.OutOrStdout() == os.Stdout && isTerminal(os.Stdout)
	}

	if asTable {
		cmd.Println(renderExportTable(export))
		cmd.Printf("%d of %d sentences annotated across %d captions\n",
			export.AnnotatedSentences, export.TotalSentences, export.TotalCaptions)
		return nil
	}

	data, err := encodeExport(export)
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}

func encodeExport(export *domain.Export) ([]byte, error) {
	indent := true
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			indent = settings.Export.Indent
		}
	}

	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(export, "", "  ")
	} else {
		data, err = json.Marshal(export)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return data, nil
}

// writeExport writes the export to output, or into it when output is a
// directory. Returns the path written.
func writeExport(export *domain.Export, output string) (string, error) {
	path := output
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		path = filepath.Join(output, domain.ExportFileName(export.Filename))
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	data, err := encodeExport(export)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func renderExportTable(export *domain.Export) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Caption", "Sentence", "Text", "Subject", "Predicate", "Object").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	for _, r := range export.Rows() {
		t.Row(
			strconv.Itoa(r.CaptionIndex+1),
			strconv.Itoa(r.SentenceIndex+1),
			r.Sentence,
			r.Subject,
			r.Predicate,
			r.Object,
		)
	}
	return t.String()
}
