package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/areflesh/text-annot/internal/core/domain"
)

var segmentCmd = &cobra.Command{
	Use:   "segment <file>",
	Short: "Show how a file splits into captions and sentences",
	Long: `Split a text file into captions (one per non-blank line) and sentences,
and print each sentence with the key annotations are stored under.

Sentences that already have an annotation are marked with *.`,
	Args: cobra.ExactArgs(1),
	RunE: runSegment,
}

func init() {
	segmentCmd.Flags().Bool("json", false, "Print the segmented document as JSON")
	rootCmd.AddCommand(segmentCmd)
}

func runSegment(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	session, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	doc := session.Document()

	if asJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding document: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("%s: %d captions, %d sentences\n", doc.Filename, doc.CaptionCount(), doc.SentenceCount())
	for _, c := range doc.Captions {
		cmd.Println()
		cmd.Printf("Caption %d: %s\n", c.Index+1, c.Text)
		for _, s := range c.Sentences {
			key := domain.NewKey(c.Index, s.Index)
			mark := " "
			if session.IsAnnotated(key) {
				mark = "*"
			}
			cmd.Printf("  %s %-6s %s\n", mark, key, s.Text)
		}
	}
	return nil
}
