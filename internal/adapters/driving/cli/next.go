package cli

import (
	"github.com/spf13/cobra"

	"github.com/areflesh/text-annot/internal/core/domain"
)

var nextCmd = &cobra.Command{
	Use:   "next <file>",
	Short: "Find the next sentence without an annotation",
	Long: `Print the first unannotated sentence of a file.

With --from, the search starts strictly after the given key and does not
wrap around to the start of the file.`,
	Args: cobra.ExactArgs(1),
	RunE: runNext,
}

func init() {
	nextCmd.Flags().String("from", "", "Search after this key, e.g. 2_0")
	rootCmd.AddCommand(nextCmd)
}

func runNext(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")

	session, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}

	var (
		key domain.Key
		ok  bool
	)
	if from == "" {
		key, ok = firstUnannotated(session)
	} else {
		start, err := domain.ParseKey(from)
		if err != nil {
			return err
		}
		if err := session.MoveTo(start); err != nil {
			return err
		}
		key, ok = session.NextUnannotated()
	}

	if !ok {
		if from == "" {
			cmd.Println("All sentences are annotated.")
		} else {
			cmd.Printf("No unannotated sentence after %s.\n", from)
		}
		return nil
	}

	sentence, _ := session.Document().Sentence(key)
	cmd.Printf("%s (%s): %s\n", key, describeKey(key), sentence.Text)
	return nil
}
