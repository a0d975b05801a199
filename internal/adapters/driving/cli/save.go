package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/areflesh/text-annot/internal/core/domain"
)

var saveCmd = &cobra.Command{
	Use:   "save <file>",
	Short: "Save one annotation without the terminal UI",
	Long: `Store a subject, predicate and object for one sentence of a file.

The sentence is addressed by its key, "<caption>_<sentence>", counting from
zero as printed by the segment command. An existing annotation is replaced.`,
	Example: `  textannot save captions.txt --key 0_1 --subject cat --predicate sleeps --object sofa`,
	Args:    cobra.ExactArgs(1),
	RunE:    runSave,
}

func init() {
	saveCmd.Flags().StringP("key", "k", "", "Sentence key, e.g. 0_1")
	saveCmd.Flags().StringP("subject", "s", "", "Subject")
	saveCmd.Flags().StringP("predicate", "p", "", "Predicate")
	saveCmd.Flags().StringP("object", "o", "", "Object")
	_ = saveCmd.MarkFlagRequired("key")
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	rawKey, _ := cmd.Flags().GetString("key")
	subject, _ := cmd.Flags().GetString("subject")
	predicate, _ := cmd.Flags().GetString("predicate")
	object, _ := cmd.Flags().GetString("object")

	key, err := domain.ParseKey(rawKey)
	if err != nil {
		return err
	}

	session, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	if err := session.MoveTo(key); err != nil {
		return err
	}

	a, err := session.Save(cmd.Context(), domain.Triple{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return fmt.Errorf("%w (use --subject, --predicate and --object)", err)
		}
		return err
	}

	cmd.Printf("Saved %s: %q\n", key, a.Sentence)
	cmd.Printf("  (%s, %s, %s)\n", a.Subject, a.Predicate, a.Object)
	cmd.Printf("Stored in %s\n", session.StorePath())
	return nil
}
