package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fathom-search/fathom/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		docs, err := a.docs.ListAll(ctx)
		if err != nil {
			return err
		}

		w := output.New(os.Stdout)
		if len(docs) == 0 {
			w.Printf("no documents stored")
			return nil
		}
		for _, d := range docs {
			w.Printf("%s  %s  (%s)", d.ID, d.Title, d.CreatedAt.Format("2006-01-02"))
		}
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a document from the corpus",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.docs.DeleteDocument(ctx, args[0]); err != nil {
			return err
		}
		if a.index != nil {
			if err := a.index.Delete(ctx, []string{args[0]}); err != nil {
				a.logger.Warn("failed to drop vector", "id", args[0], "error", err)
			}
		}

		output.New(os.Stdout).Success("removed %s", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(removeCmd)
}
