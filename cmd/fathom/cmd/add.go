package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fathom-search/fathom/internal/output"
	"github.com/fathom-search/fathom/internal/store"
)

var (
	flagAddTitle string
	flagAddFile  string
)

var addCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Add a document to the corpus",
	Long: `Add stores a document, embeds it and indexes it for retrieval.
Content comes from the argument, --file, or stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&flagAddTitle, "title", "t", "", "document title (required)")
	addCmd.Flags().StringVarP(&flagAddFile, "file", "f", "", "read content from file")
	_ = addCmd.MarkFlagRequired("title")

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	content, err := readContent(args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("document content is empty")
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	embedder, err := a.provider.Get(ctx)
	if err != nil {
		return fmt.Errorf("embedding provider unavailable: %w", err)
	}

	vec, err := embedder.Embed(ctx, flagAddTitle+"\n"+content)
	if err != nil {
		return fmt.Errorf("failed to embed document: %w", err)
	}

	doc := &store.DocumentRecord{
		ID:        uuid.NewString(),
		Title:     flagAddTitle,
		Content:   content,
		Embedding: vec,
	}
	if err := a.docs.SaveDocument(ctx, doc); err != nil {
		return err
	}

	if err := a.ensureIndex(len(vec)); err != nil {
		return err
	}
	if err := a.vectors.Index(ctx, doc); err != nil {
		return err
	}

	output.New(os.Stdout).Success("added %q (%s)", doc.Title, doc.ID)
	return nil
}

// readContent resolves document content from the argument, a file, or
// stdin, in that order.
func readContent(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if flagAddFile != "" {
		data, err := os.ReadFile(flagAddFile)
		if err != nil {
			return "", fmt.Errorf("cannot read %s: %w", flagAddFile, err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("cannot read stdin: %w", err)
	}
	return string(data), nil
}
