package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/tube-digest/internal/processor"
	"github.com/nguyentantai21042004/tube-digest/internal/summarizer"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [URL]",
	Short: "Summarize a single video and print the result",
	Example: `  digest summarize "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

  # Also write a Word document
  digest summarize https://youtu.be/dQw4w9WgXcQ --docx summary.docx`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		res, err := a.processor.Process(cmd.Context(), args[0])
		if err != nil {
			return errors.New(processor.UserMessage(err))
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n\n", res.Title)
		fmt.Fprintf(out, "%s\n\n", res.Summary)
		fmt.Fprintf(out, "--- transcript (%s) ---\n%s\n", res.Source, res.TranscriptPreview)

		docxPath, _ := cmd.Flags().GetString("docx")
		if docxPath == "" {
			return nil
		}
		data, err := summarizer.Export(res.Title, res.Summary, res.TranscriptPreview)
		if err != nil {
			return fmt.Errorf("export docx: %w", err)
		}
		return os.WriteFile(docxPath, data, 0644)
	},
}

func init() {
	summarizeCmd.Flags().String("docx", "", "also write the result as a .docx file")
	rootCmd.AddCommand(summarizeCmd)
}
