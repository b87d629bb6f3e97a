package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/tube-digest/internal/config"
	"github.com/nguyentantai21042004/tube-digest/internal/summarizer"
	"github.com/nguyentantai21042004/tube-digest/pkg/executor"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify external tools, the whisper model and the LLM backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		failed := 0
		report := func(name string, err error) {
			if err != nil {
				failed++
				fmt.Fprintf(out, "FAIL  %-12s %v\n", name, err)
				return
			}
			fmt.Fprintf(out, "ok    %s\n", name)
		}

		for _, bin := range tools(cfg) {
			_, err := executor.LookPath(bin)
			report(bin, err)
		}

		report("model", checkModel(cfg.Whisper.ModelPath))

		_, err = summarizer.New(cmd.Context(), summarizerOptions(cfg), log)
		report(cfg.Summarizer.Backend, err)

		if failed > 0 {
			return fmt.Errorf("%d check(s) failed", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func tools(cfg *config.Config) []string {
	return []string{cfg.Tools.YtDlp, "ffmpeg", cfg.Whisper.BinaryPath}
}

func checkModel(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
