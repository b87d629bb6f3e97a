package summarizer

import "fmt"

const summaryPrompt = `You are a helpful assistant. Please strictly summarize the following text into a concise and clear summary.
Do not repeat yourself. Capture the main points.

TEXT:
%s

SUMMARY:
`

// BuildPrompt wraps text in the fixed summarization instruction.
func BuildPrompt(text string) string {
	return fmt.Sprintf(summaryPrompt, text)
}

const (
	msgConnect  = "Error: Could not connect to the language model server at %s. Is it running? (Run 'ollama serve' in a terminal)"
	msgGenerate = "Error generating summary: %v"
)
