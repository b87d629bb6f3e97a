package processor

import "unicode/utf8"

const previewLen = 500

// Preview returns transcript unchanged when it has at most 500 characters,
// otherwise its first 500 characters followed by an ellipsis.
func Preview(transcript string) string {
	if utf8.RuneCountInString(transcript) <= previewLen {
		return transcript
	}
	runes := []rune(transcript)
	return string(runes[:previewLen]) + "…"
}
