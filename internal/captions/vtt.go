package captions

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Cue is one timed caption block.
type Cue struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

var (
	// 00:01:02.345 --> 00:01:04.000 align:start position:0%
	reTiming = regexp.MustCompile(`^((?:\d+:)?\d{2}:\d{2}[.,]\d{3})\s+-->\s+((?:\d+:)?\d{2}:\d{2}[.,]\d{3})`)
	reTag    = regexp.MustCompile(`<[^>]*>`)
)

// ParseVTT reads WebVTT content into cues in file order. Header, NOTE,
// STYLE and REGION blocks are skipped; inline tags are stripped.
func ParseVTT(r io.Reader) ([]Cue, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var (
		cues    []Cue
		current *Cue
		lines   []string
		skip    bool
	)

	flush := func() {
		if current != nil {
			current.Text = strings.Join(lines, "\n")
			if current.Text != "" {
				cues = append(cues, *current)
			}
		}
		current = nil
		lines = nil
		skip = false
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			flush()
			continue
		}
		if skip {
			continue
		}

		if current == nil {
			if m := reTiming.FindStringSubmatch(trimmed); m != nil {
				start, err := parseTimestamp(m[1])
				if err != nil {
					return nil, err
				}
				end, err := parseTimestamp(m[2])
				if err != nil {
					return nil, err
				}
				current = &Cue{Start: start, End: end}
				continue
			}
			if strings.HasPrefix(trimmed, "WEBVTT") || strings.HasPrefix(trimmed, "NOTE") ||
				strings.HasPrefix(trimmed, "STYLE") || strings.HasPrefix(trimmed, "REGION") {
				skip = true
			}
			// Anything else before a timing line is a cue identifier or header metadata.
			continue
		}

		text := strings.TrimSpace(reTag.ReplaceAllString(trimmed, ""))
		if text != "" {
			lines = append(lines, html.UnescapeString(text))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vtt: %w", err)
	}
	flush()

	return cues, nil
}

// JoinCues discards timing and concatenates cue text with single spaces.
// Auto-generated tracks repeat the previous line at the top of each cue;
// a line equal to the one just emitted is dropped.
func JoinCues(cues []Cue) string {
	var (
		out  []string
		prev string
	)
	for _, c := range cues {
		for _, line := range strings.Split(c.Text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || line == prev {
				continue
			}
			out = append(out, line)
			prev = line
		}
	}
	return strings.Join(out, " ")
}

func parseTimestamp(ts string) (time.Duration, error) {
	ts = strings.Replace(ts, ",", ".", 1)
	parts := strings.Split(ts, ":")

	var h, m int
	var err error
	switch len(parts) {
	case 3:
		if h, err = strconv.Atoi(parts[0]); err != nil {
			return 0, fmt.Errorf("bad timestamp %q: %w", ts, err)
		}
		parts = parts[1:]
	case 2:
	default:
		return 0, fmt.Errorf("bad timestamp %q", ts)
	}

	if m, err = strconv.Atoi(parts[0]); err != nil {
		return 0, fmt.Errorf("bad timestamp %q: %w", ts, err)
	}
	sec, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, fmt.Errorf("bad timestamp %q: %w", ts, err)
	}

	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(sec*float64(time.Second)).Round(time.Millisecond), nil
}
