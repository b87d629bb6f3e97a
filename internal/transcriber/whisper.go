package transcriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// whisper_full_with_state: auto-detected language: en (p = 0.973654)
var reDetected = regexp.MustCompile(`auto-detected language:\s*(\S+)\s*\(p\s*=\s*([0-9.]+)\)`)

type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Text string `json:"text"`
	} `json:"transcription"`
}

// Transcribe converts audioPath to 16kHz mono WAV, runs whisper.cpp on it
// and returns the segment texts joined with single spaces.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if _, err := os.Stat(audioPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrAudioNotFound, audioPath)
		}
		return "", fmt.Errorf("stat audio: %w", err)
	}

	wavPath, err := t.toWAV(ctx, audioPath)
	if err != nil {
		return "", err
	}
	defer t.cleanupTempFile(ctx, wavPath)

	outputPrefix := strings.TrimSuffix(wavPath, filepath.Ext(wavPath))
	jsonPath := outputPrefix + ".json"
	defer t.cleanupTempFile(ctx, jsonPath)

	t.logger.Info(ctx, "Starting transcription with %d threads, beam %d: %s",
		t.opts.Threads, t.opts.BeamSize, audioPath)

	// -m: Model path
	// -f: Input audio file
	// -l: Language ("auto" lets whisper detect it)
	// -t: Number of threads
	// -bs: Beam size
	// -oj: Output JSON
	// -of: Output file prefix
	args := []string{
		"-m", t.opts.ModelPath,
		"-f", wavPath,
		"-l", t.opts.Language,
		"-t", strconv.Itoa(t.opts.Threads),
		"-bs", strconv.Itoa(t.opts.BeamSize),
		"-oj",
		"-of", outputPrefix,
	}

	_, stderr, err := t.executor.ExecuteCombined(ctx, t.opts.BinaryPath, args...)
	if err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("parse whisper output: %w", err)
	}

	t.logDetectedLanguage(ctx, stderr, out.Result.Language)

	segments := make([]string, 0, len(out.Transcription))
	for _, s := range out.Transcription {
		if text := strings.TrimSpace(s.Text); text != "" {
			segments = append(segments, text)
		}
	}

	t.logger.Info(ctx, "Transcription completed: %d segments", len(segments))
	return strings.Join(segments, " "), nil
}

// toWAV extracts audio into 16kHz mono PCM, the only input whisper.cpp
// reads without being built against ffmpeg.
func (t *implTranscriber) toWAV(ctx context.Context, audioPath string) (string, error) {
	wavPath := strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + "_16k.wav"

	// -vn: No video
	// -ar 16000: Sample rate 16kHz
	// -ac 1: Mono
	// -c:a pcm_s16le: PCM 16-bit little-endian
	// -y: Overwrite output file if exists
	args := []string{
		"-i", audioPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		wavPath,
	}

	if _, err := t.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		t.cleanupTempFile(ctx, wavPath)
		return "", fmt.Errorf("ffmpeg convert audio: %w", err)
	}
	return wavPath, nil
}

func (t *implTranscriber) logDetectedLanguage(ctx context.Context, stderr, fallback string) {
	if m := reDetected.FindStringSubmatch(stderr); m != nil {
		t.logger.Info(ctx, "Detected language '%s' with probability %s", m[1], m[2])
		return
	}
	if fallback != "" {
		t.logger.Info(ctx, "Transcription language '%s'", fallback)
	}
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (t *implTranscriber) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		t.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	}
}
