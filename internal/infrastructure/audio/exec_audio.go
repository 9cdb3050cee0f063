// Package audio shells out to external speech tools. The recognizer must
// print a transcript on stdout; the synthesizer receives the text as its
// final argument. Both are configurable so any STT/TTS pair can be
// plugged in.
package audio

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/ports"
)

// ExecAudio implements the ports.Audio collaborator with external tools.
type ExecAudio struct {
	recognizeCmd []string
	speakCmd     []string
	logger       ports.Logger

	// speech output is serialized so overlapping feedback does not garble
	speakMu sync.Mutex
}

// NewExecAudio builds the adapter from configuration.
func NewExecAudio(cfg domain.Config, log ports.Logger) *ExecAudio {
	return &ExecAudio{
		recognizeCmd: strings.Fields(cfg.Audio.RecognizeCommand),
		speakCmd:     expandSpeakCommand(cfg),
		logger:       log,
	}
}

// expandSpeakCommand substitutes {rate} (words per minute) and {volume}
// (a percentage) placeholders in the synthesizer command.
func expandSpeakCommand(cfg domain.Config) []string {
	rate := cfg.Audio.SpeechRate
	if rate <= 0 {
		rate = 180
	}
	volume := cfg.Audio.SpeechVolume
	if volume <= 0 || volume > 1 {
		volume = 0.9
	}

	fields := strings.Fields(cfg.Audio.SynthesizerCommand)
	for i, field := range fields {
		field = strings.ReplaceAll(field, "{rate}", strconv.Itoa(rate))
		field = strings.ReplaceAll(field, "{volume}", strconv.Itoa(int(volume*100)))
		fields[i] = field
	}
	return fields
}

// Recognize implements ports.Audio. Timeouts and unintelligible input are
// reported as ok=false, never as an error.
func (a *ExecAudio) Recognize(ctx context.Context, timeout time.Duration) (string, bool) {
	if len(a.recognizeCmd) == 0 {
		return "", false
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, a.recognizeCmd[0], a.recognizeCmd[1:]...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		if execCtx.Err() == nil {
			a.logger.Debug("recognizer exited with error", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return "", false
	}

	text := strings.TrimSpace(stdout.String())
	if text == "" {
		return "", false
	}
	return text, true
}

// Speak implements ports.Audio.
func (a *ExecAudio) Speak(text string) error {
	if len(a.speakCmd) == 0 || strings.TrimSpace(text) == "" {
		return nil
	}
	a.speakMu.Lock()
	defer a.speakMu.Unlock()

	args := append(append([]string{}, a.speakCmd[1:]...), text)
	return exec.Command(a.speakCmd[0], args...).Run()
}

var _ ports.Audio = (*ExecAudio)(nil)
