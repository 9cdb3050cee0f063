package handlers

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/ports"
)

// MediaHandler drives the local music player.
type MediaHandler struct {
	Config domain.Config
	Logger ports.Logger
}

// NewMediaHandler builds the handler.
func NewMediaHandler(cfg domain.Config, log ports.Logger) *MediaHandler {
	return &MediaHandler{Config: cfg, Logger: log}
}

// Play handles the play_music intent. A named song is looked up in the
// music directory; with no name the whole directory is shuffled.
func (h *MediaHandler) Play(ctx context.Context, cmd domain.Command) domain.ExecutionResult {
	player := h.Config.Media.PlayerCommand
	if player == "" {
		return failed("No music player configured", "missing player_command")
	}

	target := h.Config.Media.MusicDir
	song := strings.TrimSpace(cmd.StringEntity("song_or_playlist"))
	if song != "" && song != "music" {
		matches, _ := filepath.Glob(filepath.Join(h.Config.Media.MusicDir, "*"+song+"*"))
		if len(matches) > 0 {
			target = matches[0]
		}
	}
	if target == "" {
		return failed("I don't know where your music lives", "missing music_dir")
	}

	if err := exec.CommandContext(ctx, player, target).Start(); err != nil {
		return failed("I couldn't start the music player", err.Error())
	}

	message := "Playing music"
	if song != "" && song != "music" {
		message = fmt.Sprintf("Playing %s", song)
	}
	return success(message, map[string]any{"target": target})
}

// PauseResume handles the pause_resume_music intent via playerctl.
func (h *MediaHandler) PauseResume(ctx context.Context, _ domain.Command) domain.ExecutionResult {
	if err := exec.CommandContext(ctx, "playerctl", "play-pause").Run(); err != nil {
		return failed("I couldn't reach the music player", err.Error())
	}
	return success("Toggled playback", nil)
}
