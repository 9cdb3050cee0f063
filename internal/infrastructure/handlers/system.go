package handlers

import (
	"context"
	"os/exec"

	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/ports"
)

// SystemHandler performs shutdown and restart. These intents only reach a
// handler after passing the confirmation gate.
type SystemHandler struct {
	Config domain.Config
	Logger ports.Logger
}

// NewSystemHandler builds the handler.
func NewSystemHandler(cfg domain.Config, log ports.Logger) *SystemHandler {
	return &SystemHandler{Config: cfg, Logger: log}
}

// Shutdown handles the shutdown_system intent.
func (h *SystemHandler) Shutdown(ctx context.Context, _ domain.Command) domain.ExecutionResult {
	if !h.Config.System.AllowShutdown {
		return failed("Shutdown is disabled in configuration", "allow_shutdown is false")
	}
	h.Logger.Warn("initiating system shutdown", nil)
	if err := exec.CommandContext(ctx, "systemctl", "poweroff").Run(); err != nil {
		return failed("I couldn't shut the system down", err.Error())
	}
	return success("Shutting down the system", nil)
}

// Restart handles the restart_system intent.
func (h *SystemHandler) Restart(ctx context.Context, _ domain.Command) domain.ExecutionResult {
	if !h.Config.System.AllowShutdown {
		return failed("Restart is disabled in configuration", "allow_shutdown is false")
	}
	h.Logger.Warn("initiating system restart", nil)
	if err := exec.CommandContext(ctx, "systemctl", "reboot").Run(); err != nil {
		return failed("I couldn't restart the system", err.Error())
	}
	return success("Restarting the system", nil)
}
