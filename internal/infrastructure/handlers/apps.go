package handlers

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/ports"
)

// AppsHandler launches and terminates desktop applications.
type AppsHandler struct {
	Logger ports.Logger

	// aliases maps spoken names to executable names.
	aliases map[string]string
	// allowUnknown permits launching applications outside the alias
	// table by their spoken name.
	allowUnknown bool
}

// NewAppsHandler builds the handler with common spoken-name aliases.
func NewAppsHandler(cfg domain.Config, log ports.Logger) *AppsHandler {
	return &AppsHandler{
		Logger:       log,
		allowUnknown: cfg.System.OpenAppAllowUnknown,
		aliases: map[string]string{
			"chrome":        "google-chrome",
			"google chrome": "google-chrome",
			"code":          "code",
			"vs code":       "code",
			"visual studio": "code",
			"files":         "nautilus",
			"file manager":  "nautilus",
			"browser":       "xdg-open",
			"text editor":   "gedit",
		},
	}
}

// Open handles the open_app intent.
func (h *AppsHandler) Open(ctx context.Context, cmd domain.Command) domain.ExecutionResult {
	app := strings.ToLower(strings.TrimSpace(cmd.StringEntity("app_name")))
	if app == "" {
		return failed("I need an application name", "missing app_name entity")
	}

	executable, known := h.resolveExecutable(app)
	if !known && !h.allowUnknown {
		return failed(fmt.Sprintf("I don't know the application %s", app), "app_name not in the known set")
	}
	if err := exec.CommandContext(ctx, executable).Start(); err != nil {
		// desktop launcher as a second chance
		launcher := strings.ReplaceAll(app, " ", "-")
		if lerr := exec.CommandContext(ctx, "gtk-launch", launcher).Start(); lerr != nil {
			return failed(fmt.Sprintf("I couldn't open %s", app), err.Error())
		}
	}

	h.Logger.Info("application launched", map[string]interface{}{"app": app})
	return success(fmt.Sprintf("Opening %s", app), map[string]any{"app_name": app})
}

// Close handles the close_app intent.
func (h *AppsHandler) Close(ctx context.Context, cmd domain.Command) domain.ExecutionResult {
	app := strings.ToLower(strings.TrimSpace(cmd.StringEntity("app_name")))
	if app == "" {
		return failed("I need an application name", "missing app_name entity")
	}

	executable, _ := h.resolveExecutable(app)
	if err := exec.CommandContext(ctx, "pkill", "-f", executable).Run(); err != nil {
		if kerr := exec.CommandContext(ctx, "killall", executable).Run(); kerr != nil {
			return failed(fmt.Sprintf("I couldn't find %s running", app), err.Error())
		}
	}

	h.Logger.Info("application closed", map[string]interface{}{"app": app})
	return success(fmt.Sprintf("Closing %s", app), map[string]any{"app_name": app})
}

func (h *AppsHandler) resolveExecutable(app string) (string, bool) {
	if alias, ok := h.aliases[app]; ok {
		return alias, true
	}
	if runtime.GOOS == "darwin" {
		return app, false
	}
	return strings.ReplaceAll(app, " ", "-"), false
}
