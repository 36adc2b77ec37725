// Command keystroke is a match hook for macOS that sends the keystroke named
// in its hook.json config via AppleScript.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ayusman/sigil/internal/hook"
)

// Keystroke is the hook config: one key per template name, or a default.
type Keystroke struct {
	Key       string   `json:"key"`
	Modifiers []string `json:"modifiers"` // command, option, control, shift
}

type keystrokeConfig struct {
	Keystroke
	Templates map[string]Keystroke `json:"templates"`
}

var modifierMap = map[string]string{
	"command": "command down",
	"cmd":     "command down",
	"option":  "option down",
	"alt":     "option down",
	"control": "control down",
	"ctrl":    "control down",
	"shift":   "shift down",
}

func main() {
	var req hook.Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResponse(hook.Response{Error: fmt.Sprintf("failed to decode request: %v", err)})
		return
	}

	ks, err := keystrokeFor(&req)
	if err != nil {
		writeResponse(hook.Response{Error: err.Error()})
		return
	}
	if err := runAppleScript(buildKeystrokeScript(ks.Key, ks.Modifiers)); err != nil {
		writeResponse(hook.Response{Error: fmt.Sprintf("keystroke for %s failed: %v", req.Template, err)})
		return
	}

	data, _ := json.Marshal(ks)
	writeResponse(hook.Response{Success: true, Data: data})
}

// keystrokeFor picks the keystroke configured for the recognized template.
func keystrokeFor(req *hook.Request) (Keystroke, error) {
	var cfg keystrokeConfig
	if len(req.Config) > 0 {
		if err := json.Unmarshal(req.Config, &cfg); err != nil {
			return Keystroke{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	ks, ok := cfg.Templates[req.Template]
	if !ok {
		ks = cfg.Keystroke
	}
	if ks.Key == "" {
		return Keystroke{}, fmt.Errorf("no key configured for %s", req.Template)
	}
	return ks, nil
}

func buildKeystrokeScript(key string, modifiers []string) string {
	var appleModifiers []string
	for _, mod := range modifiers {
		if appleMod, ok := modifierMap[strings.ToLower(mod)]; ok {
			appleModifiers = append(appleModifiers, appleMod)
		}
	}

	if len(appleModifiers) == 0 {
		return fmt.Sprintf(`tell application "System Events" to keystroke "%s"`, key)
	}
	return fmt.Sprintf(`tell application "System Events" to keystroke "%s" using {%s}`, key, strings.Join(appleModifiers, ", "))
}

func writeResponse(resp hook.Response) {
	json.NewEncoder(os.Stdout).Encode(resp)
}

func runAppleScript(script string) error {
	cmd := exec.Command("osascript", "-e", script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}
