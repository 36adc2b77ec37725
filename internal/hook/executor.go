package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"
)

// Environment variables set for every hook run, so shell hooks can act on
// the match without parsing stdin.
const (
	EnvTemplate   = "SIGIL_TEMPLATE"
	EnvTemplateID = "SIGIL_TEMPLATE_ID"
	EnvDistance   = "SIGIL_DISTANCE"
	EnvScore      = "SIGIL_SCORE"
	EnvHookDir    = "SIGIL_HOOK_DIR"
)

// Executor runs hooks with a timeout.
type Executor struct {
	timeoutMs int
}

// NewExecutor creates a new Executor with the specified timeout in milliseconds.
func NewExecutor(timeoutMs int) *Executor {
	return &Executor{
		timeoutMs: timeoutMs,
	}
}

// Execute runs a hook for a match. The request goes to the hook's stdin as
// JSON and is mirrored in the SIGIL_* environment variables; stdout must
// hold a Response.
func (e *Executor) Execute(hook *Hook, req *Request) (*Response, error) {
	input, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	out, err := e.run(hook, req, input)
	if err != nil {
		return nil, err
	}

	var response Response
	if err := json.Unmarshal(out, &response); err != nil {
		return nil, fmt.Errorf("failed to parse hook response: %w, stdout: %s", err, out)
	}
	return &response, nil
}

func (e *Executor) run(hook *Hook, req *Request, input []byte) ([]byte, error) {
	timeout := time.Duration(e.timeoutMs) * time.Millisecond
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, hook.Executable)
	cmd.Dir = hook.Path
	cmd.Env = append(os.Environ(), hookEnv(hook, req)...)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Children of the hook may hold stdout open after it is killed.
	cmd.WaitDelay = time.Second

	err := cmd.Run()
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return nil, fmt.Errorf("hook %s timeout after %dms", hook.Manifest.Name, e.timeoutMs)
	case err != nil && stderr.Len() > 0:
		return nil, fmt.Errorf("hook %s failed: %w, stderr: %s", hook.Manifest.Name, err, stderr.String())
	case err != nil:
		return nil, fmt.Errorf("hook %s failed: %w", hook.Manifest.Name, err)
	}
	return stdout.Bytes(), nil
}

func hookEnv(hook *Hook, req *Request) []string {
	return []string{
		EnvTemplate + "=" + req.Template,
		EnvTemplateID + "=" + req.TemplateID,
		EnvDistance + "=" + strconv.FormatFloat(req.Distance, 'f', -1, 64),
		EnvScore + "=" + strconv.FormatFloat(req.Score, 'f', -1, 64),
		EnvHookDir + "=" + hook.Path,
	}
}
