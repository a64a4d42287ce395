package assemble

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// Tool wraps an external best-effort utility that re-embeds a searchable text
// layer over a flattened PDF. The canonical tool is ocrmypdf. The tool may be
// entirely absent on the host and may fail; both are reported in the result,
// never as a pipeline failure, since the flattened document always stands on
// its own.
type Tool struct {
	// Command is the executable name or path. Empty means "ocrmypdf".
	Command string

	// Timeout bounds a single invocation. Zero means no timeout beyond the
	// caller's context.
	Timeout time.Duration
}

// ToolResult is the outcome of one tool invocation.
// Callers can distinguish "tool absent" (ToolMissing) from "tool ran and
// failed" (Err set, ToolMissing false).
type ToolResult struct {
	Path        string // output path, valid only when Succeeded
	ToolMissing bool
	Err         error
}

// Succeeded reports whether the tool produced a searchable document.
func (r ToolResult) Succeeded() bool { return r.Err == nil }

// Apply runs the tool on the flattened PDF at inPath, writing the searchable
// version to outPath. The invocation is synchronous and cancellable via ctx;
// cancellation cannot corrupt inPath because the tool only reads it.
func (t Tool) Apply(ctx context.Context, inPath, outPath string) ToolResult {
	command := t.Command
	if command == "" {
		command = "ocrmypdf"
	}

	path, err := exec.LookPath(command)
	if err != nil {
		return ToolResult{ToolMissing: true, Err: fmt.Errorf("%s not found: %w", command, err)}
	}

	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, path,
		"--force-ocr", "--skip-text", "--output-type", "pdf", inPath, outPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return ToolResult{Err: fmt.Errorf("%s failed: %w: %s", command, err, out)}
	}
	return ToolResult{Path: outPath}
}
