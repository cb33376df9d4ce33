package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ErrExport covers failed screenshot/PDF captures. Callers treat it as
// best-effort: logged and swallowed, never a pipeline failure.
var ErrExport = errors.New("export failed")

const captureTimeout = 90 * time.Second

// Exporter rasterizes a generated HTML page to PNG or PDF by driving an
// external headless chromium binary. The browser's internal page lifecycle
// is opaque here; the capture is one blocking call.
type Exporter struct {
	browserBin string
	format     string
}

func NewExporter(browserBin, format string) *Exporter {
	return &Exporter{browserBin: browserBin, format: format}
}

// Enabled reports whether a browser binary is configured.
func (e *Exporter) Enabled() bool {
	return e.browserBin != ""
}

// OutputPath derives the export target next to the HTML source.
func (e *Exporter) OutputPath(htmlPath string) string {
	return strings.TrimSuffix(htmlPath, filepath.Ext(htmlPath)) + "." + e.format
}

// Run captures htmlPath into outPath. The context bounds the whole browser
// invocation; any failure is ErrExport.
func (e *Exporter) Run(ctx context.Context, htmlPath, outPath string) error {
	if !e.Enabled() {
		return fmt.Errorf("%w: no browser binary configured", ErrExport)
	}

	absSource, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrExport, err)
	}
	if _, err := os.Stat(absSource); err != nil {
		return fmt.Errorf("%w: source missing: %s", ErrExport, htmlPath)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("%w: %s", ErrExport, err)
	}

	args := []string{
		"--headless=new",
		"--disable-gpu",
		"--no-sandbox",
		"--hide-scrollbars",
		"--window-size=480,800",
		"--virtual-time-budget=5000", // lets fonts and layout settle before capture
	}
	if strings.HasSuffix(strings.ToLower(outPath), ".pdf") {
		args = append(args, "--no-pdf-header-footer", "--print-to-pdf="+outPath)
	} else {
		args = append(args, "--screenshot="+outPath)
	}
	args = append(args, "file://"+absSource)

	captureCtx, cancel := context.WithTimeout(ctx, captureTimeout)
	defer cancel()

	cmd := exec.CommandContext(captureCtx, e.browserBin, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrExport, err, strings.TrimSpace(string(output)))
	}

	slog.Info("Export captured", "source", htmlPath, "target", outPath)
	return nil
}
