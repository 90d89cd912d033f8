package doxygen

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// RunDoxygen executes the extractor against doxyfile inside dir, producing
// the intermediate XML. A non-zero exit is fatal to the run.
func RunDoxygen(doxyfile, dir string) error {
	cmd := exec.Command("doxygen", doxyfile)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	slog.Info("Running doxygen", "doxyfile", doxyfile, "dir", dir)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("doxygen failed: %w", err)
	}
	return nil
}

// RunGenerator executes the m.css doxygen.py renderer against the
// preprocessed XML, producing the HTML pages this tool then repairs.
func RunGenerator(script, doxyfile, dir string, debug bool) error {
	python := "python3"
	if _, err := exec.LookPath("py"); err == nil {
		python = "py"
	}
	args := []string{script, doxyfile, "--no-doxygen"}
	if debug {
		args = append(args, "--debug")
	}
	cmd := exec.Command(python, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	slog.Info("Running HTML generator", "script", script, "dir", dir)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("html generator failed: %w", err)
	}
	return nil
}
