package platform

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/blackwell-systems/gamedock/internal/catalog"
)

// Runner starts external programs without waiting for them.
type Runner interface {
	// Open hands a URL or file to the desktop's default handler.
	Open(target string) error
	// Start runs a program with arguments.
	Start(name string, args ...string) error
}

// ExecRunner is the Runner backed by os/exec.
type ExecRunner struct{}

// Open uses open, start or xdg-open depending on the OS.
func (ExecRunner) Open(target string) error {
	var cmdName string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmdName = "open"
		args = []string{target}
	case "windows":
		cmdName = "cmd"
		args = []string{"/c", "start", "", target}
	default: // linux, freebsd, etc.
		cmdName = "xdg-open"
		args = []string{target}
	}

	c := exec.Command(cmdName, args...)
	if err := c.Start(); err != nil {
		return fmt.Errorf("opening %q with %q: %w", target, cmdName, err)
	}
	return c.Process.Release()
}

// Start launches name detached from gamedock.
func (ExecRunner) Start(name string, args ...string) error {
	c := exec.Command(name, args...)
	if err := c.Start(); err != nil {
		return fmt.Errorf("starting %q: %w", name, err)
	}
	return c.Process.Release()
}

// runCommandLine starts a stored launch or uninstall string. URLs go to the
// desktop handler, an existing path runs as-is, and anything else is split
// on whitespace.
func runCommandLine(run Runner, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return ErrNoLaunchCommand
	}
	if strings.Contains(line, "://") {
		return run.Open(line)
	}
	if _, err := os.Stat(line); err == nil {
		return run.Start(line)
	}
	fields := strings.Fields(line)
	return run.Start(fields[0], fields[1:]...)
}

// Launch starts g through its platform handler, or installs it when it is
// not installed. Games without a handler run their stored command.
func Launch(reg *Registry, run Runner, g *catalog.Game) error {
	h, ok := reg.Handler(g.Platform())
	if !g.Installed() {
		if !ok {
			return ErrNotInstalled
		}
		return h.Install(g)
	}
	if ok {
		return h.Launch(g)
	}
	return launchStored(run, g)
}

// launchStored prefers the launcher URL over the direct command.
func launchStored(run Runner, g *catalog.Game) error {
	if g.LaunchURL() != "" {
		return run.Open(g.LaunchURL())
	}
	return runCommandLine(run, g.Launch())
}
