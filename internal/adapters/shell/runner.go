// Package shell runs the external command line tools preppy delegates to.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/preppy/internal/core/domain"
	"go.trai.ch/preppy/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ToolRunner = (*Runner)(nil)

// binDir is where package managers install tool executables.
var binDir = filepath.Join(domain.NodeModulesDir, ".bin")

// Runner implements ports.ToolRunner. Commands run in a PTY so tools keep
// their colored output, falling back to plain pipes where no PTY is available.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes argv in dir and waits for it. Output goes to out and,
// line by line, to the debug log. A failing tool's output is attached to the error.
func (r *Runner) Run(ctx context.Context, dir string, argv []string, out io.Writer) error {
	if len(argv) == 0 {
		return nil
	}
	if out == nil {
		out = io.Discard
	}

	name := argv[0]
	env := toolEnvironment(os.Environ(), dir)

	executable := name
	if !filepath.IsAbs(name) {
		lp, err := lookPath(name, env)
		if err != nil {
			err = zerr.With(zerr.Wrap(domain.ErrToolFailed, "tool not found"), "tool", name)
			return zerr.With(err, "hint", "install it with your package manager, e.g. npm install --save-dev "+name)
		}
		executable = lp
	}

	cmd := exec.CommandContext(ctx, executable, argv[1:]...) //nolint:gosec // argv is built by preppy
	cmd.Args[0] = name
	cmd.Dir = dir
	cmd.Env = env

	var captured bytes.Buffer
	lines := &logWriter{logger: r.logger}
	w := io.MultiWriter(out, &captured, lines)

	err := run(cmd, w)
	_ = lines.Close()
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	failure := zerr.With(zerr.Wrap(domain.ErrToolFailed, name+" failed"), "exit_code", exitCode)
	if output := strings.TrimSpace(cleanOutput(captured.String())); output != "" {
		failure = zerr.With(failure, "output", output)
	}
	return failure
}

// run starts cmd on a PTY when possible and copies its output to w.
func run(cmd *exec.Cmd, w io.Writer) error {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		if cmd.Stdout != nil {
			// The PTY opened but the command did not start.
			return err
		}
		cmd.Stdout, cmd.Stderr = w, w
		return cmd.Run()
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		// Reading the master fails with EIO once the child exits; that is the end of output.
		_, _ = io.Copy(w, ptmx)
	}()

	err = cmd.Wait()
	<-ioDone
	_ = ptmx.Close()
	return err
}

// cleanOutput drops the carriage returns a PTY adds to every line.
func cleanOutput(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	if w.logger == nil {
		return
	}
	msg := strings.TrimSuffix(string(line), "\r")
	if msg != "" {
		w.logger.Debug(msg)
	}
}

// toolEnvironment inherits the process environment and puts the project's
// node_modules/.bin first on PATH.
func toolEnvironment(sysEnv []string, dir string) []string {
	bin := filepath.Join(dir, binDir)

	env := make([]string, 0, len(sysEnv)+1)
	var hasPath bool
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok && k == "PATH" {
			hasPath = true
			if v != "" {
				entry = "PATH=" + bin + string(os.PathListSeparator) + v
			} else {
				entry = "PATH=" + bin
			}
		}
		env = append(env, entry)
	}
	if !hasPath {
		env = append(env, "PATH="+bin)
	}
	return env
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
