package media

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"sync"

	apperrors "github.com/haulhire/crm/errors"
)

// commandResult is an internal process execution response.
type commandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// commandRunner abstracts process execution for testability.
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (commandResult, error)
}

// execRunner executes commands via os/exec.
type execRunner struct{}

// Run executes one command and captures stdout/stderr and exit code.
func (r *execRunner) Run(ctx context.Context, name string, args ...string) (commandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := commandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: 0,
	}
	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		return result, err
	}

	return result, nil
}

// Session owns the transcoder engine. The engine loads once per process,
// on first use, and every later run reuses it. All file traffic goes
// through a private workspace directory that exists only for the life of
// the session.
type Session struct {
	ffmpegPath string
	runner     commandRunner

	loadOnce sync.Once
	loadErr  error
	workdir  string

	lookPath  func(file string) (string, error)
	mkdirTemp func(dir, pattern string) (string, error)
	removeAll func(path string) error
	writeFile func(name string, data []byte, perm os.FileMode) error
	readFile  func(name string) ([]byte, error)
	remove    func(name string) error
}

// NewSession constructs the production session with OS dependencies.
func NewSession(ffmpegPath string) *Session {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Session{
		ffmpegPath: ffmpegPath,
		runner:     &execRunner{},
		lookPath:   exec.LookPath,
		mkdirTemp:  os.MkdirTemp,
		removeAll:  os.RemoveAll,
		writeFile:  os.WriteFile,
		readFile:   os.ReadFile,
		remove:     os.Remove,
	}
}

// EnsureLoaded loads the engine on first call and is a no-op afterwards.
// A failed load is fatal for the process lifetime: every later call
// reports the same error rather than retrying.
func (s *Session) EnsureLoaded(ctx context.Context) error {
	s.loadOnce.Do(func() {
		resolved, err := s.lookPath(s.ffmpegPath)
		if err != nil {
			s.loadErr = apperrors.ErrEngineLoadFailed(err)
			return
		}
		s.ffmpegPath = resolved

		if _, err := s.runner.Run(ctx, s.ffmpegPath, "-version"); err != nil {
			s.loadErr = apperrors.ErrEngineLoadFailed(err)
			return
		}

		workdir, err := s.mkdirTemp("", "crm-audio-*")
		if err != nil {
			s.loadErr = apperrors.ErrEngineLoadFailed(err)
			return
		}
		s.workdir = workdir
	})
	return s.loadErr
}

// Close removes the session workspace
func (s *Session) Close() error {
	if s.workdir == "" {
		return nil
	}
	err := s.removeAll(s.workdir)
	s.workdir = ""
	return err
}

// NewSessionForTests constructs a session with injectable dependencies.
func NewSessionForTests(
	ffmpegPath string,
	runner commandRunner,
	lookPath func(file string) (string, error),
	mkdirTemp func(dir, pattern string) (string, error),
	writeFile func(name string, data []byte, perm os.FileMode) error,
	readFile func(name string) ([]byte, error),
) *Session {
	return &Session{
		ffmpegPath: ffmpegPath,
		runner:     runner,
		lookPath:   lookPath,
		mkdirTemp:  mkdirTemp,
		removeAll:  func(string) error { return nil },
		writeFile:  writeFile,
		readFile:   readFile,
		remove:     func(string) error { return nil },
	}
}
