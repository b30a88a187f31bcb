package shell

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrEmptyCommand = errors.New("backend command is empty")

type Log interface {
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
}

// BackendProcess is a backend started alongside the terminal.
type BackendProcess struct {
	cmd  *exec.Cmd
	log  Log
	done chan struct{}

	mu  sync.Mutex
	err error
}

// StartBackend runs command in dir with the terminal's stdout and stderr.
func StartBackend(ctx context.Context, command, dir string, log Log) (*BackendProcess, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "failed to start backend %q in %s", command, dir)
	}
	log.Info("backend started", zap.String("command", command), zap.String("dir", dir), zap.Int("pid", cmd.Process.Pid))

	p := &BackendProcess{cmd: cmd, log: log, done: make(chan struct{})}
	go p.wait()
	return p, nil
}

func (p *BackendProcess) wait() {
	err := p.cmd.Wait()
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()

	p.log.Info("backend exited", zap.Int("code", p.cmd.ProcessState.ExitCode()))
	close(p.done)
}

// Done is closed once the process has exited.
func (p *BackendProcess) Done() <-chan struct{} {
	return p.done
}

// Err is the exit error, valid after Done is closed.
func (p *BackendProcess) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Stop asks the process to exit and kills it after timeout.
func (p *BackendProcess) Stop(timeout time.Duration) error {
	select {
	case <-p.done:
		return nil
	default:
	}

	if runtime.GOOS == "windows" {
		_ = p.cmd.Process.Kill()
	} else if err := p.cmd.Process.Signal(os.Interrupt); err != nil {
		_ = p.cmd.Process.Kill()
	}

	select {
	case <-p.done:
		return nil
	case <-time.After(timeout):
		p.log.Warn("backend did not stop in time, killing it", zap.Duration("timeout", timeout))
		if err := p.cmd.Process.Kill(); err != nil {
			return errors.Wrap(err, "failed to kill backend")
		}
		<-p.done
		return nil
	}
}
