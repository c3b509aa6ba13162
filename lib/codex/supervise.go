// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codex

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/codex-mcp/lib/clock"
)

// processState tracks where a supervised child is in its lifecycle.
// Transitions only move forward:
//
//	running ──exit──────────────────────────────▶ reaped
//	running ──deadline──▶ terminating ──exit────▶ reaped
//	                      terminating ──grace───▶ killed ──exit──▶ reaped
type processState int

const (
	stateRunning processState = iota
	stateTerminating
	stateKilled
	stateReaped
)

func (s processState) String() string {
	switch s {
	case stateRunning:
		return "running"
	case stateTerminating:
		return "terminating"
	case stateKilled:
		return "killed"
	case stateReaped:
		return "reaped"
	default:
		return "unknown"
	}
}

// stopReason records why wait returned.
type stopReason int

const (
	stopExited stopReason = iota
	stopTimedOut
	stopCancelled
)

// supervisor owns one started child process. Its wait method is the
// only way the runner learns about exit, and it never returns before
// the child has been reaped.
type supervisor struct {
	command *exec.Cmd
	clock   clock.Clock
	grace   time.Duration
	logger  *slog.Logger

	state   processState
	done    chan struct{}
	waitErr error
}

// startSupervised starts command in its own process group and begins
// waiting for it in the background. The process group lets the runner
// signal codex together with any helpers it spawned.
func startSupervised(command *exec.Cmd, clk clock.Clock, grace time.Duration, logger *slog.Logger) (*supervisor, error) {
	if command.SysProcAttr == nil {
		command.SysProcAttr = &syscall.SysProcAttr{}
	}
	command.SysProcAttr.Setpgid = true

	if err := command.Start(); err != nil {
		return nil, err
	}

	s := &supervisor{
		command: command,
		clock:   clk,
		grace:   grace,
		logger:  logger.With("pid", command.Process.Pid),
		state:   stateRunning,
		done:    make(chan struct{}),
	}
	go func() {
		s.waitErr = command.Wait()
		close(s.done)
	}()
	return s, nil
}

// pid returns the child's process ID (also its process group ID).
func (s *supervisor) pid() int {
	return s.command.Process.Pid
}

// wait blocks until the child exits, the timeout elapses, or ctx is
// cancelled. In the latter two cases it terminates the child before
// returning. The returned error is the child's exit error from
// exec.Cmd.Wait and is only meaningful for stopExited.
func (s *supervisor) wait(ctx context.Context, timeout time.Duration) (stopReason, error) {
	deadline := s.clock.NewTimer(timeout)
	defer deadline.Stop()

	select {
	case <-s.done:
		s.transition(stateReaped)
		return stopExited, s.waitErr
	case <-deadline.C:
		s.logger.Warn("codex deadline expired, terminating", "timeout", timeout)
		s.terminate()
		return stopTimedOut, s.waitErr
	case <-ctx.Done():
		s.logger.Warn("codex invocation cancelled, terminating", "error", ctx.Err())
		s.terminate()
		return stopCancelled, s.waitErr
	}
}

// terminate drives the child from running to reaped: SIGTERM to the
// process group, up to the grace period for a voluntary exit, then
// SIGKILL and an unconditional wait for the reaper goroutine.
func (s *supervisor) terminate() {
	s.transition(stateTerminating)
	s.signalGroup(unix.SIGTERM)

	grace := s.clock.NewTimer(s.grace)
	defer grace.Stop()

	select {
	case <-s.done:
		s.transition(stateReaped)
		return
	case <-grace.C:
	}

	s.transition(stateKilled)
	s.signalGroup(unix.SIGKILL)
	<-s.done
	s.transition(stateReaped)
}

// signalGroup delivers signal to the child's process group unless the
// child has already been reaped (after which its pid may be reused).
// A group that vanished between the check and the kill (ESRCH) is
// fine: the reaper goroutine will observe the exit.
func (s *supervisor) signalGroup(signal syscall.Signal) {
	select {
	case <-s.done:
		return
	default:
	}
	err := unix.Kill(-s.pid(), signal)
	if err != nil && !errors.Is(err, unix.ESRCH) {
		s.logger.Warn("signalling codex process group", "signal", signal.String(), "error", err)
		// Fall back to the leader alone; without a group the helpers
		// are out of reach but the leader must still stop.
		_ = s.command.Process.Signal(signal)
	}
}

func (s *supervisor) transition(next processState) {
	if next <= s.state {
		return
	}
	s.logger.Debug("codex process state", "from", s.state.String(), "to", next.String())
	s.state = next
}

// exitCode maps an exec.Cmd.Wait error to a process exit status. A
// child killed by a signal reports 128+signal, the shell convention,
// so negative values stay reserved for runner-initiated termination.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			return 128 + int(status.Signal())
		}
		return exitErr.ExitCode()
	}
	return ExitStagingFailed
}
