/*
 * Copyright 2021-2025 JetBrains s.r.o.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package utils

import (
	bt "bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	// SuccessExitCode is returned when the run completed, whatever the per-file outcome was.
	SuccessExitCode = 0
	// FailureExitCode is returned only in strict mode, when the import report found failures.
	FailureExitCode = 1
	// TimeoutExitCodePlaceholder is not a real exit code (it is not obtained from a subprocess and not returned from
	// the CLI). Placeholder used to identify the case when a subprocess reached its timeout.
	TimeoutExitCodePlaceholder = 1000
	// InternalErrorExitCode is returned when the subprocess could not be started at all.
	// It is not a real process exit code. Use this to distinguish CLI errors from subprocess exit codes.
	InternalErrorExitCode = math.MinInt
)

// ExecWithTimeout executes subprocess with forwarding of signals, and returns its exit code.
// A zero timeout waits forever.
func ExecWithTimeout(
	cwd string,
	stdout io.Writer,
	stderr io.Writer,
	timeout time.Duration,
	timeoutExitCode int,
	arg0 string,
	argv ...string,
) (int, error) {
	if cwd == "" {
		return InternalErrorExitCode, fmt.Errorf("cwd must not be empty: %w", os.ErrInvalid)
	}
	log.Debugf("Running command: %s %v", arg0, argv)
	cmd := exec.Command(arg0, argv...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Dir = cwd
	cmd.Stdin = bt.NewBuffer([]byte{})
	if err := cmd.Start(); err != nil {
		return InternalErrorExitCode, fmt.Errorf("failed to start command: %w", err)
	}

	waitCh := make(chan error, 1)
	go func() {
		waitCh <- cmd.Wait()
		close(waitCh)
	}()

	return handleSignals(cmd, waitCh, timeout, timeoutExitCode)
}

// ExecRedirectOutput executes subprocess with forwarding of signals, returns stdout, stderr and exit code.
func ExecRedirectOutput(cwd string, timeout time.Duration, arg0 string, argv ...string) (string, string, int, error) {
	var stdout, stderr bt.Buffer
	res, err := ExecWithTimeout(cwd, &stdout, &stderr, timeout, TimeoutExitCodePlaceholder, arg0, argv...)
	return stdout.String(), stderr.String(), res, err
}

// requestTermination asks the process to stop, killing it when signals are unsupported (Windows).
func requestTermination(proc *os.Process) error {
	if err := proc.Signal(os.Interrupt); err != nil {
		return proc.Kill()
	}
	return nil
}

// handleSignals handles the signals from the subprocess
func handleSignals(cmd *exec.Cmd, waitCh <-chan error, timeout time.Duration, timeoutExitCode int) (int, error) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var timeoutCh <-chan time.Time
	if timeout > 0 {
		timeoutCh = time.After(timeout)
	}

	for {
		select {
		case <-sigChan:
			if err := requestTermination(cmd.Process); err != nil && !errors.Is(err, os.ErrProcessDone) {
				log.Error("Error terminating process: ", err)
			}
		case <-timeoutCh:
			if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
				log.Error("Failed to kill process on timeout: ", err)
			}
			<-waitCh
			return timeoutExitCode, nil
		case ret := <-waitCh:
			var exitError *exec.ExitError
			if errors.As(ret, &exitError) {
				log.Debug(ret)
				return exitError.ExitCode(), nil
			}
			return cmd.ProcessState.ExitCode(), ret
		}
	}
}
