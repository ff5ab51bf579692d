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

package process

import (
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adnankoroth/cliflow-sub000/internal/platform/msg"
	"github.com/adnankoroth/cliflow-sub000/internal/platform/utils"
	log "github.com/sirupsen/logrus"
)

// Init runs miscellaneous process-wide utility code.
func Init() {
	KillProcessTreeOnClose()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupts
		msg.StopSpinner()
		msg.WarningMessage("Interrupting specsanitize...")
		log.SetOutput(io.Discard)
		// Let utils.ExecWithTimeout stop a running import first.
		time.Sleep(1 * time.Second)
		os.Exit(utils.SuccessExitCode)
	}()
}
