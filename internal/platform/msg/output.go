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

package msg

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/adnankoroth/cliflow-sub000/internal/platform/cienv"
	"github.com/liamg/clinch/terminal"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	log "github.com/sirupsen/logrus"
)

// IsInteractive returns true if the current execution environment is interactive (useful for colors/animations toggle).
func IsInteractive() bool {
	return !cienv.IsCI() && os.Getenv(cienv.NonInteractive) == "" && (isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
}

// DisableColor disables colors in the output.
func DisableColor() {
	pterm.DisableColor()
}

// styles and different declarations intended to be used only inside this file
var (
	SanitizeSpinner  = pterm.DefaultSpinner
	spinnerSequence  = []string{"| ", "/ ", "- ", "\\ "}
	PrimaryStyle     = pterm.NewStyle()               // PrimaryStyle is a primary text style.
	primaryBoldStyle = pterm.NewStyle(pterm.Bold)     // primaryBoldStyle is a Primary bold text style.
	errorStyle       = pterm.NewStyle(pterm.FgRed)    // errorStyle is an error style.
	warningStyle     = pterm.NewStyle(pterm.FgYellow) // warningStyle is a warning style.
	miscStyle        = pterm.NewStyle(pterm.FgGray)   // miscStyle is a log style.
	tableSep         = miscStyle.Sprint("─")
)

var activeSpinner atomic.Pointer[pterm.SpinnerPrinter]

// Primary prints a message in the Primary style.
func Primary(text string, a ...interface{}) string {
	text = fmt.Sprintf(text, a...)
	return PrimaryStyle.Sprint(text)
}

// PrimaryBold prints a message in the primary bold style.
func PrimaryBold(text string, a ...interface{}) string {
	text = fmt.Sprintf(text, a...)
	return primaryBoldStyle.Sprint(text)
}

// Misc renders text in the muted style used for paths and examples.
func Misc(text string, a ...interface{}) string {
	return miscStyle.Sprintf(text, a...)
}

// EmptyMessage is a message that is used when there is no message to show.
func EmptyMessage() {
	pterm.Println()
}

// SuccessMessage prints a success message with the icon.
func SuccessMessage(message string, a ...interface{}) {
	message = fmt.Sprintf(message, a...)
	icon := pterm.Green("✓ ")
	pterm.Println(icon, Primary(message))
}

// WarningMessage prints a warning message with the icon.
func WarningMessage(message string, a ...interface{}) {
	message = fmt.Sprintf(message, a...)
	icon := warningStyle.Sprint("! ")
	pterm.Println(icon, Primary(message))
}

// ErrorMessage prints an error message with the icon.
func ErrorMessage(message string, a ...interface{}) {
	message = fmt.Sprintf(message, a...)
	icon := errorStyle.Sprint("✗ ")
	pterm.Println(icon, errorStyle.Sprint(message))
}

// PrintProcess runs f under a spinner (when interactive) and prints the finished message afterward.
func PrintProcess(f func(spinner *pterm.SpinnerPrinter), start string, finished string) {
	spinner, err := StartSpinner(start)
	if err != nil {
		log.Debugf("spinner unavailable: %s", err)
	}
	if spinner == nil {
		fmt.Println(Primary(start + "..."))
	}
	f(spinner)
	if spinner != nil {
		activeSpinner.CompareAndSwap(spinner, nil)
		spinner.Success()
	}
	if finished != "" {
		SuccessMessage("Finished %s", finished)
	}
}

// StartSpinner starts a new spinner with the given message.
func StartSpinner(message string) (*pterm.SpinnerPrinter, error) {
	if IsInteractive() {
		SanitizeSpinner.Sequence = spinnerSequence
		SanitizeSpinner.MessageStyle = PrimaryStyle
		spinner, err := SanitizeSpinner.WithStyle(pterm.NewStyle(pterm.FgGray)).WithRemoveWhenDone(true).Start(message + "...")
		activeSpinner.Store(spinner)
		return spinner, err
	}
	return nil, nil
}

// StopSpinner stops the most recently started spinner, if it is still running.
func StopSpinner() {
	if spinner := activeSpinner.Swap(nil); spinner != nil && spinner.IsActive {
		_ = spinner.Stop()
	}
}

// UpdateText updates the text of the spinner.
func UpdateText(spinner *pterm.SpinnerPrinter, message string) {
	if spinner != nil {
		spinner.UpdateText(message + "...")
	}
}

// getTerminalWidth returns the width of the terminal.
func getTerminalWidth() int {
	width, _ := terminal.Size()
	if width <= 0 {
		width = 80
	}
	return width
}

// Separator returns a horizontal rule spanning the terminal (capped at 100 columns).
func Separator() string {
	width := getTerminalWidth()
	if width > 100 {
		width = 100
	}
	return strings.Repeat(tableSep, width)
}
