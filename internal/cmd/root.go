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

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/adnankoroth/cliflow-sub000/internal/platform/utils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time.
var Version = "dev"

// app carries the state of one CLI invocation.
type app struct {
	config      *viper.Viper
	newImporter ImporterFactory
	out         io.Writer
	exitCode    int
}

// Execute is a main CLI entrypoint. It always returns 0 unless the import report failed under --exit-code.
func Execute() int {
	return execute(os.Args[1:], newNodeImporter, os.Stdout)
}

func execute(args []string, newImporter ImporterFactory, out io.Writer) (exitCode int) {
	a := &app{config: newConfig(), newImporter: newImporter, out: out}
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("unexpected error: %v", r)
			exitCode = utils.SuccessExitCode
		}
	}()

	rootCmd := newRootCommand(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	if err := rootCmd.Execute(); err != nil {
		log.Errorf("error running command: %s", err)
		return utils.SuccessExitCode
	}
	return a.exitCode
}

// newRootCommand constructs root command.
func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "specsanitize",
		Short: "Repair converted community completion specs",
		Long: `Repair auto-converted community completion spec modules so they load as ES modules.

Installs the bundled shims, strips leftover type syntax, resolves extension-less relative imports
and normalizes default exports. With --report it then imports the modules and tabulates failures.
Options can also be set with SPECSANITIZE_* environment variables or a .specsanitize.yaml file.
`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(a.config, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := resolveOptions(a.config)
			result, err := Run(opts, a.newImporter, a.out)
			a.exitCode = ExitCode(result, opts.ExitCode)
			if err != nil {
				return fmt.Errorf("run failed: %w", err)
			}
			return nil
		},
	}
	ComputePersistentFlags(rootCmd)
	ComputeFlags(rootCmd)
	rootCmd.AddCommand(newShimsCommand(a))
	return rootCmd
}
