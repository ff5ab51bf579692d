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

	"github.com/adnankoroth/cliflow-sub000/internal/platform/commoncontext"
	"github.com/adnankoroth/cliflow-sub000/internal/platform/msg"
	"github.com/adnankoroth/cliflow-sub000/internal/sanitizer"
	"github.com/spf13/cobra"
)

// newShimsCommand returns the command listing (and installing) the bundled shims.
func newShimsCommand(a *app) *cobra.Command {
	install := false
	c := &cobra.Command{
		Use:   "shims",
		Short: "List the bundled shim modules",
		Long:  "List the shim modules that replace known-broken conversions. With --install they are written to the community directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := resolveOptions(a.config)
			shims := sanitizer.DefaultShims()
			for _, rel := range shims.Paths() {
				if _, err := fmt.Fprintln(a.out, rel); err != nil {
					return err
				}
			}
			if !install {
				return nil
			}
			ctx := commoncontext.Compute(opts.ProjectDir, opts.CommunityDir, opts.HelpersPath)
			written, err := shims.Install(ctx.CommunityDir)
			if err != nil {
				return err
			}
			msg.SuccessMessage("Installed %d shims into %s", written, ctx.CommunityDir)
			return nil
		},
	}
	c.Flags().BoolVar(&install, "install", false, "Write the shims to the community directory")
	return c
}
