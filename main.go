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

package main

import (
	"os"

	"github.com/adnankoroth/cliflow-sub000/internal/cmd"
	"github.com/adnankoroth/cliflow-sub000/internal/platform/msg"
	"github.com/adnankoroth/cliflow-sub000/internal/platform/process"
)

func main() {
	if !msg.IsInteractive() || os.Getenv("NO_COLOR") != "" { // http://no-color.org
		msg.DisableColor()
	}
	process.Init()
	os.Exit(cmd.Execute())
}
