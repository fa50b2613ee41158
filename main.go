// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/rapidcopper/rapidcopper/cmd/rapidcopper"

func main() {
	cmd.Execute()
}
