// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/databinder/databinder/cmd/databinder"

func main() {
	cmd.Execute()
}
