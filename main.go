// SPDX-License-Identifier: MPL-2.0

package main

import (
	"runtime"

	cmd "javelin-cli/cmd/javelin"
)

func init() {
	// The JVM create/attach/invoke/destroy sequence must run on the first
	// thread of the process on platforms where the launched application
	// integrates with the windowing system (notably macOS/AWT).
	runtime.LockOSThread()
}

func main() {
	cmd.Execute()
}
