// SPDX-License-Identifier: MPL-2.0

//go:build windows

package display

import (
	"golang.org/x/sys/windows"
)

const dialogTitle = "Launcher"

func show(msg string) {
	text, err := windows.UTF16PtrFromString(msg)
	if err != nil {
		return
	}
	title, err := windows.UTF16PtrFromString(dialogTitle)
	if err != nil {
		return
	}
	windows.MessageBox(0, text, title, windows.MB_OK|windows.MB_ICONERROR)
}
