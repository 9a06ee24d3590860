// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package display

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var messageStyle = lipgloss.NewStyle().Bold(true)

func show(msg string) {
	fmt.Fprintln(os.Stderr, messageStyle.Render(msg))
}
