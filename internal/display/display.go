// SPDX-License-Identifier: MPL-2.0

// Package display is the operator-facing diagnostic channel. Delivery is
// best effort: the launcher never depends on a message having been seen.
package display

// Show presents a diagnostic message to the operator: a native dialog on
// Windows (where a double-clicked launcher has no console), stderr elsewhere.
// Errors from the channel itself are swallowed.
func Show(msg string) {
	show(msg)
}
