// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the launch configuration",
}

// configShowCmd prints the effective launch configuration after cfg file,
// overlay, and launcher settings have been merged.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective launch configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow()
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow() error {
	cfg, layout, _, err := loadLaunchConfig()
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	field := func(name, value string) {
		if value == "" {
			value = SubtitleStyle.Render("(not set)")
		}
		fmt.Printf("%s %s\n", SubtitleStyle.Render(name+":"), value)
	}

	fmt.Println(TitleStyle.Render("launch configuration") + SubtitleStyle.Render(" ("+layout.CfgPath+")"))
	field("main class      ", ValueStyle.Render(cfg.MainClass))
	field("runtime path    ", cfg.RuntimePath)
	if cfg.MinJavaVersion > 0 {
		field("min java version", fmt.Sprintf("%d", cfg.MinJavaVersion))
	} else {
		field("min java version", "")
	}
	field("classpath       ", strings.Join(cfg.Classpath, "\n                  "))
	field("jvm options     ", strings.Join(cfg.Options, "\n                  "))
	field("program args    ", strings.Join(cfg.ProgramArgs, " "))
	field("env lookup      ", fmt.Sprintf("%t", cfg.AllowEnvLookup))
	field("common locations", fmt.Sprintf("%t", cfg.AllowCommonLocations))
	if cfg.MemoryFractionSet {
		field("memory fraction ", fmt.Sprintf("%g", cfg.MemoryFraction))
	} else {
		field("memory fraction ", "")
	}
	return nil
}
