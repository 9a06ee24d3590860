// SPDX-License-Identifier: MPL-2.0

// Package config loads and merges the launch configuration: the jpackage
// style cfg file shipped inside the application image, an optional
// user-editable overlay, and the launcher's own settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"javelin-cli/internal/jar"
	"javelin-cli/internal/platform"

	"gopkg.in/ini.v1"
)

// Section and key names of the jpackage cfg format.
const (
	sectionApplication = "Application"
	sectionJavaOptions = "JavaOptions"
	sectionArgOptions  = "ArgOptions"

	keyMainClass  = "app.mainclass"
	keyMainJar    = "app.mainjar"
	keyClasspath  = "app.classpath"
	keyRuntime    = "app.runtime"
	keyMainModule = "app.mainmodule"
	keyModulePath = "app.modulepath"
	keyMemory     = "app.memory"
	keyOptions    = "java-options"
	keyArguments  = "arguments"
)

// Substitution tokens jpackage allows in cfg values.
const (
	tokenAppDir  = "$APPDIR"
	tokenRootDir = "$ROOTDIR"
	tokenBinDir  = "$BINDIR"
)

// rawConfig preserves the cfg file shape: section name -> key -> all values,
// duplicate keys kept as multiple values in file order.
type rawConfig map[string]map[string][]string

// Load reads the cfg file for the given image layout, merges the user overlay
// when one exists (overlay values win, duplicates removed), and projects the
// result into a LaunchConfig. The settings control the lookup feature flags
// and may impose a minimum version.
func Load(layout Layout, profile platform.Profile, settings *Settings) (*LaunchConfig, error) {
	primary, err := parseCfgFile(layout.CfgPath, layout)
	if err != nil {
		return nil, fmt.Errorf("load launch configuration %s: %w", layout.CfgPath, err)
	}

	if overlayPath, ok := overlayPath(layout.CfgPath); ok {
		overlay, err := parseCfgFile(overlayPath, layout)
		if err != nil {
			return nil, fmt.Errorf("load configuration overlay %s: %w", overlayPath, err)
		}
		primary = mergeRaw(primary, overlay)
	}

	cfg := process(primary, layout, profile)
	applySettings(cfg, settings)
	return cfg, nil
}

// overlayPath returns the user-editable overlay location for a cfg file:
// <launcher config dir>/<stem>.cfg. The overlay is optional.
func overlayPath(cfgPath string) (string, bool) {
	dir, err := ConfigDir()
	if err != nil {
		return "", false
	}
	stem := strings.TrimSuffix(filepath.Base(cfgPath), filepath.Ext(cfgPath))
	path := filepath.Join(dir, stem+".cfg")
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// parseCfgFile reads an INI-shaped cfg file, substituting image-layout tokens
// before parsing. Duplicate keys are preserved as shadow values.
func parseCfgFile(path string, layout Layout) (rawConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	text := string(content)
	text = strings.ReplaceAll(text, tokenAppDir, layout.AppDir)
	text = strings.ReplaceAll(text, tokenRootDir, layout.RootDir)
	text = strings.ReplaceAll(text, tokenBinDir, layout.BinDir)

	f, err := ini.LoadSources(ini.LoadOptions{
		AllowShadows:       true,
		KeyValueDelimiters: "=",
	}, []byte(text))
	if err != nil {
		return nil, err
	}

	raw := rawConfig{}
	for _, section := range f.Sections() {
		for _, key := range section.Keys() {
			values := key.ValueWithShadows()
			if len(values) == 0 {
				continue
			}
			name := section.Name()
			if raw[name] == nil {
				raw[name] = map[string][]string{}
			}
			raw[name][key.Name()] = append(raw[name][key.Name()], values...)
		}
	}
	return raw, nil
}

// mergeRaw merges overlay into base. Overlay values are appended after base
// values, skipping exact duplicates, so "last one wins" lookups see the
// overlay's choice.
func mergeRaw(base, overlay rawConfig) rawConfig {
	for sectionName, section := range overlay {
		if base[sectionName] == nil {
			base[sectionName] = map[string][]string{}
		}
		for key, values := range section {
			existing := base[sectionName][key]
			for _, v := range values {
				duplicate := false
				for _, have := range existing {
					if have == v {
						duplicate = true
						break
					}
				}
				if !duplicate {
					existing = append(existing, v)
				}
			}
			base[sectionName][key] = existing
		}
	}
	return base
}

// process projects the raw cfg shape into a LaunchConfig, consulting the main
// jar's manifest for entry-point and module-system declarations.
func process(raw rawConfig, layout Layout, profile platform.Profile) *LaunchConfig {
	cfg := &LaunchConfig{}

	app := raw[sectionApplication]

	cfg.Options = append(cfg.Options, raw[sectionJavaOptions][keyOptions]...)
	cfg.Classpath = append(cfg.Classpath, app[keyClasspath]...)
	cfg.ProgramArgs = append(cfg.ProgramArgs, raw[sectionArgOptions][keyArguments]...)

	if jars := app[keyMainJar]; len(jars) > 0 {
		mainJar := jars[len(jars)-1]
		applyManifest(cfg, mainJar)
		cfg.Classpath = append(cfg.Classpath, mainJar)
	}

	if classes := app[keyMainClass]; len(classes) > 0 {
		cfg.MainClass = classes[len(classes)-1]
	}

	if modules := app[keyMainModule]; len(modules) > 0 {
		cfg.Options = append(cfg.Options, "-m", modules[len(modules)-1])
	}
	if paths := app[keyModulePath]; len(paths) > 0 {
		cfg.Options = append(cfg.Options, "--module-path="+strings.Join(paths, profile.PathListSeparator))
	}

	if runtimes := app[keyRuntime]; len(runtimes) > 0 {
		cfg.RuntimePath = runtimes[len(runtimes)-1]
	} else if info, err := os.Stat(layout.DefaultRuntimeDir); err == nil && info.IsDir() {
		cfg.RuntimePath = layout.DefaultRuntimeDir
	}

	if fractions := app[keyMemory]; len(fractions) > 0 {
		if fraction, err := strconv.ParseFloat(fractions[len(fractions)-1], 64); err == nil {
			cfg.MemoryFraction = fraction
			cfg.MemoryFractionSet = true
		}
	}

	return cfg
}

// applyManifest folds the main jar's manifest into the configuration:
// Main-Class, Class-Path, and the module-system attributes jpackage honors.
func applyManifest(cfg *LaunchConfig, mainJar string) {
	m, err := jar.ReadManifest(mainJar)
	if err != nil {
		return
	}

	if mc := m.Main["Main-Class"]; mc != "" {
		cfg.MainClass = mc
	}
	if cp := m.Main["Class-Path"]; cp != "" {
		cfg.Classpath = append(cfg.Classpath, strings.Fields(cp)...)
	}
	for _, module := range strings.Fields(m.Main["Add-Exports"]) {
		cfg.Options = append(cfg.Options, "--add-exports="+module+"=ALL-UNNAMED")
	}
	for _, module := range strings.Fields(m.Main["Add-Opens"]) {
		cfg.Options = append(cfg.Options, "--add-opens="+module+"=ALL-UNNAMED")
	}
	// ALL-UNNAMED is the only value the manifest attribute may carry.
	if m.Main["Enable-Native-Access"] == "ALL-UNNAMED" {
		cfg.Options = append(cfg.Options, "--enable-native-access=ALL-UNNAMED")
	}
}

// applySettings folds launcher settings into the launch configuration.
func applySettings(cfg *LaunchConfig, settings *Settings) {
	if settings == nil {
		cfg.AllowEnvLookup = true
		cfg.AllowCommonLocations = true
		return
	}
	cfg.AllowEnvLookup = settings.AllowEnvLookup
	cfg.AllowCommonLocations = settings.AllowCommonLocations
	cfg.MinJavaVersion = settings.MinJavaVersion
	if settings.MemoryFraction > 0 {
		cfg.MemoryFraction = settings.MemoryFraction
		cfg.MemoryFractionSet = true
	}
}
