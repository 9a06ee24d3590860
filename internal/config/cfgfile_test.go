// SPDX-License-Identifier: MPL-2.0

package config

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"javelin-cli/internal/platform"
)

// linuxLayout builds a jpackage-style linux image under a temp dir and
// returns its layout with the given cfg content written in place.
func linuxLayout(t *testing.T, cfgContent string) Layout {
	t.Helper()
	root := t.TempDir()

	binDir := filepath.Join(root, "bin")
	appDir := filepath.Join(root, "lib", "app")
	for _, dir := range []string{binDir, appDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	exePath := filepath.Join(binDir, "myapp")
	if err := os.WriteFile(exePath, []byte{0}, 0o755); err != nil {
		t.Fatal(err)
	}

	layout := LayoutFor(exePath, "linux")
	if err := os.WriteFile(layout.CfgPath, []byte(cfgContent), 0o644); err != nil {
		t.Fatal(err)
	}
	return layout
}

func testProfile() platform.Profile {
	return platform.ProfileFor("linux")
}

func TestLoad_BasicSections(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	t.Cleanup(Reset)

	layout := linuxLayout(t, `[Application]
app.mainclass=com.example.Main
app.classpath=$APPDIR/app.jar
app.classpath=$APPDIR/lib.jar

[JavaOptions]
java-options=-Dfoo=bar
java-options=-Xss2m

[ArgOptions]
arguments=--server
arguments=--port=8080
`)

	cfg, err := Load(layout, testProfile(), nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.MainClass != "com.example.Main" {
		t.Errorf("MainClass = %q", cfg.MainClass)
	}
	wantCP := []string{
		filepath.Join(layout.AppDir, "app.jar"),
		filepath.Join(layout.AppDir, "lib.jar"),
	}
	if !slices.Equal(cfg.Classpath, wantCP) {
		t.Errorf("Classpath = %v, want %v", cfg.Classpath, wantCP)
	}
	if !slices.Equal(cfg.Options, []string{"-Dfoo=bar", "-Xss2m"}) {
		t.Errorf("Options = %v", cfg.Options)
	}
	if !slices.Equal(cfg.ProgramArgs, []string{"--server", "--port=8080"}) {
		t.Errorf("ProgramArgs = %v", cfg.ProgramArgs)
	}
	if ok, _ := cfg.IsValid(); !ok {
		t.Error("configuration should be launchable")
	}
}

func TestLoad_TokenSubstitution(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	t.Cleanup(Reset)

	layout := linuxLayout(t, `[Application]
app.mainclass=com.example.Main
app.classpath=$ROOTDIR/shared.jar
app.classpath=$BINDIR/tool.jar
`)

	cfg, err := Load(layout, testProfile(), nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	for _, entry := range cfg.Classpath {
		if strings.Contains(entry, "$") {
			t.Errorf("unsubstituted token in %q", entry)
		}
	}
	if cfg.Classpath[0] != filepath.Join(layout.RootDir, "shared.jar") {
		t.Errorf("ROOTDIR entry = %q", cfg.Classpath[0])
	}
	if cfg.Classpath[1] != filepath.Join(layout.BinDir, "tool.jar") {
		t.Errorf("BINDIR entry = %q", cfg.Classpath[1])
	}
}

func TestLoad_OverlayWinsWithDedupe(t *testing.T) {
	overlayDir := t.TempDir()
	SetConfigDirOverride(overlayDir)
	t.Cleanup(Reset)

	layout := linuxLayout(t, `[Application]
app.mainclass=com.example.Main
app.classpath=base.jar

[JavaOptions]
java-options=-Dfoo=bar
`)

	overlay := `[Application]
app.mainclass=com.example.Override
app.classpath=base.jar
app.classpath=extra.jar

[JavaOptions]
java-options=-Dfoo=bar
java-options=-Dextra=1
`
	if err := os.WriteFile(filepath.Join(overlayDir, "myapp.cfg"), []byte(overlay), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(layout, testProfile(), nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.MainClass != "com.example.Override" {
		t.Errorf("MainClass = %q, overlay should win", cfg.MainClass)
	}
	if !slices.Equal(cfg.Classpath, []string{"base.jar", "extra.jar"}) {
		t.Errorf("Classpath = %v, duplicates should collapse", cfg.Classpath)
	}
	if !slices.Equal(cfg.Options, []string{"-Dfoo=bar", "-Dextra=1"}) {
		t.Errorf("Options = %v", cfg.Options)
	}
}

func TestLoad_MainJarManifest(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	t.Cleanup(Reset)

	layout := linuxLayout(t, "")

	manifest := "Main-Class: com.example.FromManifest\n" +
		"Class-Path: lib/dep.jar\n" +
		"Add-Opens: java.base/java.lang\n" +
		"Enable-Native-Access: ALL-UNNAMED\n"
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("META-INF/MANIFEST.MF")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(manifest)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	jarPath := filepath.Join(layout.AppDir, "main.jar")
	if err := os.WriteFile(jarPath, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	cfgContent := "[Application]\napp.mainjar=" + jarPath + "\n"
	if err := os.WriteFile(layout.CfgPath, []byte(cfgContent), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(layout, testProfile(), nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.MainClass != "com.example.FromManifest" {
		t.Errorf("MainClass = %q", cfg.MainClass)
	}
	if !slices.Contains(cfg.Classpath, "lib/dep.jar") {
		t.Errorf("Classpath missing manifest entry: %v", cfg.Classpath)
	}
	if !slices.Contains(cfg.Classpath, jarPath) {
		t.Errorf("Classpath missing main jar: %v", cfg.Classpath)
	}
	if !slices.Contains(cfg.Options, "--add-opens=java.base/java.lang=ALL-UNNAMED") {
		t.Errorf("Options missing add-opens: %v", cfg.Options)
	}
	if !slices.Contains(cfg.Options, "--enable-native-access=ALL-UNNAMED") {
		t.Errorf("Options missing native access: %v", cfg.Options)
	}
}

func TestLoad_ExplicitRuntimeAndMemory(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	t.Cleanup(Reset)

	layout := linuxLayout(t, `[Application]
app.mainclass=com.example.Main
app.classpath=app.jar
app.runtime=/opt/custom-jdk
app.memory=0.5
`)

	cfg, err := Load(layout, testProfile(), nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.RuntimePath != "/opt/custom-jdk" {
		t.Errorf("RuntimePath = %q", cfg.RuntimePath)
	}
	if !cfg.MemoryFractionSet || cfg.MemoryFraction != 0.5 {
		t.Errorf("MemoryFraction = %v set=%v", cfg.MemoryFraction, cfg.MemoryFractionSet)
	}
}

func TestLoad_BundledRuntimeFallback(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	t.Cleanup(Reset)

	layout := linuxLayout(t, `[Application]
app.mainclass=com.example.Main
app.classpath=app.jar
`)
	if err := os.MkdirAll(layout.DefaultRuntimeDir, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(layout, testProfile(), nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.RuntimePath != layout.DefaultRuntimeDir {
		t.Errorf("RuntimePath = %q, want bundled runtime %q", cfg.RuntimePath, layout.DefaultRuntimeDir)
	}
}

func TestLaunchConfig_IsValid(t *testing.T) {
	tests := []struct {
		name string
		cfg  LaunchConfig
		want bool
	}{
		{"complete", LaunchConfig{MainClass: "a.B", Classpath: []string{"x.jar"}}, true},
		{"missing main class", LaunchConfig{Classpath: []string{"x.jar"}}, false},
		{"missing classpath", LaunchConfig{MainClass: "a.B"}, false},
		{"missing both", LaunchConfig{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, errs := tt.cfg.IsValid()
			if ok != tt.want {
				t.Errorf("IsValid() = %v, want %v", ok, tt.want)
			}
			if !ok && len(errs) == 0 {
				t.Error("invalid config must report errors")
			}
		})
	}
}

func TestLayoutFor(t *testing.T) {
	tests := []struct {
		goos    string
		exe     string
		appDir  string
		runtime string
	}{
		{"linux", "/opt/myapp/bin/myapp", "/opt/myapp/lib/app", "/opt/myapp/lib/runtime"},
		{platform.Darwin, "/Applications/My.app/Contents/MacOS/myapp", "/Applications/My.app/Contents/app", "/Applications/My.app/Contents/runtime"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			l := LayoutFor(tt.exe, tt.goos)
			if l.AppDir != filepath.FromSlash(tt.appDir) {
				t.Errorf("AppDir = %q, want %q", l.AppDir, tt.appDir)
			}
			if l.DefaultRuntimeDir != filepath.FromSlash(tt.runtime) {
				t.Errorf("DefaultRuntimeDir = %q, want %q", l.DefaultRuntimeDir, tt.runtime)
			}
			if filepath.Base(l.CfgPath) != "myapp.cfg" {
				t.Errorf("CfgPath = %q", l.CfgPath)
			}
		})
	}
}
