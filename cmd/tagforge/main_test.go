package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tagforge/internal/testsupport"
)

func writeTestConfig(t *testing.T, categoriesPath string) string {
	t.Helper()

	if categoriesPath == "" {
		categoriesPath = filepath.Join(t.TempDir(), "categories.json")
	}
	content := fmt.Sprintf(`
[journal]
enabled = false

[categories]
path = %q

[logging]
level = "error"
`, categoriesPath)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) string {
	t.Helper()

	output, err := runCLIErr(args...)
	if err != nil {
		t.Fatalf("tagforge %s: %v\n%s", strings.Join(args, " "), err, output)
	}
	return output
}

func runCLIErr(args ...string) (string, error) {
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestScanCommand(t *testing.T) {
	folder := testsupport.SeedDataset(t, map[string][]string{
		"one.png": {"solo", "red_hair"},
		"two.png": {},
	})
	cfg := writeTestConfig(t, "")

	output := runCLI(t, "--config", cfg, "--folder", folder, "scan")
	if !strings.Contains(output, "Images:        2") {
		t.Errorf("scan output missing image count:\n%s", output)
	}
	if !strings.Contains(output, "Distinct tags: 2") {
		t.Errorf("scan output missing tag count:\n%s", output)
	}
}

func TestTagsCommandTable(t *testing.T) {
	folder := testsupport.SeedDataset(t, map[string][]string{
		"one.png": {"solo", "red_hair"},
		"two.png": {"solo"},
	})
	cfg := writeTestConfig(t, "")

	output := runCLI(t, "--config", cfg, "--folder", folder, "tags")
	if !strings.Contains(output, "solo") || !strings.Contains(output, "red_hair") {
		t.Errorf("tags output missing tags:\n%s", output)
	}
	// Most frequent first.
	if strings.Index(output, "solo") > strings.Index(output, "red_hair") {
		t.Errorf("tags not ordered by frequency:\n%s", output)
	}
}

func TestShowCommandResolvesBaseName(t *testing.T) {
	folder := testsupport.SeedDataset(t, map[string][]string{
		"one.png": {"solo"},
	})
	cfg := writeTestConfig(t, "")

	output := runCLI(t, "--config", cfg, "--folder", folder, "show", "one.png")
	if !strings.Contains(output, "solo") {
		t.Errorf("show output missing tag:\n%s", output)
	}

	if _, err := runCLIErr("--config", cfg, "--folder", folder, "show", "missing.png"); err == nil {
		t.Error("show accepted an unknown image")
	}
}

func TestAddAndRemoveCommands(t *testing.T) {
	folder := testsupport.SeedDataset(t, map[string][]string{
		"one.png": {"a"},
		"two.png": {"a", "extra"},
	})
	cfg := writeTestConfig(t, "")

	output := runCLI(t, "--config", cfg, "--folder", folder, "add", "extra")
	if !strings.Contains(output, "1 image(s)") {
		t.Errorf("add output = %q", output)
	}
	if got := testsupport.ReadSidecar(t, filepath.Join(folder, "one.png")); got != "a, extra" {
		t.Errorf("sidecar = %q", got)
	}

	output = runCLI(t, "--config", cfg, "--folder", folder, "remove", "extra")
	if !strings.Contains(output, "2 image(s)") {
		t.Errorf("remove output = %q", output)
	}
}

func TestRenameCommandSubset(t *testing.T) {
	folder := testsupport.SeedDataset(t, map[string][]string{
		"one.png": {"old"},
		"two.png": {"old"},
	})
	cfg := writeTestConfig(t, "")

	runCLI(t, "--config", cfg, "--folder", folder, "rename", "old", "new", "one.png")
	if got := testsupport.ReadSidecar(t, filepath.Join(folder, "one.png")); got != "new" {
		t.Errorf("one.png sidecar = %q", got)
	}
	if got := testsupport.ReadSidecar(t, filepath.Join(folder, "two.png")); got != "old" {
		t.Errorf("two.png sidecar = %q, want untouched", got)
	}
}

func TestEditCommandUndoWithinSession(t *testing.T) {
	folder := testsupport.SeedDataset(t, map[string][]string{
		"one.png": {"a"},
	})
	cfg := writeTestConfig(t, "")

	output := runCLI(t, "--config", cfg, "--folder", folder, "edit", "add solo", "undo")
	if !strings.Contains(output, "Restored one.png") {
		t.Errorf("edit output = %q", output)
	}
	if got := testsupport.ReadSidecar(t, filepath.Join(folder, "one.png")); got != "a" {
		t.Errorf("sidecar = %q, want original restored", got)
	}
}

func TestSuggestCommand(t *testing.T) {
	folder := testsupport.SeedDataset(t, map[string][]string{
		"one.png": {"color"},
		"two.png": {"colour"},
	})
	cfg := writeTestConfig(t, "")

	output := runCLI(t, "--config", cfg, "--folder", folder, "suggest", "one.png")
	if !strings.Contains(output, "colour") {
		t.Errorf("suggest output missing near-duplicate:\n%s", output)
	}
}

func TestFindCommand(t *testing.T) {
	folder := testsupport.SeedDataset(t, map[string][]string{
		"one.png": {"red_hair"},
		"two.png": {"eyes"},
	})
	cfg := writeTestConfig(t, "")

	output := runCLI(t, "--config", cfg, "--folder", folder, "find", "hair")
	if !strings.Contains(output, "one.png") || strings.Contains(output, "two.png") {
		t.Errorf("find output:\n%s", output)
	}
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	output := runCLI(t, "config", "init", "--path", target)
	if !strings.Contains(output, target) {
		t.Errorf("init output = %q", output)
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("config not written: %v", err)
	}

	if _, err := runCLIErr("config", "init", "--path", target); err == nil {
		t.Error("init overwrote existing config without --overwrite")
	}
}
