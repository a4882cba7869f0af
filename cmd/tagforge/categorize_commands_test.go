package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tagforge/internal/category"
	"tagforge/internal/testsupport"
)

func writeTestCatalog(t *testing.T, defs []category.Definition) string {
	t.Helper()

	data, err := json.Marshal(defs)
	if err != nil {
		t.Fatalf("marshal catalog: %v", err)
	}
	path := filepath.Join(t.TempDir(), "categories.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestCategorizeAutoCommand(t *testing.T) {
	folder := testsupport.SeedDataset(t, map[string][]string{
		"one.png": {"eyes", "red_hair"},
	})
	catalog := writeTestCatalog(t, []category.Definition{
		{Name: "Hair", AutoKeywords: []string{"*hair*"}},
	})
	cfg := writeTestConfig(t, catalog)

	output := runCLI(t, "--config", cfg, "--folder", folder, "categorize", "auto")
	if !strings.Contains(output, "Categorized 1 tag(s)") {
		t.Errorf("auto output:\n%s", output)
	}
	if got := testsupport.ReadSidecar(t, filepath.Join(folder, "one.png")); got != "red_hair, eyes" {
		t.Errorf("sidecar = %q, want category order", got)
	}
}

func TestCategorizeAutoDryRun(t *testing.T) {
	folder := testsupport.SeedDataset(t, map[string][]string{
		"one.png": {"eyes", "red_hair"},
	})
	catalog := writeTestCatalog(t, []category.Definition{
		{Name: "Hair", AutoKeywords: []string{"*hair*"}},
	})
	cfg := writeTestConfig(t, catalog)

	output := runCLI(t, "--config", cfg, "--folder", folder, "categorize", "auto", "--dry-run")
	if !strings.Contains(output, "Dry run") {
		t.Errorf("dry run output:\n%s", output)
	}
	if got := testsupport.ReadSidecar(t, filepath.Join(folder, "one.png")); got != "eyes, red_hair" {
		t.Errorf("sidecar = %q, want untouched", got)
	}
}

func TestCategorizeShowCommand(t *testing.T) {
	folder := testsupport.SeedDataset(t, map[string][]string{
		"one.png": {"eyes", "red_hair"},
	})
	catalog := writeTestCatalog(t, []category.Definition{
		{Name: "Hair", AutoKeywords: []string{"*hair*"}},
	})
	cfg := writeTestConfig(t, catalog)

	output := runCLI(t, "--config", cfg, "--folder", folder, "categorize", "show")
	if !strings.Contains(output, "Hair") {
		t.Errorf("show output missing category:\n%s", output)
	}
	if !strings.Contains(output, "Uncategorized (2)") {
		t.Errorf("show output missing uncategorized set:\n%s", output)
	}
}

func TestCategorizeMissingCatalogFails(t *testing.T) {
	folder := testsupport.SeedDataset(t, map[string][]string{
		"one.png": {"eyes"},
	})
	cfg := writeTestConfig(t, filepath.Join(t.TempDir(), "absent.json"))

	output, err := runCLIErr("--config", cfg, "--folder", folder, "categorize", "show")
	if err == nil {
		t.Errorf("missing catalog accepted:\n%s", output)
	}
}
