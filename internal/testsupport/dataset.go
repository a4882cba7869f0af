package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SeedImage writes a placeholder image file and, when tags is non-nil, a
// sidecar .txt file next to it. Returns the image path.
func SeedImage(t testing.TB, folder, name string, tags []string) string {
	t.Helper()

	path := filepath.Join(folder, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte{0x89, 0x50, 0x4E, 0x47}, 0o644); err != nil {
		t.Fatalf("write image %s: %v", path, err)
	}
	if tags != nil {
		sidecar := strings.TrimSuffix(path, filepath.Ext(path)) + ".txt"
		if err := os.WriteFile(sidecar, []byte(strings.Join(tags, ", ")), 0o644); err != nil {
			t.Fatalf("write sidecar %s: %v", sidecar, err)
		}
	}
	return path
}

// SeedDataset creates a temp folder populated with the given images and
// returns it. Map values of nil produce an image without a sidecar.
func SeedDataset(t testing.TB, images map[string][]string) string {
	t.Helper()

	folder := t.TempDir()
	for name, tags := range images {
		SeedImage(t, folder, name, tags)
	}
	return folder
}

// ReadSidecar returns the raw sidecar contents for an image path.
func ReadSidecar(t testing.TB, image string) string {
	t.Helper()

	sidecar := strings.TrimSuffix(image, filepath.Ext(image)) + ".txt"
	data, err := os.ReadFile(sidecar)
	if err != nil {
		t.Fatalf("read sidecar %s: %v", sidecar, err)
	}
	return string(data)
}
