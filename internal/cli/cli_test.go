package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func testCLI() *CLI {
	return New(io.Discard, log.ErrorLevel)
}

func TestRootCommandSubcommands(t *testing.T) {
	root := testCLI().RootCommand()

	want := []string{"render", "flags", "fetch", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestLoadManifestMissingDefault(t *testing.T) {
	// The default manifest is optional; rendering inline patterns must
	// work without one.
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(orig) })

	manifest, err := testCLI().loadManifest("")
	if err != nil {
		t.Fatalf("loadManifest() error: %v", err)
	}
	if len(manifest.Flags) != 0 {
		t.Errorf("len(flags) = %d, want 0", len(manifest.Flags))
	}
}

func TestLoadManifestMissingExplicit(t *testing.T) {
	if _, err := testCLI().loadManifest("/does/not/exist.json"); err == nil {
		t.Fatal("expected error for missing explicit manifest")
	}
}

func TestLoadManifestFromTOMLSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.toml")
	source := `version = "1"

[[flags]]
id = "ukraine"
display_name = "Ukraine"
category = "national"
orientation = "horizontal"
stripes = [
  { color = "#0057B7", weight = 1.0 },
  { color = "#FFD700", weight = 1.0 },
]

[[flags]]
id = "broken"
display_name = "Broken"
category = "test"
orientation = "horizontal"
stripes = [{ color = "mauve", weight = 1.0 }]
`
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	manifest, err := testCLI().loadManifest(path)
	if err != nil {
		t.Fatalf("loadManifest() error: %v", err)
	}
	if len(manifest.Flags) != 1 || manifest.Flags[0].ID != "ukraine" {
		t.Errorf("flags = %+v, want only ukraine", manifest.Flags)
	}
}

func TestLoadManifestJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	data := `{"version":"1","generated_at":"2025-01-01T00:00:00Z","flags":[{"id":"trans","display_name":"Transgender Pride","category":"pride","orientation":"horizontal","stripes":[{"color":"#5BCEFA","weight":1}]}]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	manifest, err := testCLI().loadManifest(path)
	if err != nil {
		t.Fatalf("loadManifest() error: %v", err)
	}
	if len(manifest.Flags) != 1 || manifest.Flags[0].ID != "trans" {
		t.Errorf("flags = %+v", manifest.Flags)
	}
}
