package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.go", "package a\n")
	writeFile(t, root, "node_modules/pkg/dep.js", "module.exports = {}\n")
	writeFile(t, root, "README.md", "# readme\n")
	writeFile(t, root, "requirements.txt", "flask==2.3.1\n")
	writeFile(t, root, "app.min.js", "var x=1\n")

	units, err := Scan(Options{
		Roots:        []string{root},
		ExcludeDirs:  DefaultExcludeDirs(),
		ExcludeFiles: []string{"*.min.js"},
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	var paths []string
	for _, u := range units {
		paths = append(paths, u.Path)
	}
	want := []string{"requirements.txt", "src/a.go"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
	if string(units[1].Content) != "package a\n" {
		t.Errorf("content = %q", units[1].Content)
	}
}

func TestScanExcludePaths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.go", "package a\n")
	writeFile(t, root, "report/analysis.json", `{"summary":{}}`)

	units, err := Scan(Options{
		Roots:        []string{root},
		ExcludePaths: []string{filepath.Join(root, "report", "analysis.json"), ""},
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(units) != 1 || units[0].Path != "src/a.go" {
		var paths []string
		for _, u := range units {
			paths = append(paths, u.Path)
		}
		t.Errorf("paths = %v, want [src/a.go]", paths)
	}
}

func TestScanInvalidPattern(t *testing.T) {
	_, err := Scan(Options{
		Roots:       []string{t.TempDir()},
		ExcludeDirs: []string{"[unclosed"},
	})
	if err == nil {
		t.Error("Expected error for invalid glob pattern")
	}
}

func TestInteresting(t *testing.T) {
	cases := []struct {
		base string
		want bool
	}{
		{"main.go", true},
		{"Dockerfile", true},
		{"Makefile", true},
		{"go.mod", true},
		{"package.json", true},
		{"pom.xml", true},
		{"pyproject.toml", true},
		{"readme.md", false},
		{"photo.png", false},
	}
	for _, tc := range cases {
		if got := interesting(tc.base); got != tc.want {
			t.Errorf("interesting(%q) = %v, want %v", tc.base, got, tc.want)
		}
	}
}
