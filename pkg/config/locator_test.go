package config

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtensionsSorted(t *testing.T) {
	want := []string{".json", ".hcl", ".yml", ".toml", ".yaml", ".tmpl.json", ".tmpl.yaml"}
	if diff := cmp.Diff(want, DefaultExtensions().Sorted()); diff != "" {
		t.Errorf("Sorted() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtensionOf(t *testing.T) {
	l := NewLocator("/work")
	tests := []struct {
		path string
		want string
	}{
		{"/work/webpack.config.tmpl.yaml", ".tmpl.yaml"},
		{"/work/webpack.config.yaml", ".yaml"},
		{"/work/webpack.config.tmpl.json", ".tmpl.json"},
		{"/work/conf.json", ".json"},
		{"/work/conf.cfg", ".cfg"},
		{"/work/conf", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := l.ExtensionOf(tt.path); got != tt.want {
				t.Errorf("ExtensionOf(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLocateExplicit(t *testing.T) {
	l := NewLocator("/work", WithExists(func(string) bool {
		t.Error("explicit config paths must not be checked for existence")
		return false
	}))

	got := l.Locate([]string{
		"conf/a.yaml",
		"/abs/b.tmpl.json",
		"cm://build/webpack",
		"https://example.com/webpack.config.toml?ref=main",
		"https://example.com/config",
	})
	want := []Descriptor{
		{Path: filepath.Join("/work", "conf/a.yaml"), Ext: ".yaml"},
		{Path: "/abs/b.tmpl.json", Ext: ".tmpl.json"},
		{Path: "cm://build/webpack", Ext: ".yaml"},
		{Path: "https://example.com/webpack.config.toml?ref=main", Ext: ".toml"},
		{Path: "https://example.com/config", Ext: ".yaml"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Locate() mismatch (-want +got):\n%s", diff)
	}
}

func TestLocateDefault(t *testing.T) {
	var checked []string
	existing := map[string]bool{
		"/work/webpackfile.json":    true,
		"/work/webpack.config.yml":  true,
		"/work/webpack.config.yaml": true,
	}
	l := NewLocator("/work", WithExists(func(p string) bool {
		checked = append(checked, p)
		return existing[p]
	}))

	got := l.Locate(nil)
	want := []Descriptor{{Path: "/work/webpack.config.yml", Ext: ".yml"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Locate() mismatch (-want +got):\n%s", diff)
	}

	wantChecked := []string{"/work/webpack.config.json", "/work/webpack.config.hcl", "/work/webpack.config.yml"}
	if diff := cmp.Diff(wantChecked, checked); diff != "" {
		t.Errorf("existence checks mismatch (-want +got):\n%s", diff)
	}
}

func TestLocateNone(t *testing.T) {
	l := NewLocator("/work", WithExists(func(string) bool { return false }))
	if got := l.Locate(nil); got != nil {
		t.Errorf("Locate() = %v, want nil", got)
	}
	if n := len(l.Candidates()); n != 14 {
		t.Errorf("len(Candidates()) = %d, want 14", n)
	}
}

func TestLocateRealFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "webpackfile.toml", "entry = \"./a\"\n")

	got := NewLocator(dir).Locate(nil)
	want := []Descriptor{{Path: filepath.Join(dir, "webpackfile.toml"), Ext: ".toml"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Locate() mismatch (-want +got):\n%s", diff)
	}
}

func TestWithBaseNames(t *testing.T) {
	l := NewLocator("/work",
		WithBaseNames("build"),
		WithLocatorExtensions(Extensions{".json": {}}),
	)
	want := []Descriptor{{Path: "/work/build.json", Ext: ".json"}}
	if diff := cmp.Diff(want, l.Candidates()); diff != "" {
		t.Errorf("Candidates() mismatch (-want +got):\n%s", diff)
	}
}
