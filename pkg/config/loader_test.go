package config

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/packcfg/packcfg/pkg/argv"
	"github.com/packcfg/packcfg/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func loadFiles(t *testing.T, args *argv.Arguments, loader *Loader, paths ...string) (*Result, error) {
	t.Helper()
	descs := NewLocator(t.TempDir()).Locate(paths)
	return loader.Load(context.Background(), descs, args)
}

func TestLoadFormats(t *testing.T) {
	dir := t.TempDir()
	want := map[string]any{
		"entry":  "./src",
		"output": map[string]any{"filename": "bundle.js"},
	}

	tests := []struct {
		file    string
		content string
	}{
		{"webpack.config.json", `{"entry": "./src", "output": {"filename": "bundle.js"}}`},
		{"webpack.config.yaml", "entry: ./src\noutput:\n  filename: bundle.js\n"},
		{"webpack.config.yml", "entry: ./src\noutput:\n  filename: bundle.js\n"},
		{"webpack.config.toml", "entry = \"./src\"\n\n[output]\nfilename = \"bundle.js\"\n"},
		{"webpack.config.hcl", "entry = \"./src\"\noutput = { filename = \"bundle.js\" }\n"},
		{"webpack.config.tmpl.yaml", "entry: ./src\noutput:\n  filename: {{ \"bundle.js\" }}\n"},
		{"webpack.config.tmpl.json", `{"entry": "./src", "output": {"filename": {{ toJSON "bundle.js" }}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			p := writeFile(t, dir, tt.file, tt.content)
			res, err := loadFiles(t, argv.New(), NewLoader(), p)
			require.NoError(t, err)
			assert.True(t, res.Loaded)
			assert.False(t, res.Array)
			require.Len(t, res.Configs, 1)
			assert.Equal(t, want, res.Configs[0])
		})
	}
}

func TestLoadNoFiles(t *testing.T) {
	res, err := NewLoader().Load(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.False(t, res.Loaded)
	assert.False(t, res.Array)
	assert.Equal(t, []map[string]any{{}}, res.Configs)
}

func TestLoadFactories(t *testing.T) {
	dir := t.TempDir()
	args := argv.New()
	args.Env = map[string]any{"production": true}
	args.Set("target", argv.String("node"))

	hclPath := writeFile(t, dir, "webpack.config.hcl", `
target = argv.target
output = { filename = env.production ? "bundle.min.js" : "bundle.js" }
`)
	tmplPath := writeFile(t, dir, "webpack.config.tmpl.yaml", `
target: {{ .Argv.target }}
output:
  filename: {{ if .Env.production }}bundle.min.js{{ else }}bundle.js{{ end }}
`)

	want := map[string]any{
		"target": "node",
		"output": map[string]any{"filename": "bundle.min.js"},
	}
	for _, p := range []string{hclPath, tmplPath} {
		t.Run(filepath.Base(p), func(t *testing.T) {
			res, err := loadFiles(t, args, NewLoader(), p)
			require.NoError(t, err)
			require.Len(t, res.Configs, 1)
			assert.Equal(t, want, res.Configs[0])
		})
	}
}

func TestLoadHCLNumbers(t *testing.T) {
	p := writeFile(t, t.TempDir(), "webpack.config.hcl", "watchOptions = { aggregateTimeout = 300, poll = 1.5 }\nextensions = [\"\", \".js\"]\n")
	res, err := loadFiles(t, argv.New(), NewLoader(), p)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"watchOptions": map[string]any{"aggregateTimeout": 300, "poll": 1.5},
		"extensions":   []any{"", ".js"},
	}, res.Configs[0])
}

func TestLoadMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"entry": "a"}`)
	b := writeFile(t, dir, "b.yaml", "- entry: b1\n- entry: b2\n")

	res, err := loadFiles(t, argv.New(), NewLoader(), a, b)
	require.NoError(t, err)
	assert.True(t, res.Array)
	assert.Len(t, res.Files, 2)
	assert.Equal(t, []map[string]any{{"entry": "a"}, {"entry": "b1"}, {"entry": "b2"}}, res.Configs)
}

func TestLoadSingleArrayFile(t *testing.T) {
	p := writeFile(t, t.TempDir(), "webpack.config.json", `[{"entry": "a"}, {"entry": "b"}]`)
	res, err := loadFiles(t, argv.New(), NewLoader(), p)
	require.NoError(t, err)
	assert.True(t, res.Array)
	assert.Len(t, res.Configs, 2)
}

func TestLoadDefaultExport(t *testing.T) {
	p := writeFile(t, t.TempDir(), "webpack.config.json", `{"default": {"entry": "x"}}`)
	res, err := loadFiles(t, argv.New(), NewLoader(), p)
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"entry": "x"}}, res.Configs)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		file     string
		content  string
		loader   *Loader
		wantCode errors.ErrorCode
	}{
		{
			name:     "missing file",
			file:     "",
			wantCode: errors.ErrCodeNotFound,
		},
		{
			name:     "unknown extension",
			file:     "webpack.config.cfg",
			content:  "entry=x",
			wantCode: errors.ErrCodeNotFound,
		},
		{
			name:     "scalar export",
			file:     "scalar.json",
			content:  `"webpack"`,
			wantCode: errors.ErrCodeInvalidConfig,
		},
		{
			name:     "malformed json",
			file:     "broken.json",
			content:  `{"entry": `,
			wantCode: errors.ErrCodeInvalidConfig,
		},
		{
			name:     "hcl with blocks",
			file:     "blocks.hcl",
			content:  "output {\n  filename = \"x\"\n}\n",
			wantCode: errors.ErrCodeInvalidConfig,
		},
		{
			name:     "missing compiler module",
			file:     "webpack.config.toml",
			content:  "entry = \"x\"\n",
			loader:   NewLoader(WithModules(map[string]CompilerModule{})),
			wantCode: errors.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(dir, "does-not-exist.json")
			if tt.file != "" {
				p = writeFile(t, dir, tt.file, tt.content)
			}
			loader := tt.loader
			if loader == nil {
				loader = NewLoader()
			}
			_, err := loadFiles(t, argv.New(), loader, p)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.CodeOf(err), "error: %v", err)
		})
	}
}

func TestRegisterCompilerFallback(t *testing.T) {
	var attempts []string
	failing := func(*Hooks) (any, error) {
		attempts = append(attempts, YAMLModule)
		return nil, fmt.Errorf("unavailable")
	}
	goccy := DefaultModules()[GoccyYAMLModule]
	modules := map[string]CompilerModule{
		YAMLModule: failing,
		GoccyYAMLModule: func(h *Hooks) (any, error) {
			attempts = append(attempts, GoccyYAMLModule)
			return goccy(h)
		},
	}

	p := writeFile(t, t.TempDir(), "webpack.config.yaml", "entry: ./src\n")
	res, err := loadFiles(t, argv.New(), NewLoader(WithModules(modules)), p)
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"entry": "./src"}}, res.Configs)
	assert.Equal(t, []string{YAMLModule, GoccyYAMLModule}, attempts)
}

func TestRegisterCompilerFirstWins(t *testing.T) {
	calls := 0
	l := NewLoader(WithModules(map[string]CompilerModule{
		"first":  func(*Hooks) (any, error) { calls++; return nil, nil },
		"second": func(*Hooks) (any, error) { t.Error("second alternative must not load"); return nil, nil },
	}))
	require.NoError(t, l.registerCompiler(FirstOf(Module("first"), Module("second"))))
	require.NoError(t, l.registerCompiler(Module("first")))
	assert.Equal(t, 1, calls, "modules load once")
}

func TestRegisterCompilerWithRegister(t *testing.T) {
	var got any
	l := NewLoader(WithModules(map[string]CompilerModule{
		"mod": func(*Hooks) (any, error) { return "export", nil },
	}))
	c := ModuleWithRegister("mod", func(export any, _ *Hooks) error {
		got = export
		return nil
	})
	require.NoError(t, l.registerCompiler(c))
	assert.Equal(t, "export", got)

	bad := ModuleWithRegister("mod", func(any, *Hooks) error { return fmt.Errorf("boom") })
	assert.Equal(t, errors.ErrCodeInternal, errors.CodeOf(l.registerCompiler(bad)))
}

func TestLoadRemoteHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/webpack.config.json":
			_, _ = w.Write([]byte(`{"entry": "./remote"}`))
		case "/webpack.config.hcl":
			_, _ = w.Write([]byte(`entry = "./remote"`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	loader := NewLoader(WithFetcher(NewRemoteFetcher("")))

	res, err := loadFiles(t, argv.New(), loader, server.URL+"/webpack.config.json")
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"entry": "./remote"}}, res.Configs)

	_, err = loadFiles(t, argv.New(), loader, server.URL+"/missing.json")
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))

	// A remote HCL file resolves to a factory after the wait, which is
	// not an object.
	_, err = loadFiles(t, argv.New(), loader, server.URL+"/webpack.config.hcl")
	assert.Equal(t, errors.ErrCodeInvalidConfig, errors.CodeOf(err))
}

func TestLoadRemoteConfigMap(t *testing.T) {
	k8s := fake.NewSimpleClientset(&corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "webpack", Namespace: "build"},
		Data:       map[string]string{"config.yaml": "entry: ./cm\n"},
	})
	loader := NewLoader(WithFetcher(NewRemoteFetcher("").WithKubeClient(k8s)))

	res, err := loadFiles(t, argv.New(), loader, "cm://build/webpack")
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"entry": "./cm"}}, res.Configs)

	_, err = loadFiles(t, argv.New(), loader, "cm://build/missing")
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
}
