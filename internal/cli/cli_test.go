package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/factoriogen/pkg/pipeline"
)

// runCLI executes the root command with args and returns what was printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCLIContext(t, context.Background(), args...)
}

func runCLIContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer

	old := stdout
	stdout = &out
	t.Cleanup(func() { stdout = old })
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&logs)

	err := root.ExecuteContext(ctx)
	return out.String(), err
}

// registryConfig starts a fake mod portal and writes a config pointing at it.
func registryConfig(t *testing.T) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/mods/flib":
			w.Write([]byte(`{"name":"flib","releases":[{"version":"0.13.0"},{"version":"0.14.0"}]}`))
		case "/mods/down":
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	return writeFile(t, t.TempDir(), "factoriogen.toml", `
registry_url = "`+server.URL+`"
request_timeout = "2s"
builtin_mods = ["space-age"]
`)
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		{"1.10.0", "1.9.0", "1"},
		{"1.0", "1.0.0", "0"},
		{"1.0.0-beta", "1.0.0", "-1"},
	}
	for _, tt := range tests {
		out, err := runCLI(t, "version", "compare", tt.a, tt.b)
		if err != nil {
			t.Fatalf("compare %s %s: %v", tt.a, tt.b, err)
		}
		if strings.TrimSpace(out) != tt.want {
			t.Errorf("compare %s %s = %q, want %s", tt.a, tt.b, out, tt.want)
		}
	}
}

func TestDepsParse(t *testing.T) {
	out, err := runCLI(t, "deps", "parse", "? flib >= 0.14.0", "! old-mod")
	if err != nil {
		t.Fatalf("deps parse: %v", err)
	}
	for _, want := range []string{"? flib >= 0.14.0", "optional (?)", ">= 0.14.0", "incompatible (!)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = runCLI(t, "deps", "parse", "--json", "~ flib = 1.0.0")
	if err != nil {
		t.Fatalf("deps parse --json: %v", err)
	}
	if !strings.Contains(out, `"name": "flib"`) || !strings.Contains(out, `"version": "1.0.0"`) || !strings.Contains(out, `"relation": "~"`) {
		t.Errorf("json output = %s", out)
	}

	out, err = runCLI(t, "deps", "parse", "flib >=")
	if !errors.Is(err, errInvalidDependencies) {
		t.Errorf("err = %v, want errInvalidDependencies", err)
	}
	if !strings.Contains(out, "operator") {
		t.Errorf("output should explain the error:\n%s", out)
	}
}

func TestDepsCheck(t *testing.T) {
	cfg := registryConfig(t)

	out, err := runCLI(t, "--config", cfg, "deps", "check", "base", "space-age", "flib >= 0.14.0")
	if err != nil {
		t.Fatalf("deps check: %v", err)
	}
	if !strings.Contains(out, "All dependencies are available") {
		t.Errorf("output = %s", out)
	}

	out, err = runCLI(t, "--config", cfg, "deps", "check", "flib > 1.0.0", "missing-mod")
	if err != nil {
		t.Fatalf("deps check with warnings: %v", err)
	}
	for _, want := range []string{"Available versions: 0.14.0, 0.13.0", "missing-mod", "with warnings"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	_, err = runCLI(t, "--config", cfg, "deps", "check", "--sequential", "down")
	if !errors.Is(err, errInvalidDependencies) {
		t.Errorf("err = %v, want errInvalidDependencies", err)
	}

	_, err = runCLI(t, "--config", cfg, "deps", "check", "--strict", "missing-mod")
	if !errors.Is(err, errInvalidDependencies) {
		t.Errorf("strict err = %v, want errInvalidDependencies", err)
	}
}

func TestCancelled(t *testing.T) {
	cfg := registryConfig(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "package.json", `{
  "name": "my-mod",
  "version": "1.0.0",
  "author": "Jane",
  "factorio": {"title": "My Mod", "dependencies": ["flib"]}
}`)
	output := filepath.Join(dir, "info.json")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := runCLIContext(t, ctx, "--config", cfg, "deps", "check", "flib")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("deps check err = %v, want context.Canceled", err)
	}
	if strings.Contains(out, "No errors") || strings.Contains(out, "All dependencies") {
		t.Errorf("cancelled check must not report success:\n%s", out)
	}

	_, err = runCLIContext(t, ctx, "--config", cfg, "generate", input, output)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("generate err = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("info.json must not be written when cancelled")
	}
}

func TestGenerate(t *testing.T) {
	cfg := registryConfig(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "package.json", `{
  "name": "my-mod",
  "version": "1.0.0",
  "author": "Jane",
  "factorio": {"title": "My Mod", "factorio_version": "2.0", "dependencies": ["base >= 2.0.0", "? flib >= 0.14.0"]}
}`)
	output := filepath.Join(dir, "info.json")

	out, err := runCLI(t, "--config", cfg, "generate", input, output)
	if err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Generated info.json") || strings.Contains(out, "with warnings") {
		t.Errorf("output = %s", out)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"? flib >= 0.14.0"`) {
		t.Errorf("info.json = %s", data)
	}
}

func TestGenerate_Failures(t *testing.T) {
	cfg := registryConfig(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "package.json", `{
  "name": "my-mod",
  "version": "1.0.0",
  "author": "Jane",
  "factorio": {"title": "My Mod", "dependencies": ["down"]}
}`)
	output := filepath.Join(dir, "info.json")

	_, err := runCLI(t, "--config", cfg, "generate", "-i", input, "-o", output)
	if !errors.Is(err, errGenerateFailed) {
		t.Fatalf("err = %v, want errGenerateFailed", err)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("info.json must not be written")
	}

	out, err := runCLI(t, "--config", cfg, "generate", "-i", input, "-o", output, "--no-validate-dependencies")
	if err != nil {
		t.Fatalf("generate without validation: %v", err)
	}
	if !strings.Contains(out, "Generated info.json") {
		t.Errorf("output = %s", out)
	}

	_, err = runCLI(t, "generate", filepath.Join(dir, "missing.json"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("missing input err = %v", err)
	}
}

func TestGenerateOptions(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	cfg := defaultConfig()
	cfg.Parallel = false

	tests := []struct {
		name  string
		flags []string
		args  []string
		check func(t *testing.T, o pipeline.Options)
	}{
		{
			name: "defaults from config",
			check: func(t *testing.T, o pipeline.Options) {
				if o.Input != "" || o.SkipValidation || !o.Sequential || o.Timeout != 30*time.Second {
					t.Errorf("opts = %+v", o)
				}
			},
		},
		{
			name: "positional",
			args: []string{"a.json", "b.json"},
			check: func(t *testing.T, o pipeline.Options) {
				if o.Input != "a.json" || o.Output != "b.json" {
					t.Errorf("opts = %+v", o)
				}
			},
		},
		{
			name:  "flags win over positional",
			flags: []string{"-i", "flag.json", "--sequential=false", "--no-validate-dependencies", "--timeout", "5s"},
			args:  []string{"pos.json", "out.json"},
			check: func(t *testing.T, o pipeline.Options) {
				if o.Input != "flag.json" || o.Output != "out.json" {
					t.Errorf("paths = %+v", o)
				}
				if !o.SkipValidation || o.Sequential || o.Timeout != 5*time.Second {
					t.Errorf("flags = %+v", o)
				}
			},
		},
		{
			name:  "validate flag",
			flags: []string{"--validate-dependencies"},
			check: func(t *testing.T, o pipeline.Options) {
				if o.SkipValidation {
					t.Error("SkipValidation should be false")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := c.generateCommand()
			if err := cmd.ParseFlags(tt.flags); err != nil {
				t.Fatalf("ParseFlags: %v", err)
			}
			var opts generateOpts
			opts.input, _ = cmd.Flags().GetString("input")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.validate, _ = cmd.Flags().GetBool("validate-dependencies")
			opts.noValidate, _ = cmd.Flags().GetBool("no-validate-dependencies")
			opts.sequential, _ = cmd.Flags().GetBool("sequential")
			opts.timeout, _ = cmd.Flags().GetDuration("timeout")
			tt.check(t, opts.pipelineOptions(cmd, tt.args, cfg))
		})
	}
}
