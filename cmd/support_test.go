package cmd

import (
	"bytes"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/auragold"
	"github.com/google/subcommands"
)

func TestCompletion(t *testing.T) {
	top := flag.NewFlagSet("auragold", flag.ContinueOnError)
	top.String("driver", "", "")
	top.Bool("v", false, "")
	cdr := subcommands.NewCommander(top, "auragold")
	Register(cdr)

	root := Completion(cdr, top)

	if got := root.Flags["driver"].Predict(""); !slices.Equal(got, []string{"file", "sqlite"}) {
		t.Errorf("-driver predicts %q", got)
	}
	if _, ok := root.Flags["v"]; !ok {
		t.Error("global flag -v is not completed")
	}
	for _, name := range []string{"ledgers", "new", "rename", "remove", "use", "add", "delete", "records",
		"stats", "summary", "query", "export", "import", "settings", "topic"} {
		if _, ok := root.Sub[name]; !ok {
			t.Errorf("command %q is not completed", name)
		}
	}

	imp := root.Sub["import"]
	if got := imp.Flags["mode"].Predict(""); !slices.Equal(got, []string{"add", "merge", "replace"}) {
		t.Errorf("import -mode predicts %q", got)
	}
	if _, ok := imp.Flags["y"]; !ok {
		t.Error("import -y is not completed")
	}

	topics := root.Sub["topic"].Args.Predict("")
	for _, want := range []string{"format", "merge", "readme"} {
		if !slices.Contains(topics, want) {
			t.Errorf("topic arguments %q do not contain %q", topics, want)
		}
	}
}

func TestRunExtension(t *testing.T) {
	dir := setup(t)

	script := "#!/bin/sh\necho \"store=$AURAGOLD_STORE_PATH currency=$AURAGOLD_CURRENCY args=$*\"\nexit 3\n"
	if err := os.WriteFile(filepath.Join(dir, "auragold-hello"), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	var out bytes.Buffer
	stdout = &out
	defer func() { stdout = os.Stdout }()

	found, code := RunExtension("hello", []string{"a", "b"})
	if !found || code != 3 {
		t.Fatalf("RunExtension() = %v, %d, want true, 3", found, code)
	}
	want := "store=" + *storePath + " currency=USD args=a b\n"
	if got := out.String(); got != want {
		t.Errorf("extension printed %q, want %q", got, want)
	}

	if found, _ := RunExtension("does-not-exist", nil); found {
		t.Error("RunExtension() found a missing extension")
	}
}

func TestSetupLogger(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	logger := SetupLogger(&buf, false, "json")
	logger.Info("hidden")
	logger.Warn("shown", "ledgers", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want only the warning:\n%s", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "shown" || entry["level"] != "WARN" || entry["ledgers"] != float64(2) {
		t.Errorf("unexpected log entry %v", entry)
	}

	buf.Reset()
	SetupLogger(&buf, true, "text").Debug("details", "path", "x")
	if !strings.Contains(buf.String(), "level=DEBUG") || !strings.Contains(buf.String(), "source=") {
		t.Errorf("verbose text log = %q", buf.String())
	}
}

func TestRenderMarkdown(t *testing.T) {
	for _, theme := range []auragold.Theme{auragold.ThemeDark, auragold.ThemeLight} {
		out, err := renderMarkdown("# Title\n\nSome *text*.\n", theme)
		if err != nil {
			t.Fatalf("renderMarkdown(%q) unexpected error: %v", theme, err)
		}
		if !strings.Contains(out, "Title") || !strings.Contains(out, "text") {
			t.Errorf("renderMarkdown(%q) = %q", theme, out)
		}
	}
}
