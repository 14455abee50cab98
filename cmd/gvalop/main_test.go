package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zephyrtronium/gvalop"
)

const songs = `Bob Marley - Stir It Up (Stephen Marley remix)
Damian Marley & Stephen Marley - Medication
Bob Marley - Is This Love
Ziggy Marley - Tomorrow People
Stephen Marley - Traffic Jam
Peter Tosh - Legalize It
`

const songsExpr = "marley && (stephen && !(ziggy || damian) || bob)"

// execute runs the root command with args and returns everything it wrote.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cfgFile, logLevel, logFormat, spaced = "", "", "", false
	filterFlags.invert, filterFlags.count = false, false
	calcFlags.prec, calcFlags.verb, calcFlags.echo, calcFlags.lines = 0, "%g", false, false
	treeFlags.mode, treeFlags.values = "logic", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "match",
			args: []string{"filter", songsExpr},
			want: "Bob Marley - Stir It Up (Stephen Marley remix)\nBob Marley - Is This Love\nStephen Marley - Traffic Jam\n",
		},
		{
			name: "invert",
			args: []string{"filter", "--invert", songsExpr},
			want: "Damian Marley & Stephen Marley - Medication\nZiggy Marley - Tomorrow People\nPeter Tosh - Legalize It\n",
		},
		{
			name: "count",
			args: []string{"filter", "--count", "marley"},
			want: "5\n",
		},
		{
			name: "spaced",
			args: []string{"filter", "--spaced", "bob marley || peter tosh"},
			want: "Bob Marley - Stir It Up (Stephen Marley remix)\nBob Marley - Is This Love\nPeter Tosh - Legalize It\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, songs, tt.args...)
			if err != nil {
				t.Fatalf("filter error = %v", err)
			}
			if got != tt.want {
				t.Errorf("filter output:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestFilterFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(a, []byte("one fish\ntwo fish\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("red fish\nblue whale\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := execute(t, "green fish\n", "filter", "fish && !two", a, "-", b)
	if err != nil {
		t.Fatalf("filter error = %v", err)
	}
	if want := "one fish\ngreen fish\nred fish\n"; got != want {
		t.Errorf("filter output:\n%s\nwant:\n%s", got, want)
	}

	if _, err := execute(t, "", "filter", "fish", filepath.Join(dir, "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("filter on missing file error = %v, want not exist", err)
	}
}

func TestFilterInvalid(t *testing.T) {
	_, err := execute(t, songs, "filter", "(marley")
	var e *gvalop.UnbalancedGroupingError
	if !errors.As(err, &e) {
		t.Fatalf("filter error = %v, want *UnbalancedGroupingError", err)
	}
	if e.Pos() != 1 {
		t.Errorf("error position = %d, want 1", e.Pos())
	}

	if _, err := execute(t, songs, "filter"); err == nil {
		t.Error("filter with no expression succeeded")
	}
}

func TestCalc(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"args", "", []string{"calc", "1 + 2 * 3", "1 + (2 * 3)"}, "9\n7\n"},
		{"echo", "", []string{"calc", "--echo", "1 + 2 * 3"}, "[[1 + 2] * 3] : 9\n"},
		{"stdin", "1 +\n  2\n", []string{"calc"}, "3\n"},
		{"lines", "1 + 1\n\n2 ^ 10\n", []string{"calc", "-n"}, "2\n1024\n"},
		{"prec", "", []string{"calc", "-p", "256", "--fmt", "%.30f", "1 / 3"}, "0.333333333333333333333333333333\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("calc error = %v", err)
			}
			if got != tt.want {
				t.Errorf("calc output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCalcErrors(t *testing.T) {
	got, err := execute(t, "", "calc", "1 +", "2 * 2", "sqrt ~4")
	if err == nil {
		t.Fatal("calc with bad expressions succeeded")
	}
	if !strings.Contains(err.Error(), "2 of 3") {
		t.Errorf("calc error = %v, want failure count", err)
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) < 3 {
		t.Fatalf("calc output = %q", got)
	}
	if !strings.Contains(lines[0], "no right operand") {
		t.Errorf("first line = %q, want arity error", lines[0])
	}
	if lines[1] != "4" {
		t.Errorf("second line = %q, want 4", lines[1])
	}
	if !strings.Contains(lines[2], "sqrt") {
		t.Errorf("third line = %q, want domain error", lines[2])
	}

	if _, err := execute(t, "", "calc", "-p", "4294967296", "1"); err == nil {
		t.Error("calc with out of range precision succeeded")
	}
}

func TestTree(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"logic", []string{"tree", "a && b || !c"}, "[[a && b] || [!c]]\n"},
		{"arith", []string{"tree", "--mode", "arith", "1 + 2 * sqrt 3"}, "[[1 + 2] * [sqrt3]]\n"},
		{"values", []string{"tree", "--values", "a && (b || c)"}, "[a && ([b || c])]\na\nb\nc\n"},
		{"spaced", []string{"tree", "--spaced", "--values", "bob marley && ziggy"}, "[bob marley && ziggy]\nbob marley\nziggy\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, "", tt.args...)
			if err != nil {
				t.Fatalf("tree error = %v", err)
			}
			if got != tt.want {
				t.Errorf("tree output = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := execute(t, "", "tree", "--mode", "regex", "a"); err == nil {
		t.Error("tree with unknown mode succeeded")
	}
	if _, err := execute(t, "", "tree", "a &&"); err == nil {
		t.Error("tree with invalid expression succeeded")
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gvalop.yaml")
	content := `
logic:
  and: and
  or: or
  not: not
groupings:
  - start: "<"
    end: ">"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := execute(t, "", "--config", path, "tree", "a and <b or not c>")
	if err != nil {
		t.Fatalf("tree error = %v", err)
	}
	if want := "[a and <[b or [notc]]>]\n"; got != want {
		t.Errorf("tree output = %q, want %q", got, want)
	}

	if _, err := execute(t, "", "--config", filepath.Join(dir, "missing.yaml"), "tree", "a"); err == nil {
		t.Error("missing config file succeeded")
	}
	if _, err := execute(t, "", "--log-format", "xml", "tree", "a"); err == nil {
		t.Error("invalid log format succeeded")
	}
}

func TestVersion(t *testing.T) {
	got, err := execute(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "gvalop "+Version+"\n") {
		t.Errorf("version output = %q", got)
	}
	if !strings.Contains(got, "Go Version: go") {
		t.Errorf("version output lacks Go version: %q", got)
	}
}

func TestCommandsExist(t *testing.T) {
	for _, name := range []string{"filter", "calc", "tree", "serve", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not found: %v", name, err)
		}
	}
}
