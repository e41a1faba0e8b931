// Package golden provides a framework for writing file-based golden tests
// over interval set operation sequences described in YAML fixtures.
//
// The primary entry-point is [Corpus]. Define a corpus in an ordinary Go
// test body and call [Corpus.Run] to execute it.
package golden

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"
)

// Op is a single step in a [Scenario]: exactly one of Insert or Remove must
// be set.
type Op struct {
	Insert *[2]int `yaml:"insert,omitempty"`
	Remove *[2]int `yaml:"remove,omitempty"`
}

// Scenario is one YAML-described test case: a sequence of operations applied
// to an initially empty set, plus the rendered state expected afterward.
type Scenario struct {
	Name string `yaml:"name"`
	Ops  []Op   `yaml:"ops"`

	// Want is the expected final state as rendered by the test's render
	// callback (typically IntervalSet.String). It is compared against the
	// "<path>.want" sibling file rather than this field when that file
	// exists, so that large expectations don't have to live inline.
	Want string `yaml:"want,omitempty"`
}

// Corpus describes a directory of YAML scenario fixtures.
type Corpus struct {
	// Root is the directory holding *.yaml fixtures, relative to the
	// directory of the file that calls [Corpus.Run].
	Root string

	// Refresh names an environment variable holding a glob (matched with
	// doublestar) of scenario names to regenerate expectations for, instead
	// of comparing against them.
	Refresh string
}

// Run loads every *.yaml file under c.Root and, for each, calls run to
// replay the scenario's operations and return the resulting rendering. Run
// then compares that rendering against the scenario's expectation, or
// rewrites the "<path>.want" file when the scenario matches the refresh glob.
func (c Corpus) Run(t *testing.T, run func(t *testing.T, s Scenario) (got string)) {
	t.Helper()
	testDir := callerDir(t, 1)
	root := filepath.Join(testDir, c.Root)

	var paths []string
	err := filepath.Walk(root, func(p string, fi fs.FileInfo, err error) error {
		if err != nil || fi.IsDir() {
			return err
		}
		if strings.HasSuffix(p, ".yaml") {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("golden: error walking %q: %v", root, err)
	}

	var refreshGlob string
	if c.Refresh != "" {
		refreshGlob = os.Getenv(c.Refresh)
		if refreshGlob != "" && !doublestar.ValidatePattern(refreshGlob) {
			t.Fatalf("golden: invalid refresh glob %q", refreshGlob)
		}
	}

	for _, path := range paths {
		path := path
		raw, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("golden: error reading %q: %v", path, err)
		}

		var s Scenario
		if err := yaml.Unmarshal(raw, &s); err != nil {
			t.Fatalf("golden: error parsing %q: %v", path, err)
		}
		if s.Name == "" {
			s.Name, _ = filepath.Rel(root, path)
		}

		t.Run(s.Name, func(t *testing.T) {
			got := run(t, s)

			refresh := refreshGlob != ""
			if refresh {
				matched, _ := doublestar.Match(refreshGlob, s.Name)
				refresh = matched
			}

			wantPath := path + ".want"
			if refresh {
				if err := os.WriteFile(wantPath, []byte(got), 0o600); err != nil {
					t.Fatalf("golden: error writing %q: %v", wantPath, err)
				}
				return
			}

			want := s.Want
			if wantBytes, err := os.ReadFile(wantPath); err == nil {
				want = string(wantBytes)
			} else if !errors.Is(err, os.ErrNotExist) {
				t.Fatalf("golden: error reading %q: %v", wantPath, err)
			}

			if diff := CompareAndDiff(got, want); diff != "" {
				t.Errorf("golden mismatch for %q:\n%s", s.Name, diff)
			}
		})
	}
}

// CompareAndDiff returns a unified diff of got against want, or the empty
// string if they match.
func CompareAndDiff(got, want string) string {
	if got == want {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return fmt.Sprintf("error computing diff: %v", err)
	}
	return diff
}

// callerDir returns the directory of the source file skip frames above its
// own caller, used to resolve Corpus.Root relative to the test file.
func callerDir(t *testing.T, skip int) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(skip + 1)
	if !ok {
		t.Fatal("golden: could not determine caller file")
	}
	return filepath.Dir(file)
}
