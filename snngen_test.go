// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"goki.dev/snngen/gencpu"
	"golang.org/x/tools/txtar"
)

// linesInOrder returns the first of the want lines not found in code,
// in order and ignoring indentation, or "" if all are found
func linesInOrder(code, want string) string {
	cl := strings.Split(code, "\n")
	li := 0
	for _, w := range strings.Split(want, "\n") {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		found := false
		for li < len(cl) {
			got := strings.TrimSpace(cl[li])
			li++
			if got == w {
				found = true
				break
			}
		}
		if !found {
			return w
		}
	}
	return ""
}

// runArchive runs the txtar archive at path.  The archive comment may hold
// the flags -merge and -refractory=false.  Its model files are generated,
// then checked against the other files it holds:
//
//	want/<model>/<file>: lines that must appear in the generated file, in order
//	not/<model>/<file>: lines that must not appear anywhere in it
//	absent/<model>/<file>: the file must not be generated
//	error: generation must fail with an error containing this text
func runArchive(t *testing.T, path string) {
	ar, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	prefs := gencpu.DefaultPrefs()
	for _, fl := range strings.Fields(string(ar.Comment)) {
		switch fl {
		case "-merge":
			prefs.MergePostsynapticModels = true
		case "-refractory=false":
			prefs.AutoRefractory = false
		}
	}
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	var models []string
	var checks []txtar.File
	wantErr := ""
	for _, f := range ar.Files {
		switch {
		case f.Name == "error":
			wantErr = strings.TrimSpace(string(f.Data))
		case strings.HasPrefix(f.Name, "want/"), strings.HasPrefix(f.Name, "not/"), strings.HasPrefix(f.Name, "absent/"):
			checks = append(checks, f)
		default:
			fn := filepath.Join(dir, f.Name)
			if err := os.WriteFile(fn, f.Data, 0644); err != nil {
				t.Fatal(err)
			}
			models = append(models, fn)
		}
	}

	err = ProcessFiles(models, prefs, out)
	switch {
	case wantErr != "" && err == nil:
		t.Errorf("expected error containing %q", wantErr)
	case wantErr != "" && !strings.Contains(err.Error(), wantErr):
		t.Errorf("error %q does not contain %q", err, wantErr)
	case wantErr == "" && err != nil:
		t.Fatal(err)
	}

	for _, f := range checks {
		kind, rel, _ := strings.Cut(f.Name, "/")
		code, rerr := os.ReadFile(filepath.Join(out, filepath.FromSlash(rel)))
		if kind == "absent" {
			if rerr == nil {
				t.Errorf("%s: generated", rel)
			}
			continue
		}
		if rerr != nil {
			t.Errorf("%s: %v", rel, rerr)
			continue
		}
		switch kind {
		case "want":
			if miss := linesInOrder(string(code), string(f.Data)); miss != "" {
				t.Errorf("%s: line not found (in order): %s\n%s", rel, miss, code)
			}
		case "not":
			for _, ln := range strings.Split(string(f.Data), "\n") {
				ln = strings.TrimSpace(ln)
				if ln != "" && strings.Contains(string(code), ln) {
					t.Errorf("%s: unexpected %s", rel, ln)
				}
			}
		}
	}
}

// TestArchives generates the models in testdata/*.txtar
func TestArchives(t *testing.T) {
	match, err := filepath.Glob("testdata/*.txtar")
	if err != nil {
		t.Fatal(err)
	}
	if len(match) == 0 {
		t.Fatal("no test archives")
	}
	for _, in := range match {
		t.Run(filepath.Base(in), func(t *testing.T) {
			runArchive(t, in)
		})
	}
}

// TestExamples checks that every example model generates without error
func TestExamples(t *testing.T) {
	match, err := filepath.Glob("examples/*.toml")
	if err != nil {
		t.Fatal(err)
	}
	js, _ := filepath.Glob("examples/*.json")
	match = append(match, js...)
	if len(match) == 0 {
		t.Fatal("no example models")
	}
	if err := ProcessFiles(match, gencpu.DefaultPrefs(), t.TempDir()); err != nil {
		t.Error(err)
	}
}

func TestMainArgs(t *testing.T) {
	if code := snngenMain(nil); code != 2 {
		t.Errorf("no args: exit code %d", code)
	}
	if code := snngenMain([]string{filepath.Join(t.TempDir(), "missing.toml")}); code != 1 {
		t.Errorf("missing file: exit code %d", code)
	}
}
