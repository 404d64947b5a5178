// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/emer/emergent/timer"
	"goki.dev/snngen/gencpu"
	"goki.dev/snngen/model"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ProcessFiles generates the code of each model file, writing it to a
// subdirectory of out named by the model.  Unless -keep is set, it stops
// at the first model that fails, and returns that error.
func ProcessFiles(paths []string, prefs gencpu.Prefs, out string) error {
	var first error
	for _, fn := range paths {
		err := ProcessFile(fn, prefs, out)
		if err == nil {
			continue
		}
		log.Println(err)
		if first == nil {
			first = err
		}
		if !*keepGoing {
			return err
		}
	}
	return first
}

// ProcessFile loads, generates and writes one model file
func ProcessFile(fn string, prefs gencpu.Prefs, out string) error {
	loadTmr := timer.Time{}
	loadTmr.Start()
	m, err := model.Load(fn)
	if err != nil {
		return err
	}
	loadTmr.Stop()

	genTmr := timer.Time{}
	genTmr.Start()
	files, warns, err := GenerateModel(m, prefs)
	if err != nil {
		return fmt.Errorf("%s: %w", fn, err)
	}
	genTmr.Stop()

	for _, w := range warns {
		fmt.Printf("%s: warning: %s\n", fn, w)
	}
	dir := filepath.Join(out, m.Name)
	if err := WriteFiles(dir, files); err != nil {
		return err
	}
	if *verbose {
		fmt.Printf("###################################\nModel: %s from %s\n", m.Name, fn)
		fmt.Print(m.SizeReport())
		fmt.Printf("load: %6.4g secs  generate: %6.4g secs  written to: %s\n", loadTmr.TotalSecs(), genTmr.TotalSecs(), dir)
	}
	return nil
}

// GenerateModel generates the code of a finalized model, returning the
// files and the advisory warnings of the model and of generation
func GenerateModel(m *model.Model, prefs gencpu.Prefs) (map[string][]byte, []string, error) {
	g, err := gencpu.NewGenerator(m, prefs)
	if err != nil {
		return nil, nil, err
	}
	files, err := g.Generate()
	if err != nil {
		return nil, nil, err
	}
	warns := append(slices.Clone(m.Warnings), g.Warnings...)
	return files, warns, nil
}

// WriteFiles writes files into dir, creating it as needed
func WriteFiles(dir string, files map[string][]byte) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	fns := maps.Keys(files)
	slices.Sort(fns)
	for _, fn := range fns {
		if err := os.WriteFile(filepath.Join(dir, fn), files[fn], 0644); err != nil {
			return err
		}
	}
	return nil
}
