// Copyright (c) 2024, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"goki.dev/snngen/gencpu"
)

// flags
var (
	outDir     = flag.String("out", "generated", "output directory for generated code, relative to where snngen is invoked -- each model is written to a subdirectory named by the model")
	refractory = flag.Bool("refractory", true, "neurons only spike on the rising edge of their threshold condition, for models that require it")
	merge      = flag.Bool("merge", false, "merge synapse groups with identical postsynaptic models and parameters into one input buffer of their target population")
	verbose    = flag.Bool("v", false, "print the state size report and generation times of each model")
	keepGoing  = flag.Bool("keep", false, "keep processing the remaining model files after one fails")
)

var (
	inFiles    []string            // list of all model files processed
	filesProcd = map[string]bool{} // prevent redundancies
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: snngen [flags] [path ...]\n")
	flag.PrintDefaults()
}

func isModelFile(f fs.DirEntry) bool {
	name := f.Name()
	if strings.HasPrefix(name, ".") || f.IsDir() {
		return false
	}
	ext := filepath.Ext(name)
	return ext == ".toml" || ext == ".json"
}

func main() {
	flag.Usage = usage
	flag.Parse()
	os.Exit(snngenMain(flag.Args()))
}

func addFile(fn string) bool {
	if _, has := filesProcd[fn]; has {
		return false
	}
	inFiles = append(inFiles, fn)
	filesProcd[fn] = true
	return true
}

// prefsFromFlags returns the generation preferences set by the flags
func prefsFromFlags() gencpu.Prefs {
	return gencpu.Prefs{AutoRefractory: *refractory, MergePostsynapticModels: *merge}
}

// snngenMain collects the model files named by args, directories being
// walked for .toml and .json files, and generates each.  It returns the
// process exit code.
func snngenMain(args []string) int {
	if len(args) == 0 {
		fmt.Printf("at least one model file name must be passed\n")
		return 2
	}
	inFiles = nil
	filesProcd = map[string]bool{}

	for _, arg := range args {
		switch info, err := os.Stat(arg); {
		case err != nil:
			log.Println(err)
			return 1
		case !info.IsDir():
			addFile(arg)
		default:
			err := filepath.WalkDir(arg, func(path string, f fs.DirEntry, err error) error {
				if err != nil || !isModelFile(f) {
					return err
				}
				addFile(path)
				return nil
			})
			if err != nil {
				log.Println(err)
				return 1
			}
		}
	}

	if err := ProcessFiles(inFiles, prefsFromFlags(), *outDir); err != nil {
		return 1
	}
	return 0
}
