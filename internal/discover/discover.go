// Package discover finds .aio documents on disk.
package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/afero"
)

// Extension is the suffix of aio documents.
const Extension = ".aio"

// IgnoreFile lists paths to skip, in gitignore syntax, relative to the
// directory being searched.
const IgnoreFile = ".aioignore"

var skipDirs = map[string]struct{}{
	"node_modules": {},
	"vendor":       {},
}

// Documents returns the .aio files in dir, sorted. Hidden files and
// directories are skipped, as is anything matched by dir/.aioignore. Only
// the top level is searched unless recursive is set.
func Documents(fs afero.Fs, dir string, recursive bool) ([]string, error) {
	gi := loadIgnore(fs, dir)
	var results []string

	err := afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		name := info.Name()
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return nil
		}

		if info.IsDir() {
			if path == dir {
				return nil
			}
			if !recursive {
				return filepath.SkipDir
			}
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if gi != nil && gi.MatchesPath(filepath.ToSlash(rel)+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), Extension) {
			return nil
		}
		if gi != nil && gi.MatchesPath(filepath.ToSlash(rel)) {
			return nil
		}
		results = append(results, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "searching %s", dir)
	}

	sort.Strings(results)
	return results, nil
}

// Expand resolves command line arguments to document paths. Files are kept
// as given; directories are searched with Documents. Duplicates are dropped.
func Expand(fs afero.Fs, args []string, recursive bool) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		key := filepath.Clean(p)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}

	for _, arg := range args {
		info, err := fs.Stat(arg)
		if err != nil || !info.IsDir() {
			// Missing files are passed through and reported by the pipeline.
			add(arg)
			continue
		}
		docs, err := Documents(fs, arg, recursive)
		if err != nil {
			return nil, err
		}
		for _, d := range docs {
			add(d)
		}
	}
	return out, nil
}

func loadIgnore(fs afero.Fs, dir string) *ignore.GitIgnore {
	data, err := afero.ReadFile(fs, filepath.Join(dir, IgnoreFile))
	if err != nil {
		return nil
	}
	return ignore.CompileIgnoreLines(strings.Split(string(data), "\n")...)
}
