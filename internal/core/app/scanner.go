package app

import (
	"crypto/sha256"
	"doctypes/internal/core/ports"
	"doctypes/internal/engine/types"
	"doctypes/internal/engine/typesfinder"
	"doctypes/internal/shared/observability"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gobwas/glob"
)

// ScanDirectories lists the supported files under paths, skipping excluded
// directories and files by base name. A file reachable from several roots is
// listed once.
func (a *App) ScanDirectories(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, root := range paths {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			base := filepath.Base(path)
			if d.IsDir() {
				if path != root && matchesAny(a.excludeDirs, base) {
					return filepath.SkipDir
				}
				return nil
			}

			if !a.parser.IsSupportedPath(path) || matchesAny(a.excludeFiles, base) {
				return nil
			}

			key := path
			if abs, err := filepath.Abs(path); err == nil {
				key = abs
			}
			if seen[key] {
				return nil
			}
			seen[key] = true
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// IsScannable reports whether path would be picked up by ScanDirectories.
func (a *App) IsScannable(path string) bool {
	return a.parser.IsSupportedPath(path) && !matchesAny(a.excludeFiles, filepath.Base(path))
}

func (a *App) ProcessFile(path string) ([]ports.Signature, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(content)
	if sigs, ok := a.cache.get(path, sum); ok {
		return sigs, nil
	}

	start := time.Now()
	file, err := a.parser.ParseFile(path, content)
	observability.ParsingDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	signatures := make([]ports.Signature, 0, len(file.Functions))
	for _, fn := range file.Functions {
		resolved := a.finder.Find(fn, fn.Context)
		tag, tagged := typesfinder.ExtractReturnTag(fn.Doc)

		observability.FunctionsTotal.WithLabelValues(strconv.FormatBool(tagged)).Inc()
		for _, t := range resolved {
			observability.ResolvedTypesTotal.WithLabelValues(types.Variant(t)).Inc()
		}

		signatures = append(signatures, ports.Signature{
			File:        path,
			Line:        fn.Location.Line,
			Column:      fn.Location.Column,
			Function:    fn.Name,
			Class:       fn.Class,
			Namespace:   fn.Context.Name(),
			Qualified:   fn.QualifiedName(),
			DocTag:      tag,
			ReturnTypes: resolved,
		})
	}
	a.cache.put(path, sum, signatures)
	return signatures, nil
}

func matchesAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
