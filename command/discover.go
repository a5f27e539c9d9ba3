package command

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
)

// OutputDir is the conventional name of the directory holding captures.
const OutputDir = "command_outputs"

// captureGlob matches the capture file names of a command: the bare name,
// the name with an extension, or the name followed by arguments.
func captureGlob(name string) (glob.Glob, error) {
	q := glob.QuoteMeta(name)
	return glob.Compile("{"+q+","+q+".*,"+q+"_*}", '/')
}

func matchesCapture(name, filename string) bool {
	g, err := captureGlob(name)
	if err != nil {
		return false
	}
	return g.Match(filename)
}

// ResolveOutputDir returns root/command_outputs when it exists, else root.
func ResolveOutputDir(root string) string {
	candidate := filepath.Join(root, OutputDir)
	if info, err := os.Stat(candidate); err == nil && info.IsDir() {
		return candidate
	}
	return root
}

// Discover returns the paths of the captures of command name in dir,
// sorted by file name. Subdirectories are not searched.
func Discover(dir, name string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoOutputDir, dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNoOutputDir, dir)
	}

	g, err := captureGlob(name)
	if err != nil {
		return nil, fmt.Errorf("invalid command name %q: %w", name, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !e.Type().IsRegular() && e.Type()&fs.ModeSymlink == 0 {
			continue
		}
		if g.Match(e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
