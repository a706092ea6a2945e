package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/edubrinca/pkg/adapters/sqlite"
)

// AppName names the default data directory and the dev sandbox.
const AppName = "edubrinca"

// DefaultSystemDir is the fs adapter's hidden directory.
const DefaultSystemDir = ".edubrinca"

// DefaultPath returns $XDG_DATA_HOME/edubrinca, or ~/.local/share/edubrinca.
func DefaultPath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", AppName)
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// FindRoot recursively looks upwards for a store root indicator.
// Indicators are: the .edubrinca directory of an fs store, or an sqlite store file.
// If found, returns the absolute path to the root.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, DefaultSystemDir) || hasFile(dir, sqlite.DefaultFileName) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
// Both build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}
	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}
	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolveStorePath determines the actual store path based on safety rules.
// When forceTemp is set, paths outside the system temp directory are
// re-rooted into <tmp>/edubrinca-dev/<base name>.
func ResolveStorePath(userPath string, forceTemp bool) string {
	if !forceTemp {
		if userPath == "" {
			return DefaultPath()
		}
		return userPath
	}

	clean := filepath.Clean(userPath)
	if userPath != "" {
		// t.TempDir() and other explicit temp paths are trusted as is.
		if rel, err := filepath.Rel(os.TempDir(), clean); err == nil && !strings.HasPrefix(rel, "..") {
			return clean
		}
	}

	sub := filepath.Base(clean)
	if userPath == "" || sub == "." || sub == string(os.PathSeparator) {
		sub = "default"
	}
	return filepath.Join(os.TempDir(), AppName+"-dev", sub)
}
