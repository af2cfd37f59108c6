package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/flytam/filenamify"
)

// FallbackFilename is used when a url yields no usable filename.
const FallbackFilename = "downloaded_image.jpg"

// FileExists returns true if a file or directory with the given path exists.
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// IsDir returns true if a directory with the given path exists.
func IsDir(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && info.IsDir()
}

// EnsureDir creates the given directory, including any missing parents.
// It is a no-op if the directory already exists.
func EnsureDir(dir string) error {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FilenameFromURL derives a local filename from the given url. It takes
// the last path segment, sanitized so it is valid on the host
// filesystem and cannot escape the target directory. It returns
// FallbackFilename if the url cannot be parsed or its last segment is
// empty or has no extension.
func FilenameFromURL(u string) string {
	parsed, err := url.Parse(u)
	if err != nil {
		return FallbackFilename
	}

	name := path.Base(parsed.Path)
	if name == "/" || name == "." || !strings.Contains(name, ".") {
		return FallbackFilename
	}

	safe, err := filenamify.Filenamify(name, filenamify.Options{})
	if err != nil || safe == "" {
		return FallbackFilename
	}

	return safe
}

// UniqueName returns a filename that does not collide with any existing
// file in dir. If dir/name is free, name is returned unchanged.
// Otherwise integer suffixes are probed in increasing order (name_1.ext,
// name_2.ext, ...) and the first free candidate is returned. The result
// is not reserved: the caller is expected to create the file before the
// directory changes.
func UniqueName(dir string, name string) (string, error) {
	exists, err := pathExists(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	if !exists {
		return name, nil
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)

		exists, err := pathExists(filepath.Join(dir, candidate))
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}

// pathExists returns true if the given path exists. Unlike FileExists,
// it reports an error when existence cannot be determined (e.g.,
// permission denied on a parent directory).
func pathExists(p string) (bool, error) {
	_, err := os.Stat(p)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", p, err)
}
