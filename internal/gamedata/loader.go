package gamedata

import (
	"encoding/json"
	"fmt"
	"io/fs"
)

// LoadFrom decodes one catalog file from fsys. The embedded catalog is
// dataFS; a directory on disk (os.DirFS) can replace it.
func LoadFrom[T any](fsys fs.FS, filename string) (T, error) {
	var result T

	content, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return result, fmt.Errorf("read catalog file %s: %w", filename, err)
	}
	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("parse %s: %w", filename, err)
	}
	return result, nil
}
