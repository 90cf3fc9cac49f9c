package prefabs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Dir is the on-disk prefab tree. Files found there shadow the embedded copies.
var Dir = "prefabs"

var ErrBadPath = errors.New("prefabs: path escapes the prefab tree")

//go:embed *.yaml scripts/*.tengo
var embedded embed.FS

// Load reads a tuning file by name.
func Load(name string) ([]byte, error) {
	rel, err := resolve(name, "")
	if err != nil {
		return nil, err
	}
	return read(rel)
}

// LoadScript reads a tengo script. Names may be bare ("repair.tengo") or
// carry a scripts/ or prefabs/scripts/ prefix.
func LoadScript(name string) ([]byte, error) {
	rel, err := resolve(name, "scripts")
	if err != nil {
		return nil, err
	}
	return read(rel)
}

func read(rel string) ([]byte, error) {
	if Dir != "" {
		data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(rel)))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	data, err := embedded.ReadFile(rel)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", rel, err)
	}
	return data, nil
}

// resolve turns a user-supplied name into a slash path relative to the prefab
// root, placed under sub.
func resolve(name, sub string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrBadPath)
	}
	p := path.Clean(filepath.ToSlash(name))
	p = strings.TrimPrefix(p, "prefabs/")
	if sub != "" {
		p = sub + "/" + strings.TrimPrefix(p, sub+"/")
	}
	if !fs.ValidPath(p) {
		return "", fmt.Errorf("%w: %q", ErrBadPath, name)
	}
	return p, nil
}
