package discovery

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/RoanBrand/NMRStats/log"
)

// Lister supplies the parameter files to scan.
type Lister interface {
	List() ([]string, error)
}

// Walker finds every regular file called Name under Root.
type Walker struct {
	Root string
	Name string
}

func NewWalker(root, name string) *Walker {
	return &Walker{Root: root, Name: name}
}

// List fails only if Root itself can't be read.
// Unreadable dirs further down are logged and skipped, like find does.
func (w *Walker) List() ([]string, error) {
	var files []string
	err := filepath.WalkDir(w.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == w.Root {
				return err
			}
			log.Println("Error reading", p, ":", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.Type().IsRegular() && d.Name() == w.Name {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning %s: %w", w.Root, err)
	}
	return files, nil
}

// Static is a fixed list of files.
type Static []string

func (s Static) List() ([]string, error) {
	return s, nil
}
