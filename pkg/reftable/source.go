package reftable

import (
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Source opens the flat file backing one table.
type Source interface {
	Open(table string) (io.ReadCloser, error)
}

type fsSource struct {
	fsys fs.FS
}

// FSSource reads "<table>.csv" from fsys.
func FSSource(fsys fs.FS) Source {
	return fsSource{fsys: fsys}
}

// DirSource reads "<dir>/<table>.csv".
func DirSource(dir string) Source {
	return FSSource(os.DirFS(dir))
}

func (s fsSource) Open(table string) (io.ReadCloser, error) {
	f, err := s.fsys.Open(table + ".csv")
	if err != nil {
		return nil, fmt.Errorf("could not open table %q: %w", table, err)
	}
	return f, nil
}
