// Package output names and writes plane files.
package output

import (
	"os"

	"github.com/davesmith10/alphasplit/internal/ir"
)

// WritePlane writes data to path, replacing any existing file. The file is
// synced and closed on every path out of the function; a failure at any
// step, including close, is an *ir.IOError carrying path.
func WritePlane(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &ir.IOError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &ir.IOError{Path: path, Err: cerr}
		}
	}()

	if _, werr := f.Write(data); werr != nil {
		return &ir.IOError{Path: path, Err: werr}
	}
	if serr := f.Sync(); serr != nil {
		return &ir.IOError{Path: path, Err: serr}
	}
	return nil
}
