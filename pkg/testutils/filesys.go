package testutils

import (
	"path/filepath"

	"github.com/mandelsoft/vfs/pkg/composefs"
	"github.com/mandelsoft/vfs/pkg/layerfs"
	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/projectionfs"
	"github.com/mandelsoft/vfs/pkg/readonlyfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
)

// TestFileSystem provides the directory path of the real file system
// under the same path. If readonly is not set, modifications are
// kept in a temporary layer and never reach the original files.
// The file system must be released with vfs.Cleanup.
func TestFileSystem(path string, readonly bool) (vfs.FileSystem, error) {
	tmpfs, err := osfs.NewTempFileSystem()
	if err != nil {
		return nil, err
	}
	fs, err := mount(tmpfs, path, readonly)
	if err != nil {
		vfs.Cleanup(tmpfs)
		return nil, err
	}
	return fs, nil
}

func mount(tmpfs vfs.FileSystem, path string, readonly bool) (vfs.FileSystem, error) {
	err := tmpfs.MkdirAll(path, 0o700)
	if err != nil {
		return nil, err
	}

	base, err := projectionfs.New(osfs.OsFs, path)
	if err != nil {
		return nil, err
	}
	if readonly {
		base = readonlyfs.New(base)
	} else {
		layer, err := projectionfs.New(tmpfs, path)
		if err != nil {
			return nil, err
		}
		base = layerfs.New(layer, base)
	}

	fs := composefs.New(tmpfs, "/tmp")
	err = fs.Mount(path, base)
	if err != nil {
		return nil, err
	}
	return fs, nil
}

// MemoryFileSystem creates an in-memory file system with the given
// file contents.
func MemoryFileSystem(files map[string]string) (vfs.FileSystem, error) {
	fs := memoryfs.New()
	for path, content := range files {
		err := fs.MkdirAll(filepath.Dir(path), 0o755)
		if err != nil {
			return nil, err
		}
		err = vfs.WriteFile(fs, path, []byte(content), 0o644)
		if err != nil {
			return nil, err
		}
	}
	return fs, nil
}
