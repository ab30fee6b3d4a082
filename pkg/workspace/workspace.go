package workspace

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mandelsoft/logging"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mandelsoft/relplan/pkg/format"
	"github.com/mandelsoft/relplan/pkg/project"
	"github.com/mandelsoft/relplan/pkg/utils"
)

var REALM = logging.DefineRealm("relplan/workspace", "workspace layout")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)

const META_DIR = ".relplan"
const PROFILES_DIR = "profiles"
const ALL_PROFILE = "all"

// Workspace is a directory containing one sub-directory per project.
type Workspace struct {
	fs   vfs.FileSystem
	path string
}

func New(path string, fss ...vfs.FileSystem) (*Workspace, error) {
	fs := utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fss...)
	ok, err := vfs.DirExists(fs, path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("workspace %q is no directory", path)
	}
	return &Workspace{fs: fs, path: path}, nil
}

func (w *Workspace) FileSystem() vfs.FileSystem {
	return w.fs
}

func (w *Workspace) Path() string {
	return w.path
}

func (w *Workspace) MetaPath() string {
	return filepath.Join(w.path, META_DIR)
}

// ProjectPath returns the workspace relative directory of a project.
func (w *Workspace) ProjectPath(h project.Handle) string {
	return h.Name
}

// Profile returns the projects of the named profile, sorted. The
// profile all defaults to every non-hidden directory of the workspace.
func (w *Workspace) Profile(name string) ([]project.Handle, error) {
	path := format.FullPath(filepath.Join(w.MetaPath(), PROFILES_DIR), name, format.Lines{})
	data, err := vfs.ReadFile(w.fs, path)
	if err != nil {
		if !errors.Is(err, vfs.ErrNotExist) {
			return nil, err
		}
		if name != ALL_PROFILE {
			return nil, fmt.Errorf("unknown profile %q", name)
		}
		return w.all()
	}

	var lines []string
	err = format.Lines{}.Load(data, &lines)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", name, err)
	}
	var result []project.Handle
	for _, l := range lines {
		h, err := project.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		result = append(result, h)
	}
	slices.SortFunc(result, project.Compare)
	return slices.CompactFunc(result, func(a, b project.Handle) bool { return a == b }), nil
}

func (w *Workspace) all() ([]project.Handle, error) {
	list, err := vfs.ReadDir(w.fs, w.path)
	if err != nil {
		return nil, err
	}
	var result []project.Handle
	for _, e := range list {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		result = append(result, project.New(e.Name()))
	}
	slices.SortFunc(result, project.Compare)
	log.Debug("found {{count}} projects in {{path}}", "count", len(result), "path", w.path)
	return result, nil
}
