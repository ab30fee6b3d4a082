package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mandelsoft/logging"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mandelsoft/relplan/pkg/format"
	"github.com/mandelsoft/relplan/pkg/release"
	"github.com/mandelsoft/relplan/pkg/utils"
	"github.com/mandelsoft/relplan/pkg/workspace"
)

var REALM = logging.DefineRealm("relplan/store", "release state persistence")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)

var ErrModified = fmt.Errorf("release state modified")
var ErrNotExist = fmt.Errorf("no release in progress")

const RELEASE_FILE = "release"

// Store persists the release state of a workspace in a single
// document. Updates are checked against the generation of the
// stored state, so that concurrent modifications are detected
// instead of being overwritten.
//
// The check and the write are serialized per Store only. Separate
// processes working on the same workspace are not synchronized, a
// workspace is expected to be driven by a single relctl at a time.
type Store struct {
	lock   sync.Mutex
	fs     vfs.FileSystem
	path   string
	format format.Format
}

func New(path string, fss ...vfs.FileSystem) (*Store, error) {
	fs := utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fss...)

	err := fs.MkdirAll(path, 0o755)
	if err != nil && !errors.Is(err, vfs.ErrExist) {
		return nil, err
	}
	return &Store{fs: fs, path: path, format: format.YAML{Autogenerated: true}}, nil
}

// ForWorkspace returns the store located in the meta directory
// of a workspace.
func ForWorkspace(w *workspace.Workspace) (*Store, error) {
	return New(w.MetaPath(), w.FileSystem())
}

// Path returns the path of the state document.
func (s *Store) Path() string {
	return format.FullPath(s.path, RELEASE_FILE, s.format)
}

func (s *Store) Exists() (bool, error) {
	return vfs.FileExists(s.fs, s.Path())
}

func (s *Store) Load() (*release.ReleaseState, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.load()
}

func (s *Store) load() (*release.ReleaseState, error) {
	data, err := vfs.ReadFile(s.fs, s.Path())
	if err != nil {
		if errors.Is(err, vfs.ErrNotExist) {
			return nil, ErrNotExist
		}
		return nil, err
	}
	var r release.ReleaseState
	if err := s.format.Load(data, &r); err != nil {
		return nil, fmt.Errorf("corrupted release state %s: %w", s.Path(), err)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("corrupted release state %s: %w", s.Path(), err)
	}
	return &r, nil
}

// Save stores the state. The generation of the state must match
// the stored one (0 for a new release). On success it is
// incremented.
func (s *Store) Save(r *release.ReleaseState) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.save(r)
}

func (s *Store) save(r *release.ReleaseState) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid release state: %w", err)
	}

	cur, err := s.load()
	switch {
	case errors.Is(err, ErrNotExist):
		if r.GetGeneration() != 0 {
			return ErrModified
		}
	case err != nil:
		return err
	case cur.GetGeneration() != r.GetGeneration():
		return ErrModified
	}

	gen := r.GetGeneration()
	r.SetGeneration(gen + 1)
	if err := s.write(r); err != nil {
		r.SetGeneration(gen)
		return err
	}
	log.Debug("saved release {{codename}} generation {{generation}}", "codename", r.Codename, "generation", r.GetGeneration())
	return nil
}

func (s *Store) write(r *release.ReleaseState) error {
	data, err := s.format.Dump(r)
	if err != nil {
		return err
	}
	return vfs.WriteFile(s.fs, s.Path(), data, 0o644)
}

// Update applies a modification to the actually stored state and
// saves it if modified. Modifications done meanwhile lead to a
// retry with the new state.
func (s *Store) Update(mod func(r *release.ReleaseState) (bool, error)) (*release.ReleaseState, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	for {
		r, err := s.load()
		if err != nil {
			return nil, err
		}
		modified, err := mod(r)
		if err != nil || !modified {
			return r, err
		}
		err = s.save(r)
		if errors.Is(err, ErrModified) {
			log.Info("release state modified concurrently, retrying")
			continue
		}
		return r, err
	}
}

func (s *Store) Delete() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	err := s.fs.Remove(s.Path())
	if errors.Is(err, vfs.ErrNotExist) {
		return ErrNotExist
	}
	return err
}
