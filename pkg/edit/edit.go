package edit

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/mandelsoft/logging"
	"github.com/mandelsoft/vfs/pkg/vfs"
)

var REALM = logging.DefineRealm("relplan/edit", "manifest rewriting")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)

// Span locates a text literal in a workspace file. File is
// relative to the workspace root, Start and End are byte offsets.
type Span struct {
	File  string `json:"file"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

func (s Span) String() string {
	return fmt.Sprintf("%s[%d:%d]", s.File, s.Start, s.End)
}

func (s Span) IsZero() bool {
	return s.File == ""
}

// Edit replaces the text at a span.
type Edit struct {
	Span Span
	Text string
}

// Apply performs the edits on the files below root. All edits of a
// file are validated before the file is written, so a file is either
// completely rewritten or left untouched.
func Apply(fs vfs.FileSystem, root string, edits ...Edit) error {
	files := map[string][]Edit{}
	for _, e := range edits {
		if e.Span.IsZero() {
			return fmt.Errorf("edit %q without location", e.Text)
		}
		files[e.Span.File] = append(files[e.Span.File], e)
	}

	names := make([]string, 0, len(files))
	for n := range files {
		names = append(names, n)
	}
	slices.Sort(names)

	for _, n := range names {
		if err := apply(fs, filepath.Join(root, n), files[n]); err != nil {
			return fmt.Errorf("%s: %w", n, err)
		}
	}
	return nil
}

func apply(fs vfs.FileSystem, path string, edits []Edit) error {
	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return err
	}

	// rewrite from the end to keep earlier offsets valid
	slices.SortFunc(edits, func(a, b Edit) int { return b.Span.Start - a.Span.Start })
	end := len(data)
	for _, e := range edits {
		if e.Span.Start < 0 || e.Span.Start > e.Span.End || e.Span.End > end {
			return fmt.Errorf("invalid or overlapping span %s", e.Span)
		}
		end = e.Span.Start
	}

	content := string(data)
	for _, e := range edits {
		log.Debug("replace {{span}} with {{text}}", "span", e.Span, "text", e.Text)
		content = content[:e.Span.Start] + e.Text + content[e.Span.End:]
	}

	fi, err := fs.Stat(path)
	if err != nil {
		return err
	}
	return vfs.WriteFile(fs, path, []byte(content), fi.Mode().Perm())
}

// Text returns the text located by a span.
func Text(fs vfs.FileSystem, root string, s Span) (string, error) {
	data, err := vfs.ReadFile(fs, filepath.Join(root, s.File))
	if err != nil {
		return "", err
	}
	if s.Start < 0 || s.Start > s.End || s.End > len(data) {
		return "", fmt.Errorf("invalid span %s", s)
	}
	return string(data[s.Start:s.End]), nil
}
