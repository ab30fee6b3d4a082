package analysis

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mandelsoft/relplan/pkg/edit"
	"github.com/mandelsoft/relplan/pkg/project"
	"github.com/mandelsoft/relplan/pkg/version"
	"github.com/mandelsoft/relplan/pkg/workspace"
)

const MIX_FILE = "mix.exs"

var (
	elixirVersionAttr = regexp.MustCompile(`@version\s+"([^"]*)"`)
	elixirVersionKey  = regexp.MustCompile(`\bversion:\s*"([^"]*)"`)
	elixirDependency  = regexp.MustCompile(`\{\s*:([a-z_][a-zA-Z0-9_]*)\s*,\s*"([^"]*)"`)
)

func elixirManifest(w *workspace.Workspace, h project.Handle) string {
	return filepath.Join(w.Path(), w.ProjectPath(h), MIX_FILE)
}

type elixir struct{}

var _ Analyzer = elixir{}

func (elixir) Analyze(w *workspace.Workspace, h project.Handle) (*ProjectInfo, error) {
	data, err := vfs.ReadFile(w.FileSystem(), elixirManifest(w, h))
	if err != nil {
		return nil, err
	}
	file := filepath.Join(w.ProjectPath(h), MIX_FILE)
	content := string(data)

	loc := elixirVersionAttr.FindStringSubmatchIndex(content)
	if loc == nil {
		loc = elixirVersionKey.FindStringSubmatchIndex(content)
	}
	if loc == nil {
		return nil, fmt.Errorf("%s: no project version found", file)
	}
	v, err := version.Parse(content[loc[2]:loc[3]])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	info := &ProjectInfo{
		Project:     h,
		Language:    ELIXIR,
		Version:     v,
		VersionSpan: edit.Span{File: file, Start: loc[2], End: loc[3]},
	}

	for _, m := range elixirDependency.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		spec, err := version.ParseSpec(content[m[4]:m[5]])
		if err != nil {
			return nil, fmt.Errorf("%s: dependency %s: %w", file, name, err)
		}
		info.Dependencies = append(info.Dependencies, Dependency{
			Name: project.New(name),
			Spec: spec,
			Span: edit.Span{File: file, Start: m[4], End: m[5]},
		})
	}
	log.Debug("analyzed {{project}}: version {{version}}, {{count}} dependencies", "project", h, "version", v, "count", len(info.Dependencies))
	return info, nil
}
