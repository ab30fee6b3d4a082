// Package testdb provides project databases for tests.
package testdb

import (
	"fmt"
	"path/filepath"

	"github.com/mandelsoft/relplan/pkg/analysis"
	"github.com/mandelsoft/relplan/pkg/edit"
	"github.com/mandelsoft/relplan/pkg/project"
	"github.com/mandelsoft/relplan/pkg/version"
)

const DEFAULT_VERSION = "1.0.0"

type Dep struct {
	Name string
	Spec string
}

func On(name, spec string) Dep {
	return Dep{Name: name, Spec: spec}
}

func manifest(name string) string {
	return filepath.Join(name, analysis.MIX_FILE)
}

// Project creates the info for an elixir project with the
// given dependencies.
func Project(name, v string, deps ...Dep) *analysis.ProjectInfo {
	info := &analysis.ProjectInfo{
		Project:     project.MustParse(name),
		Language:    analysis.ELIXIR,
		Version:     version.MustParse(v),
		VersionSpan: edit.Span{File: manifest(name), Start: 10, End: 10 + len(v)},
	}
	for i, d := range deps {
		info.Dependencies = append(info.Dependencies, analysis.Dependency{
			Name: project.MustParse(d.Name),
			Spec: version.MustParseSpec(d.Spec),
			Span: edit.Span{File: manifest(name), Start: 100 * (i + 1), End: 100*(i+1) + len(d.Spec)},
		})
	}
	return info
}

func level(l int) string {
	return string(rune('a' + l))
}

// Chain creates a layered database. The first level consists of the
// single project a0, every following level (b, c, ...) of width
// projects depending on all projects of the previous level with the
// compatible spec of their current version. Versions default to 1.0.0.
func Chain(levels, width int, versions ...map[string]string) *analysis.MemoryDatabase {
	vers := map[string]string{}
	for _, m := range versions {
		for k, v := range m {
			vers[k] = v
		}
	}
	get := func(n string) string {
		if v, ok := vers[n]; ok {
			return v
		}
		return DEFAULT_VERSION
	}

	var infos []*analysis.ProjectInfo
	prev := []string{"a0"}
	infos = append(infos, Project("a0", get("a0")))
	for l := 1; l < levels; l++ {
		var cur []string
		for i := 0; i < width; i++ {
			n := fmt.Sprintf("%s%d", level(l), i)
			var deps []Dep
			for _, p := range prev {
				deps = append(deps, On(p, compatible(get(p))))
			}
			infos = append(infos, Project(n, get(n), deps...))
			cur = append(cur, n)
		}
		prev = cur
	}
	return analysis.NewDatabase(infos...)
}

func compatible(v string) string {
	return version.Spec{}.Targeting(version.MustParse(v)).String()
}

// Triangle creates the projects c, b depending on c and a depending
// on b and c, all at version 1.0.0 with spec ~> 1.0.
func Triangle() *analysis.MemoryDatabase {
	return analysis.NewDatabase(
		Project("c", DEFAULT_VERSION),
		Project("b", DEFAULT_VERSION, On("c", "~> 1.0")),
		Project("a", DEFAULT_VERSION, On("b", "~> 1.0"), On("c", "~> 1.0")),
	)
}
