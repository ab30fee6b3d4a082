package format

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"
)

// Format describes a document format used to persist data.
type Format interface {
	Ext() string
	Load(data []byte, v interface{}) error
	Dump(v interface{}) ([]byte, error)
}

// FullPath returns the path of the named document in dir.
func FullPath(dir, name string, f Format) string {
	return filepath.Join(dir, name+f.Ext())
}

// ForName returns the format for an output name.
func ForName(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return JSON{}, nil
	case "yaml", "yml":
		return YAML{}, nil
	case "lines", "txt":
		return Lines{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q", name)
	}
}

////////////////////////////////////////////////////////////////////////////////

type JSON struct{}

var _ Format = JSON{}

func (JSON) Ext() string {
	return ".json"
}

func (JSON) Load(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (JSON) Dump(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

////////////////////////////////////////////////////////////////////////////////

const AutogeneratedHeader = "# File generated automatically. DO NOT EDIT.\n\n"

// YAML uses the JSON field mapping of the serialized types.
type YAML struct {
	Autogenerated bool
}

var _ Format = YAML{}

func (YAML) Ext() string {
	return ".yaml"
}

func (YAML) Load(data []byte, v interface{}) error {
	return yaml.Unmarshal(data, v)
}

func (f YAML) Dump(v interface{}) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, err
	}
	if f.Autogenerated {
		data = append([]byte(AutogeneratedHeader), data...)
	}
	return data, nil
}

////////////////////////////////////////////////////////////////////////////////

const COMMENT = "#"

// Lines is a list of strings, one per line. Blank lines and
// comments are ignored on load.
type Lines struct{}

var _ Format = Lines{}

func (Lines) Ext() string {
	return ".txt"
}

func (Lines) Load(data []byte, v interface{}) error {
	list, ok := v.(*[]string)
	if !ok {
		return fmt.Errorf("lines format supports only string lists, but got %T", v)
	}
	*list = nil
	s := bufio.NewScanner(bytes.NewReader(data))
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line != "" && !strings.HasPrefix(line, COMMENT) {
			*list = append(*list, line)
		}
	}
	return s.Err()
}

func (Lines) Dump(v interface{}) ([]byte, error) {
	var list []string
	switch l := v.(type) {
	case []string:
		list = l
	case []fmt.Stringer:
		for _, e := range l {
			list = append(list, e.String())
		}
	default:
		return nil, fmt.Errorf("lines format supports only string lists, but got %T", v)
	}
	buf := bytes.NewBuffer(nil)
	for _, e := range list {
		buf.WriteString(strings.TrimSpace(e))
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}
