package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/mandelsoft/relplan/pkg/format"
	"github.com/mandelsoft/relplan/pkg/utils"
)

// PrintTable prints rows as left aligned columns.
func PrintTable(w io.Writer, columns []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintf(w, "no project found\n")
		return
	}
	max := make([]int, len(columns))
	for i, s := range columns {
		max[i] = len(s)
	}
	for _, cols := range rows {
		for i, s := range cols {
			if max[i] < len(s) {
				max[i] = len(s)
			}
		}
	}

	f := formatString(max)
	printLine(w, columns, f)
	for _, cols := range rows {
		printLine(w, cols, f)
	}
}

func printLine(w io.Writer, cols []string, msg string) {
	fmt.Fprintf(w, "%s\n", strings.TrimRight(fmt.Sprintf(msg, utils.TransformSlice(cols, func(s string) any { return s })...), " "))
}

func formatString(max []int) string {
	msg := ""
	for _, l := range max {
		msg += fmt.Sprintf("%%-%ds ", l)
	}
	return msg[:len(msg)-1]
}

// PrintDocument prints v in the given output format.
func PrintDocument(w io.Writer, output string, v interface{}) error {
	f, err := format.ForName(output)
	if err != nil {
		return err
	}
	if _, ok := f.(format.Lines); ok {
		return fmt.Errorf("output format %q not supported", output)
	}
	data, err := f.Dump(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
