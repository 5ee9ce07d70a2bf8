package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/san-kum/frlayout/internal/sim"
)

const (
	svgWidth  = 800
	svgHeight = 800
)

type writerFunc func(w io.Writer, res *sim.Result, l Layout) error

var formats = map[string]writerFunc{
	"svg": func(w io.Writer, _ *sim.Result, l Layout) error {
		_, err := io.WriteString(w, LayoutToSVG(l, svgWidth, svgHeight))
		return err
	},
	"html": func(w io.Writer, _ *sim.Result, l Layout) error { return WriteHTML(w, l) },
	"csv":  func(w io.Writer, _ *sim.Result, l Layout) error { return WriteCSV(w, l) },
	"json": func(w io.Writer, res *sim.Result, _ Layout) error { return WriteJSON(w, res) },
	"mat": func(w io.Writer, _ *sim.Result, l Layout) error {
		return WriteMatrix(w, PositionMatrix(l.Positions))
	},
}

func Formats() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Write renders the final layout of res in the named format.
func Write(w io.Writer, format, title string, res *sim.Result) error {
	fn, ok := formats[strings.ToLower(format)]
	if !ok {
		return fmt.Errorf("unknown export format: %s (available: %v)", format, Formats())
	}
	return fn(w, res, FromResult(title, res, false))
}

// WriteFile picks the format from the file extension.
func WriteFile(path, title string, res *sim.Result) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if _, ok := formats[strings.ToLower(format)]; !ok {
		return fmt.Errorf("unknown export format: %q (available: %v)", format, Formats())
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, format, title, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
