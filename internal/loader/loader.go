// Package loader reads graphs from their text description.
//
// The format is line oriented:
//
//	3        vertex count
//	A        one id per line, count lines
//	B
//	C
//	A B      remaining non-blank lines are edges "source target"
//	B C
//
// Ids are trimmed. When an id repeats, edges resolve to its first occurrence.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/frlayout/internal/graph"
)

var (
	ErrEmpty           = errors.New("loader: empty input")
	ErrBadCount        = errors.New("loader: vertex count is not a positive integer")
	ErrMissingVertices = errors.New("loader: fewer vertex lines than declared")
	ErrMalformedEdge   = errors.New("loader: edge line must name two vertices")
	ErrUnknownVertex   = errors.New("loader: edge references undefined vertex")
)

// maxPrealloc bounds the capacity reserved from the declared vertex count.
const maxPrealloc = 1024

// Parse reads a graph description from r.
func Parse(r io.Reader) (*graph.Graph, error) {
	sc := bufio.NewScanner(r)
	line := 0
	next := func() (string, bool) {
		for sc.Scan() {
			line++
			if s := strings.TrimSpace(sc.Text()); s != "" {
				return s, true
			}
		}
		return "", false
	}

	head, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, ErrEmpty
	}
	count, err := strconv.Atoi(head)
	if err != nil || count < 0 {
		return nil, fmt.Errorf("%w: line %d: %q", ErrBadCount, line, head)
	}
	if count == 0 {
		return nil, fmt.Errorf("line %d: %w", line, graph.ErrNoVertices)
	}

	// The count is untrusted; grow as lines arrive.
	ids := make([]string, 0, min(count, maxPrealloc))
	index := make(map[string]int)
	for len(ids) < count {
		id, ok := next()
		if !ok {
			if err := sc.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%w: declared %d, found %d", ErrMissingVertices, count, len(ids))
		}
		if _, dup := index[id]; !dup {
			index[id] = len(ids)
		}
		ids = append(ids, id)
	}

	var edges []graph.Edge
	for {
		text, ok := next()
		if !ok {
			break
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedEdge, line, text)
		}
		src, ok := index[fields[0]]
		if !ok {
			return nil, fmt.Errorf("%w: line %d: %q", ErrUnknownVertex, line, fields[0])
		}
		dst, ok := index[fields[1]]
		if !ok {
			return nil, fmt.Errorf("%w: line %d: %q", ErrUnknownVertex, line, fields[1])
		}
		edges = append(edges, graph.Edge{Source: src, Target: dst})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return graph.New(ids, edges)
}

func LoadFile(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Write emits g in the format Parse reads.
func Write(w io.Writer, g *graph.Graph) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, g.Len())
	for _, id := range g.IDs() {
		fmt.Fprintln(bw, id)
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "%s %s\n", g.ID(e.Source), g.ID(e.Target))
	}
	return bw.Flush()
}

// List returns the names of the graph files in dir, sorted. Directories and
// dot files are skipped.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
