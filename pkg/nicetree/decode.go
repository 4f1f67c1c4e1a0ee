package nicetree

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrEmptyInput is returned by [Decode] when the input holds no bag lines.
	ErrEmptyInput = errors.New("no bags in input")

	// ErrBadLine is returned by [Decode] for lines that do not match the bag
	// format. The wrapped message carries the line number.
	ErrBadLine = errors.New("malformed bag line")
)

// Line shape: "(N,{v1,v2,...}) T [(P,...)] [(u1,v1),(u2,v2),...]".
var (
	bagPattern    = regexp.MustCompile(`^\((\d+),\{([^{}]*)\}\)$`)
	parentPattern = regexp.MustCompile(`^\[\((\d+)`)
	edgePattern   = regexp.MustCompile(`\((\d+),(\d+)\)`)
)

// Decode reads a nice tree decomposition in its textual interchange format:
// one bag per line as "(N,{v1,v2,...}) T [(P, ...)] [(u1,v1),...]", where N
// is the bag number, the braces hold its vertex set, T is the bag type
// (f/i/j/l or the full word), the first bracket group names the parent bag,
// and the optional second bracket group lists the edges introduced at the
// bag. The first line is the root; its parent group is ignored.
//
// Blank lines and lines starting with "c " are skipped. Decode returns a
// linked tree; call [Tree.Validate] to check the decomposition shape.
func Decode(r io.Reader) (*Tree, error) {
	t := New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "c ") || line == "c" {
			continue
		}

		bag, err := decodeLine(line, t.Len() == 0)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadLine, lineNo, err)
		}
		if err := t.Add(bag); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if t.Len() == 0 {
		return nil, ErrEmptyInput
	}

	if err := t.Link(); err != nil {
		return nil, err
	}
	return t, nil
}

// DecodeFile reads a decomposition from a file. See [Decode].
func DecodeFile(path string) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// decodeLine parses one bag line. The root line (first in the input) has no
// parent; whatever its bracket group names is skipped.
func decodeLine(line string, isRoot bool) (Bag, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Bag{}, fmt.Errorf("want at least bag and type, got %d fields", len(fields))
	}

	m := bagPattern.FindStringSubmatch(fields[0])
	if m == nil {
		return Bag{}, fmt.Errorf("bag field %q does not match (N,{...})", fields[0])
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return Bag{}, fmt.Errorf("bag number %q: %v", m[1], err)
	}
	vertices, err := parseVertexSet(m[2])
	if err != nil {
		return Bag{}, err
	}

	bagType, err := ParseBagType(fields[1])
	if err != nil {
		return Bag{}, err
	}

	parent := NoParent
	if !isRoot {
		if len(fields) < 3 {
			return Bag{}, fmt.Errorf("non-root bag %d is missing its parent group", id)
		}
		pm := parentPattern.FindStringSubmatch(fields[2])
		if pm == nil {
			return Bag{}, fmt.Errorf("parent field %q does not match [(P,...)]", fields[2])
		}
		parent, err = strconv.Atoi(pm[1])
		if err != nil {
			return Bag{}, fmt.Errorf("parent number %q: %v", pm[1], err)
		}
	}

	var edges []Edge
	if len(fields) >= 4 {
		for _, em := range edgePattern.FindAllStringSubmatch(fields[3], -1) {
			u, errU := strconv.Atoi(em[1])
			v, errV := strconv.Atoi(em[2])
			if errU != nil || errV != nil {
				return Bag{}, fmt.Errorf("edge %q has non-numeric endpoints", em[0])
			}
			edges = append(edges, Edge{U: u, V: v})
		}
	}

	return Bag{
		ID:       id,
		Type:     bagType,
		Parent:   parent,
		Vertices: vertices,
		Edges:    edges,
	}, nil
}

// parseVertexSet splits the brace contents "1,2,3" into vertices.
// An empty string is the empty set; a repeated vertex is an error.
func parseVertexSet(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	vertices := make([]int, 0, len(parts))
	seen := make(map[int]struct{}, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("vertex %q: %v", p, err)
		}
		if _, dup := seen[v]; dup {
			return nil, fmt.Errorf("vertex %d repeated", v)
		}
		seen[v] = struct{}{}
		vertices = append(vertices, v)
	}
	return vertices, nil
}
