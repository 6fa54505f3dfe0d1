// Package parser reads graphs written as "node: successor successor ..." lines.
package parser

import (
	"bufio"
	"io"
	"strings"

	"go.trai.ch/trail/internal/core/domain"
	"go.trai.ch/zerr"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

type lineFunc func(from string, successors []string)

// scan calls fn for every non-blank line of r.
func scan(r io.Reader, fn lineFunc) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		from, rest, ok := strings.Cut(line, ":")
		from = strings.TrimSpace(from)
		if !ok || from == "" || strings.ContainsAny(from, " \t") {
			return zerr.With(zerr.With(zerr.Wrap(domain.ErrMalformedLine, "failed to parse graph"), "line", lineNo), "text", line)
		}

		rest = strings.TrimSpace(rest)
		if strings.ContainsAny(rest, ":\t") {
			return zerr.With(zerr.With(zerr.Wrap(domain.ErrMalformedLine, "failed to parse graph"), "line", lineNo), "text", line)
		}
		var successors []string
		if rest != "" {
			successors = strings.Split(rest, " ")
			for _, s := range successors {
				if s == "" {
					return zerr.With(zerr.With(zerr.Wrap(domain.ErrEmptyLabel, "failed to parse graph"), "line", lineNo), "text", line)
				}
			}
		}
		fn(from, successors)
	}
	if err := sc.Err(); err != nil {
		return zerr.Wrap(err, "failed to scan graph input")
	}
	return nil
}

// Parse returns the edges declared by r in input order.
func Parse(r io.Reader) ([]domain.Edge, error) {
	var edges []domain.Edge
	err := scan(r, func(from string, successors []string) {
		for _, to := range successors {
			edges = append(edges, domain.Edge{From: from, To: to})
		}
	})
	if err != nil {
		return nil, err
	}
	return edges, nil
}

// ParseGraph builds a Graph from r. Unlike Parse it keeps nodes declared with no successors.
func ParseGraph(r io.Reader) (*domain.Graph, error) {
	g := domain.NewGraph()
	err := scan(r, func(from string, successors []string) {
		g.Intern(from)
		for _, to := range successors {
			g.AddEdge(from, to)
		}
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}
