/*
	Loads graphs from plain text edge lists. Each non-empty line holds a
	relationship "src dst [weight]" with integer node ids separated by spaces
	or tabs. Lines starting with '#' are comments.
*/
package edgelist

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Ahmed-Sermani/go-pregel/graph"
	"github.com/Ahmed-Sermani/go-pregel/graph/store/memory"
	"golang.org/x/xerrors"
)

// Options control how an edge list is interpreted.
type Options struct {
	// Undirected adds the reverse of every relationship.
	Undirected bool
}

type relationship struct {
	src, dst int64
	weight   float64
	weighted bool
}

// Load parses an edge list from r. Node ids are assigned dense ids in order
// of first appearance.
func Load(r io.Reader, opts Options) (*memory.InMemoryGraph, *graph.IDMap, error) {
	var (
		ids     = graph.NewIDMap()
		rels    []relationship
		scanner = bufio.NewScanner(r)
		lineNo  int
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rel, err := parseLine(line)
		if err != nil {
			return nil, nil, xerrors.Errorf("edge list line %d: %w", lineNo, err)
		}
		rel.src, rel.dst = ids.Add(rel.src), ids.Add(rel.dst)
		rels = append(rels, rel)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, xerrors.Errorf("read edge list: %w", err)
	}

	b := memory.NewBuilder(ids.NodeCount())
	for _, rel := range rels {
		if err := addRelationship(b, rel.src, rel.dst, rel); err != nil {
			return nil, nil, err
		}
		if opts.Undirected && rel.src != rel.dst {
			if err := addRelationship(b, rel.dst, rel.src, rel); err != nil {
				return nil, nil, err
			}
		}
	}
	return b.Build(), ids, nil
}

// LoadFile is a convenience wrapper around Load.
func LoadFile(path string, opts Options) (*memory.InMemoryGraph, *graph.IDMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, xerrors.Errorf("open edge list: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f, opts)
}

func parseLine(line string) (relationship, error) {
	var rel relationship
	fields := strings.Fields(line)
	if len(fields) != 2 && len(fields) != 3 {
		return rel, xerrors.Errorf("expected 2 or 3 fields, got %d", len(fields))
	}

	var err error
	if rel.src, err = strconv.ParseInt(fields[0], 10, 64); err != nil {
		return rel, xerrors.Errorf("invalid source node: %w", err)
	}
	if rel.dst, err = strconv.ParseInt(fields[1], 10, 64); err != nil {
		return rel, xerrors.Errorf("invalid target node: %w", err)
	}
	if len(fields) == 3 {
		if rel.weight, err = strconv.ParseFloat(fields[2], 64); err != nil {
			return rel, xerrors.Errorf("invalid weight: %w", err)
		}
		rel.weighted = true
	}
	return rel, nil
}

func addRelationship(b *memory.Builder, src, dst int64, rel relationship) error {
	if rel.weighted {
		return b.AddWeightedRelationship(src, dst, rel.weight)
	}
	return b.AddRelationship(src, dst)
}
