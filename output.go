package main

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/Ahmed-Sermani/go-pregel/graph"
	"github.com/Ahmed-Sermani/go-pregel/pregel"
	"golang.org/x/xerrors"
)

// writeResult prints the public result properties as tab separated values,
// one line per node, using the ids of the graph source.
func writeResult(out io.Writer, res *pregel.Result, ids *graph.IDMap) error {
	props := res.Properties()
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	w := bufio.NewWriter(out)
	_, _ = w.WriteString("node\t" + strings.Join(keys, "\t") + "\n")
	for node := int64(0); node < res.NodeValues.NodeCount(); node++ {
		_, _ = w.WriteString(strconv.FormatInt(ids.ToOriginal(node), 10))
		for _, key := range keys {
			_ = w.WriteByte('\t')
			_, _ = w.WriteString(formatValue(props[key], node))
		}
		_ = w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return xerrors.Errorf("write result: %w", err)
	}
	return nil
}

func formatValue(pv graph.PropertyValues, node int64) string {
	switch pv.ValueType() {
	case graph.Long:
		return strconv.FormatInt(pv.LongValue(node), 10)
	case graph.Double:
		return strconv.FormatFloat(pv.DoubleValue(node), 'g', -1, 64)
	case graph.LongArray:
		vals := pv.LongArrayValue(node)
		parts := make([]string, len(vals))
		for i, v := range vals {
			parts[i] = strconv.FormatInt(v, 10)
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		vals := pv.DoubleArrayValue(node)
		parts := make([]string, len(vals))
		for i, v := range vals {
			parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		return "[" + strings.Join(parts, ",") + "]"
	}
}
