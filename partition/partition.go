package partition

import (
	"golang.org/x/xerrors"
)

// Partition is the half-open node id interval [Start, End).
type Partition struct {
	Start, End int64
}

// Len returns the number of node ids in the partition.
func (p Partition) Len() int64 { return p.End - p.Start }

// Range represents a contiguous node id region which is split into a number
// of partitions.
type Range struct {
	start       int64
	rangeSplits []int64
}

// NewFullRange creates a range over [0, nodeCount) and splits it into the
// provided number of partitions. The range never holds more partitions than
// node ids.
func NewFullRange(nodeCount int64, numPartitions int) (Range, error) {
	if numPartitions > 0 && int64(numPartitions) > nodeCount {
		numPartitions = int(nodeCount)
	}
	return NewRange(0, nodeCount, numPartitions)
}

// NewRange creates a new range [start, end) and splits it into the
// provided number of contiguous partitions whose sizes differ by at most one.
func NewRange(start, end int64, numPartitions int) (Range, error) {
	if start >= end {
		return Range{}, xerrors.Errorf("range start must be less than the range end")
	} else if numPartitions <= 0 {
		return Range{}, xerrors.Errorf("number of partitions must be at least equal to 1")
	} else if int64(numPartitions) > end-start {
		return Range{}, xerrors.Errorf("number of partitions exceeds the size of the range")
	}

	var (
		total    = end - start
		partSize = total / int64(numPartitions)
		extra    = total % int64(numPartitions)
		to       = start
		ranges   = make([]int64, numPartitions)
	)
	for partition := 0; partition < numPartitions; partition++ {
		to += partSize
		if int64(partition) < extra {
			to++
		}
		ranges[partition] = to
	}

	return Range{start: start, rangeSplits: ranges}, nil
}

// DegreeSource is implemented by graphs that can report the out-degree of
// their nodes.
type DegreeSource interface {
	NodeCount() int64
	RelationshipCount() int64
	Degree(node int64) int
}

// NewDegreeBalancedRange splits [0, NodeCount) into at most numPartitions
// contiguous partitions so that each partition carries roughly the same
// amount of work, where a node costs 1 plus its degree.
func NewDegreeBalancedRange(g DegreeSource, numPartitions int) (Range, error) {
	nodeCount := g.NodeCount()
	if nodeCount <= 0 {
		return Range{}, xerrors.Errorf("range start must be less than the range end")
	} else if numPartitions <= 0 {
		return Range{}, xerrors.Errorf("number of partitions must be at least equal to 1")
	}

	var (
		totalCost = nodeCount + g.RelationshipCount()
		target    = (totalCost + int64(numPartitions) - 1) / int64(numPartitions)
		ranges    = make([]int64, 0, numPartitions)
		acc       int64
	)
	for node := int64(0); node < nodeCount; node++ {
		acc += 1 + int64(g.Degree(node))
		if acc >= target && len(ranges) < numPartitions-1 {
			ranges = append(ranges, node+1)
			acc = 0
		}
	}
	if len(ranges) == 0 || ranges[len(ranges)-1] != nodeCount {
		ranges = append(ranges, nodeCount)
	}

	return Range{start: 0, rangeSplits: ranges}, nil
}

// NumPartitions returns the number of partitions in the range.
func (r Range) NumPartitions() int { return len(r.rangeSplits) }

// PartitionExtents returns the [start, end) range for the requested partition.
func (r Range) PartitionExtents(partition int) (int64, int64, error) {
	if partition < 0 || partition >= len(r.rangeSplits) {
		return 0, 0, xerrors.Errorf("invalid partition index")
	}

	if partition == 0 {
		return r.start, r.rangeSplits[0], nil
	}
	return r.rangeSplits[partition-1], r.rangeSplits[partition], nil
}

// Partitions returns every partition of the range in id order.
func (r Range) Partitions() []Partition {
	parts := make([]Partition, len(r.rangeSplits))
	for i := range parts {
		from, to, _ := r.PartitionExtents(i)
		parts[i] = Partition{Start: from, End: to}
	}
	return parts
}
