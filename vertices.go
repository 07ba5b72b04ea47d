package osm2graph

import (
	"encoding/csv"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// VertexTable assigns dense vertex identifiers to OSM nodes in order of
// their first appearance: identifiers are contiguous and start from 0.
// First sight of a node also emits its `id,lat,lon` record to the
// underlying writer, so the output table is sorted by vertex identifier.
// Not safe for concurrent use.
type VertexTable struct {
	indices map[osm.NodeID]int
	writer  *csv.Writer
}

// NewVertexTable prepares empty vertex table emitting node records to given CSV writer
func NewVertexTable(writer *csv.Writer) *VertexTable {
	return &VertexTable{
		indices: make(map[osm.NodeID]int),
		writer:  writer,
	}
}

// GetOrCreate returns dense vertex identifier for given OSM node.
// A node met for the first time gets the next free identifier and its
// record is written immediately.
func (table *VertexTable) GetOrCreate(id osm.NodeID, pt orb.Point) (int, error) {
	if index, ok := table.indices[id]; ok {
		return index, nil
	}
	index := len(table.indices)
	table.indices[id] = index
	err := table.writer.Write([]string{
		fmt.Sprintf("%d", index),
		fmt.Sprintf("%.7f", pt.Lat()),
		fmt.Sprintf("%.7f", pt.Lon()),
	})
	if err != nil {
		return index, err
	}
	return index, nil
}

// Len returns number of assigned vertex identifiers
func (table *VertexTable) Len() int {
	return len(table.indices)
}
