package osm2graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

// OSMScanner is the subset of paulmach/osm scanners needed to consume an entity stream
type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// WayScanner provides ways of the road network one by one
type WayScanner interface {
	Scan() bool
	Way() *Way
	Err() error
}

const progressEvery = 50000

// StreamScanner iterates ways of an OSM entity stream in a single forward
// pass. Locations of nodes met before each way are cached and used to
// resolve the way's node references; relations are ignored.
//
// OSM files list nodes before ways, so a reference misses the cache only
// when the source file itself lacks the node.
type StreamScanner struct {
	scanner   OSMScanner
	file      *os.File
	locations map[osm.NodeID]orb.Point
	way       *Way
	objects   int
	progress  func(objects int)
}

// NewStreamScanner wraps prepared scanner of OSM objects
func NewStreamScanner(scanner OSMScanner) *StreamScanner {
	return &StreamScanner{
		scanner:   scanner,
		locations: make(map[osm.NodeID]orb.Point),
	}
}

// OpenScanner opens OSM file and prepares streaming scanner over it.
// Type of the file is guessed by its extension: '.osm' / '.xml' for plain XML, '.pbf' for Protocolbuffer Binary Format.
func OpenScanner(filename string) (*StreamScanner, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	var scanner OSMScanner
	ext := filepath.Ext(filename)
	switch ext {
	case ".osm", ".xml":
		scanner = osmxml.New(context.Background(), file)
	case ".pbf":
		// Single decoding goroutine: object order must stay deterministic
		scanner = osmpbf.New(context.Background(), file, 1)
	default:
		file.Close()
		return nil, fmt.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
	}
	streamScanner := NewStreamScanner(scanner)
	streamScanner.file = file
	return streamScanner, nil
}

// OnProgress registers callback fired after every 50000 scanned objects
func (s *StreamScanner) OnProgress(fn func(objects int)) {
	s.progress = fn
}

// Scan advances to the next way. Returns false when the stream is exhausted or broken.
func (s *StreamScanner) Scan() bool {
	for s.scanner.Scan() {
		s.objects++
		if s.progress != nil && s.objects%progressEvery == 0 {
			s.progress(s.objects)
		}
		switch obj := s.scanner.Object().(type) {
		case *osm.Node:
			s.locations[obj.ID] = orb.Point{obj.Lon, obj.Lat}
		case *osm.Way:
			s.way = s.prepareWay(obj)
			return true
		}
	}
	return false
}

// Way returns the way prepared by the last call to Scan
func (s *StreamScanner) Way() *Way {
	return s.way
}

func (s *StreamScanner) prepareWay(way *osm.Way) *Way {
	preparedWay := &Way{
		ID:    way.ID,
		Tags:  way.TagMap(),
		Nodes: make([]NodeRef, 0, len(way.Nodes)),
	}
	for _, wayNode := range way.Nodes {
		pt, ok := s.locations[wayNode.ID]
		preparedWay.Nodes = append(preparedWay.Nodes, NodeRef{
			ID:       wayNode.ID,
			Point:    pt,
			Resolved: ok,
		})
	}
	return preparedWay
}

// Err returns error of the underlying scanner if any
func (s *StreamScanner) Err() error {
	return s.scanner.Err()
}

// Close closes the underlying scanner and the source file when the scanner owns one
func (s *StreamScanner) Close() error {
	err := s.scanner.Close()
	if s.file != nil {
		if fileErr := s.file.Close(); err == nil {
			err = fileErr
		}
	}
	return err
}
