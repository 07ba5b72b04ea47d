package osm2graph

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Stats summarizes a single extraction pass
type Stats struct {
	Ways            int // ways met in the stream
	RoadWays        int // ways carrying `highway` tag
	Vertices        int // distinct nodes mapped to dense identifiers
	Edges           int // directed edge records written
	SkippedSegments int // segments dropped due to unresolved node locations
	Elapsed         time.Duration
}

// Run extracts road graph from the way stream and writes vertex and edge
// tables to given outputs. Header rows are written first. Vertex
// identifiers are assigned in order of first appearance, edge records
// follow the order of ways in the stream.
func (extractor *Extractor) Run(scanner WayScanner, nodesOutput, edgesOutput io.Writer) (Stats, error) {
	stats := Stats{}
	st := time.Now()

	nodesWriter := csv.NewWriter(nodesOutput)
	defer nodesWriter.Flush()
	err := nodesWriter.Write([]string{"id", "lat", "lon"})
	if err != nil {
		return stats, errors.Wrap(err, "Can't write header of vertices table")
	}
	edgesWriter := csv.NewWriter(edgesOutput)
	defer edgesWriter.Flush()
	err = edgesWriter.Write([]string{"source", "target", "weight"})
	if err != nil {
		return stats, errors.Wrap(err, "Can't write header of edges table")
	}

	vertices := NewVertexTable(nodesWriter)
	estimator := NewSpeedEstimator(extractor.speedByHighway, extractor.fallbackSpeedKmh)

	if extractor.verbose {
		fmt.Printf("Scanning ways...")
	}
	for scanner.Scan() {
		stats.Ways++
		err = extractor.processWay(scanner.Way(), vertices, estimator, edgesWriter, &stats)
		if err != nil {
			return stats, err
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, errors.Wrap(err, "Scanner error on Ways")
	}

	nodesWriter.Flush()
	if err := nodesWriter.Error(); err != nil {
		return stats, errors.Wrap(err, "Can't flush vertices table")
	}
	edgesWriter.Flush()
	if err := edgesWriter.Error(); err != nil {
		return stats, errors.Wrap(err, "Can't flush edges table")
	}

	stats.Vertices = vertices.Len()
	stats.Elapsed = time.Since(st)
	if extractor.verbose {
		fmt.Printf("Done in %v\n\tWays: %d (roads: %d)\n\tVertices: %d\n\tEdges: %d\n\tSkipped segments: %d\n",
			stats.Elapsed, stats.Ways, stats.RoadWays, stats.Vertices, stats.Edges, stats.SkippedSegments)
	}
	return stats, nil
}

// processWay splits single way into segments between consecutive node
// references and writes one edge record per segment plus the reverse one
// for bidirectional ways. Ways without `highway` tag produce nothing.
// Segments with unresolved node locations are dropped before any vertex
// identifier is assigned, so the identifier space stays contiguous.
func (extractor *Extractor) processWay(way *Way, vertices *VertexTable, estimator *SpeedEstimator, edgesWriter *csv.Writer, stats *Stats) error {
	if _, ok := way.Tags["highway"]; !ok {
		return nil
	}
	stats.RoadWays++
	if len(way.Nodes) < 2 {
		if extractor.verbose {
			fmt.Printf("[WARNING]: Way with less than 2 nodes has been met. Way ID: '%d'\n", way.ID)
		}
		return nil
	}
	speed := estimator.EstimateSpeed(way.Tags)
	oneway := way.Tags["oneway"] == "yes"
	for i := 1; i < len(way.Nodes); i++ {
		from := way.Nodes[i-1]
		to := way.Nodes[i]
		if !from.Resolved || !to.Resolved {
			stats.SkippedSegments++
			continue
		}
		source, err := vertices.GetOrCreate(from.ID, from.Point)
		if err != nil {
			return errors.Wrap(err, "Can't write vertex record")
		}
		target, err := vertices.GetOrCreate(to.ID, to.Point)
		if err != nil {
			return errors.Wrap(err, "Can't write vertex record")
		}
		weight := greatCircleDistance(from.Point, to.Point)
		if extractor.weighting == WEIGHT_TRAVEL_TIME {
			weight /= speed
		}
		err = writeEdge(edgesWriter, source, target, weight)
		if err != nil {
			return errors.Wrap(err, "Can't write edge record")
		}
		stats.Edges++
		if !oneway {
			err = writeEdge(edgesWriter, target, source, weight)
			if err != nil {
				return errors.Wrap(err, "Can't write edge record")
			}
			stats.Edges++
		}
	}
	return nil
}

func writeEdge(writer *csv.Writer, source, target int, weight float64) error {
	return writer.Write([]string{
		fmt.Sprintf("%d", source),
		fmt.Sprintf("%d", target),
		fmt.Sprintf("%.2f", weight),
	})
}

// RunFiles extracts road graph from OSM file and writes vertex and edge
// tables to CSV files with given names
func (extractor *Extractor) RunFiles(osmFileName, nodesFileName, edgesFileName string) (Stats, error) {
	if extractor.verbose {
		fmt.Printf("Opening file: '%s'...\n", osmFileName)
	}
	scanner, err := OpenScanner(osmFileName)
	if err != nil {
		return Stats{}, err
	}
	defer scanner.Close()
	if extractor.progress != nil {
		scanner.OnProgress(extractor.progress)
	}

	nodesFile, err := os.Create(nodesFileName)
	if err != nil {
		return Stats{}, errors.Wrap(err, "Can't create vertices file")
	}
	defer nodesFile.Close()
	edgesFile, err := os.Create(edgesFileName)
	if err != nil {
		return Stats{}, errors.Wrap(err, "Can't create edges file")
	}
	defer edgesFile.Close()

	return extractor.Run(scanner, nodesFile, edgesFile)
}
