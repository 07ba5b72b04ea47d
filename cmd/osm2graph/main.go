package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/k0kubun/go-ansi"
	"github.com/osmtk/osm2graph"
	"github.com/schollz/progressbar/v3"
)

var (
	osmFileName   = flag.String("file", "graph.osm.pbf", "Filename of OSM file ('.osm.pbf', '.osm' and '.xml' extensions are handled)")
	nodesFileName = flag.String("nodes", "nodes.csv", "Filename of output CSV file with graph vertices (id,lat,lon)")
	edgesFileName = flag.String("edges", "edges.csv", "Filename of output CSV file with graph edges (source,target,weight)")
	weightStr     = flag.String("weight", "travel_time", "Unit of edge weights. Expected values: 'travel_time' for seconds / 'distance' for meters")
	speedsStr     = flag.String("speeds", "", "Free flow speed overrides for highway classes in km/h (separated by commas). E.g.: 'residential=25,service=15'")
	fallbackSpeed = flag.Float64("fallback-speed", osm2graph.DEFAULT_FALLBACK_SPEED, "Speed for ways carrying no parseable limit and no known highway class (km/h)")
	quiet         = flag.Bool("quiet", false, "Suppress process messages?")
)

func main() {
	flag.Parse()

	weighting, err := osm2graph.ParseWeightingMode(*weightStr)
	if err != nil {
		log.Fatal(err)
	}
	speeds, err := parseSpeeds(*speedsStr)
	if err != nil {
		log.Fatal(err)
	}

	options := []func(*osm2graph.Extractor){
		osm2graph.WithWeighting(weighting),
		osm2graph.WithSpeeds(speeds),
		osm2graph.WithFallbackSpeed(*fallbackSpeed),
		osm2graph.WithVerbose(!*quiet),
	}
	if !*quiet {
		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetDescription("[cyan]Scanning OSM objects...[reset]"),
			progressbar.OptionSpinnerType(14),
		)
		options = append(options, osm2graph.WithProgress(func(objects int) {
			bar.Set(objects)
		}))
	}

	extractor := osm2graph.NewExtractor(options...)
	if !*quiet {
		fmt.Println(extractor)
	}
	stats, err := extractor.RunFiles(*osmFileName, *nodesFileName, *edgesFileName)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Mapped %d nodes and %d edges in %v\n", stats.Vertices, stats.Edges, stats.Elapsed)
}

// parseSpeeds parses 'highway=kmh' pairs separated by commas
func parseSpeeds(speedsStr string) (map[string]float64, error) {
	speeds := make(map[string]float64)
	if speedsStr == "" {
		return speeds, nil
	}
	for _, item := range strings.Split(speedsStr, ",") {
		parts := strings.Split(item, "=")
		if len(parts) != 2 {
			return nil, fmt.Errorf("Bad speed override: '%s'. Expected format: 'highway=kmh'", item)
		}
		speedValue, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("Bad speed override value: '%s'. Expected float", parts[1])
		}
		speeds[parts[0]] = speedValue
	}
	return speeds, nil
}
