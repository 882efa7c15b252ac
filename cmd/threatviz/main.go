// Command threatviz loads a declarative attack-graph configuration, checks
// its integrity and runs path or structural analyses against it. Structural
// failures exit non-zero; content problems are printed as warnings and the
// analysis still runs against the (possibly incomplete) graph.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/kestrelsec/threatviz/pkg/algorithms"
	"github.com/kestrelsec/threatviz/pkg/config"
	"github.com/kestrelsec/threatviz/pkg/graph"
	"github.com/kestrelsec/threatviz/pkg/logging"
	"github.com/kestrelsec/threatviz/pkg/validation"
)

func main() {
	var (
		file         = flag.String("f", "", "attack graph configuration file (toml, yaml or json)")
		validateOnly = flag.Bool("validate", false, "validate the configuration and exit")
		pathSpec     = flag.String("path", "", "enumerate paths between two nodes, as source:target")
		weighted     = flag.Bool("weighted", false, "use CVSS-weighted shortest path instead of hop count")
		maxPaths     = flag.Int("max-paths", algorithms.DefaultMaxPaths, "maximum number of paths to enumerate")
		maxDepth     = flag.Int("max-depth", algorithms.DefaultMaxDepth, "maximum path length in nodes")
		metrics      = flag.Bool("metrics", false, "print aggregate graph metrics")
		surface      = flag.Bool("surface", false, "print attack surface entry points")
		chokepoints  = flag.Bool("chokepoints", false, "print chokepoint nodes")
		top          = flag.Int("top", 10, "number of nodes in the criticality ranking")
	)
	flag.Parse()

	log := logging.NewDefaultLogger()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: threatviz -f <config> [-validate] [-path src:dst] [-metrics] [-surface] [-chokepoints]")
		os.Exit(2)
	}

	raw, err := config.LoadFile(*file)
	if err != nil {
		log.Error("failed to load configuration", logging.Error(err))
		os.Exit(1)
	}

	problems, err := validation.Validate(raw)
	if err != nil {
		log.Error("configuration is not a mapping", logging.Error(err))
		os.Exit(1)
	}
	for _, p := range problems {
		log.Warn(p, logging.Component("validator"))
	}
	if *validateOnly {
		if len(problems) > 0 {
			fmt.Printf("%d problem(s) found\n", len(problems))
			os.Exit(1)
		}
		fmt.Println("configuration is valid")
		return
	}

	model, err := graph.BuildWithOptions(raw, graph.BuildOptions{Logger: log})
	if err != nil {
		log.Error("failed to build attack graph", logging.Error(err))
		os.Exit(1)
	}

	out := make(map[string]any)

	if *pathSpec != "" {
		source, target, ok := strings.Cut(*pathSpec, ":")
		if !ok {
			log.Error("invalid -path value, want source:target", logging.String("value", *pathSpec))
			os.Exit(2)
		}
		if *weighted {
			path, cost := algorithms.WeightedShortestPath(model, source, target, nil)
			out["weighted_shortest_path"] = map[string]any{"path": path, "cost": cost}
		} else {
			paths, err := algorithms.FindAllPaths(model, source, target, *maxPaths, *maxDepth)
			if err != nil {
				log.Error("path enumeration failed", logging.Error(err))
				os.Exit(1)
			}
			out["paths"] = paths
			out["shortest_path"] = algorithms.ShortestPath(model, source, target)
		}
	}

	if *metrics {
		out["metrics"] = algorithms.Metrics(model)
		out["criticality"] = algorithms.DegreeCriticality(model, *top)
	}
	if *surface {
		out["attack_surface"] = algorithms.AttackSurface(model)
	}
	if *chokepoints {
		out["chokepoints"] = algorithms.Chokepoints(model)
	}

	if len(out) == 0 {
		out["metrics"] = algorithms.Metrics(model)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		log.Error("failed to encode output", logging.Error(err))
		os.Exit(1)
	}
}
