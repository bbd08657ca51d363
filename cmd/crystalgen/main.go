// Command crystalgen generates crystal structure records as JSON, either one
// structure from flags or the representative set (fcc Cu, bcc Fe, hcp Ti).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/materialsfoundry/crystal-generator/core"
	"github.com/materialsfoundry/crystal-generator/internal/batch"
	"github.com/materialsfoundry/crystal-generator/internal/logging"
	"github.com/materialsfoundry/crystal-generator/kb"
	"github.com/materialsfoundry/crystal-generator/model"
)

func main() {
	element := flag.String("element", "Cu", "chemical symbol, e.g. Cu")
	structure := flag.String("structure", "fcc", "lattice family: fcc, bcc, or hcp (case-insensitive)")
	latticeConstant := flag.Float64("lattice-constant", 0, "lattice constant in Å (0 uses the registry default)")
	cOverA := flag.Float64("c-over-a", 0, "c/a ratio for hcp (0 uses the registry default)")
	size := flag.String("size", "2,2,2", "supercell replication as nx,ny,nz")
	out := flag.String("out", "", "output file (default stdout)")
	pretty := flag.Bool("pretty", true, "indent JSON output")
	common := flag.Bool("common", false, "generate the representative structure set into -out-dir instead")
	outDir := flag.String("out-dir", ".", "output directory for -common")
	flag.Parse()

	log := logging.NewFromEnv()
	gen := core.NewGenerator(kb.NewRegistry(), core.WithLogger(log))
	ctx := context.Background()

	if *common {
		runner := batch.NewRunner(gen, log)
		results, err := runner.GenerateCommon(ctx, *outDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "batch generation failed: %v\n", err)
			os.Exit(1)
		}
		failed := 0
		for _, res := range results {
			if res.Err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "%s %s: %v\n", res.Family, res.Element, res.Err)
				continue
			}
			fmt.Printf("%s %s: %d atoms -> %s\n", res.Family, res.Element, res.Atoms, res.Path)
		}
		if failed > 0 {
			os.Exit(1)
		}
		return
	}

	rep, err := parseSize(*size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -size: %v\n", err)
		os.Exit(2)
	}

	req := model.Request{
		Element:       *element,
		StructureType: *structure,
		Size:          rep,
	}
	if *latticeConstant > 0 {
		req.LatticeConstant = latticeConstant
	}
	if *cOverA > 0 {
		req.COverA = cOverA
	}

	s, err := gen.Generate(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	var data []byte
	if *pretty {
		data, err = json.MarshalIndent(s, "", "  ")
	} else {
		data, err = json.Marshal(s)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode structure: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if *out == "" {
		_, _ = os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d atoms to %s\n", s.NumAtoms(), *out)
}

func parseSize(s string) ([3]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return [3]int{}, fmt.Errorf("want three comma-separated integers, got %q", s)
	}
	var rep [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return [3]int{}, fmt.Errorf("component %d: %w", i, err)
		}
		rep[i] = n
	}
	return rep, nil
}
