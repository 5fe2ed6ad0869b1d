package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/jdginn/go-sound-scene/response"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: ir_peaks <captures.csv> <output.txt>")
		os.Exit(1)
	}

	inFile := os.Args[1]
	outFile := os.Args[2]

	f, err := os.Open(inFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot open input file: %v\n", err)
		os.Exit(2)
	}
	defer f.Close()

	samples, err := response.ReadCSV(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot parse CSV: %v\n", err)
		os.Exit(3)
	}

	peaks := response.Peaks(samples)
	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].TimeMs < peaks[j].TimeMs
	})

	out, err := os.Create(outFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot create output file: %v\n", err)
		os.Exit(4)
	}
	defer out.Close()

	for _, p := range response.ClusterPeaks(peaks, 0.05, 4) {
		fmt.Fprintf(out, "%.6fms, %.2fdB\n", p.TimeMs, p.GainDb)
	}
}
