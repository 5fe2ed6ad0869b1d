package response

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const CSV_HEADER = "time, amplitude"

// WriteCSV writes samples as "time, amplitude" lines under a header
func WriteCSV(w io.Writer, samples []Sample) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, CSV_HEADER); err != nil {
		return err
	}
	for _, s := range samples {
		if _, err := fmt.Fprintf(bw, "%g, %g\n", s.Time, s.Amplitude); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveCSV writes samples to a file
func SaveCSV(path string, samples []Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv file: %w", err)
	}
	defer f.Close()
	if err := WriteCSV(f, samples); err != nil {
		return fmt.Errorf("writing csv file: %w", err)
	}
	return f.Close()
}

// ReadCSV parses the output of WriteCSV
func ReadCSV(r io.Reader) ([]Sample, error) {
	scanner := bufio.NewScanner(r)
	var samples []Sample
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || (line == 1 && text == CSV_HEADER) {
			continue
		}
		fields := strings.Split(text, ",")
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected 2 fields, got %d", line, len(fields))
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parsing time: %w", line, err)
		}
		a, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parsing amplitude: %w", line, err)
		}
		samples = append(samples, Sample{Time: t, Amplitude: a})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}
