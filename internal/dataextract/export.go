// Package dataextract writes a Pareto front's Result records out to JSON
// or CSV.
package dataextract

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"evacsim/internal/model"
)

// RunExport is the top-level JSON document written by WriteJSON: a
// Pareto front plus the run metadata that produced it.
type RunExport struct {
	RunID      string         `json:"run_id"`
	Experiment string         `json:"experiment"`
	Algorithm  string         `json:"algorithm"`
	Front      []model.Result `json:"front"`
}

// WriteJSON writes export as indented JSON, newline-terminated.
func WriteJSON(w io.Writer, export RunExport) error {
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("dataextract: marshal run export: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

var csvHeader = []string{
	"generation", "num_doors", "iterations", "distance", "objectives", "gene", "door_positions",
}

// WriteCSV flattens front into one row per Result: Objectives becomes a
// semicolon-joined list, Gene becomes a run of "0"/"1", and
// DoorPositionsGrouped becomes a semicolon-joined list of
// "row,col,size,dir" tuples — a readable projection, not a format meant
// to round-trip back into a Result.
func WriteCSV(w io.Writer, front []model.Result) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("dataextract: write csv header: %w", err)
	}
	for i, r := range front {
		record := []string{
			strconv.Itoa(int(r.Generation)),
			strconv.Itoa(r.NumDoors),
			strconv.FormatFloat(r.Iterations, 'f', -1, 64),
			strconv.FormatFloat(r.Distance, 'f', -1, 64),
			joinFloats(r.Objectives),
			joinGene(r.Gene),
			joinDoorSlots(r.DoorPositionsGrouped),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("dataextract: write csv row %d: %w", i+1, err)
		}
	}
	if err := writer.Error(); err != nil {
		return fmt.Errorf("dataextract: flush csv: %w", err)
	}
	return nil
}

func joinFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ";")
}

func joinGene(gene []bool) string {
	var b strings.Builder
	b.Grow(len(gene))
	for _, bit := range gene {
		if bit {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

func joinDoorSlots(slots []model.DoorSlot) string {
	parts := make([]string, len(slots))
	for i, s := range slots {
		dir := "h"
		if s.Direction == model.Vertical {
			dir = "v"
		}
		parts[i] = fmt.Sprintf("%d,%d,%d,%s", s.Row, s.Col, s.Size, dir)
	}
	return strings.Join(parts, ";")
}
