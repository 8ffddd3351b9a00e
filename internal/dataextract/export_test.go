package dataextract

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"evacsim/internal/model"
)

func sampleFront() []model.Result {
	return []model.Result{
		{
			Gene:                 []bool{true, false},
			DoorPositionsGrouped: []model.DoorSlot{{Row: 1, Col: 2, Size: 1, Direction: model.Horizontal}},
			Objectives:           []float64{1, 3.5},
			NumDoors:             1,
			Iterations:           40,
			Distance:             3.5,
			Generation:           2,
		},
	}
}

func TestWriteJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	export := RunExport{RunID: "r1", Experiment: "s2", Algorithm: "nsga2", Front: sampleFront()}
	require.NoError(t, WriteJSON(&buf, export))

	var got RunExport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, export, got)
}

func TestWriteCSVHeaderAndRowCount(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleFront()))

	reader := csv.NewReader(&buf)
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, csvHeader, records[0])
	require.Equal(t, "1", records[1][1])
	require.Equal(t, "1;2;1;h", records[1][6])
}

func TestWriteCSVEmptyFrontWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	reader := csv.NewReader(&buf)
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}
