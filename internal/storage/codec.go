package storage

import "encoding/json"

// EncodeRun and DecodeRun serialize a RunRecord's Pareto front for the
// SQLite backend's BLOB column.
func EncodeRun(run RunRecord) ([]byte, error) {
	return json.Marshal(run)
}

func DecodeRun(data []byte) (RunRecord, error) {
	var run RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return RunRecord{}, err
	}
	return run, nil
}
