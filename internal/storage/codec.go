package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"biodesigner/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var (
	ErrVersionMismatch = errors.New("record version mismatch")
	ErrMissingOrganism = errors.New("codon table organism is required")
)

// Stamp sets the current schema and codec versions on record.
func Stamp(record model.CodonUsageRecord) model.CodonUsageRecord {
	record.SchemaVersion = CurrentSchemaVersion
	record.CodecVersion = CurrentCodecVersion
	return record
}

func EncodeCodonTable(record model.CodonUsageRecord) ([]byte, error) {
	if err := checkRecord(record); err != nil {
		return nil, err
	}
	return json.Marshal(record)
}

func DecodeCodonTable(data []byte) (model.CodonUsageRecord, error) {
	var record model.CodonUsageRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.CodonUsageRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.CodonUsageRecord{}, err
	}
	return record, nil
}

func checkRecord(record model.CodonUsageRecord) error {
	if record.Organism == "" {
		return ErrMissingOrganism
	}
	return checkVersion(record.VersionedRecord)
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return fmt.Errorf("%w: schema=%d codec=%d", ErrVersionMismatch, v.SchemaVersion, v.CodecVersion)
	}
	return nil
}

func cloneRecord(record model.CodonUsageRecord) model.CodonUsageRecord {
	out := record
	out.Frequencies = make(map[string]float64, len(record.Frequencies))
	for k, v := range record.Frequencies {
		out.Frequencies[k] = v
	}
	return out
}
