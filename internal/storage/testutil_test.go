package storage

import "biodesigner/internal/model"

func sampleRecord(organism string) model.CodonUsageRecord {
	return Stamp(model.CodonUsageRecord{
		Organism:    organism,
		Name:        "Test organism",
		Frequencies: map[string]float64{"AAA": 0.7, "AAG": 0.3},
	})
}
