package storage

import (
	"context"

	"biodesigner/internal/model"
)

// Store persists codon usage reference tables keyed by organism.
type Store interface {
	Init(ctx context.Context) error
	SaveCodonTable(ctx context.Context, record model.CodonUsageRecord) error
	GetCodonTable(ctx context.Context, organism string) (model.CodonUsageRecord, bool, error)
	ListCodonTables(ctx context.Context) ([]string, error)
	DeleteCodonTable(ctx context.Context, organism string) error
}
