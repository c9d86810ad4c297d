package biodesigner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"biodesigner/internal/codon"
	"biodesigner/internal/model"
	"biodesigner/internal/storage"
)

const defaultDBPath = "biodesigner.db"

// ErrInvalidRequest marks errors caused by the caller's input. Transports map
// it to a client error.
var ErrInvalidRequest = errors.New("invalid request")

var (
	ErrSequenceRequired = errors.New("sequence is required")
	ErrGoalRequired     = errors.New("optimization goal is required")
)

type Options struct {
	StoreKind string
	DBPath    string
	// DefaultOrganism is used for codon requests that name no organism and as
	// the fallback for organisms without a table.
	DefaultOrganism string
	// OptimizerDefaults fills the run settings a circuit request leaves
	// unset.
	OptimizerDefaults model.Constraints
	Logger            *slog.Logger
}

type Client struct {
	store           storage.Store
	logger          *slog.Logger
	defaultOrganism string
	defaults        model.Constraints
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	organism := codon.DefaultOrganism
	if opts.DefaultOrganism != "" {
		organism = codon.NormalizeOrganism(opts.DefaultOrganism)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:           store,
		logger:          logger,
		defaultOrganism: organism,
		defaults:        opts.OptimizerDefaults,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// Init prepares the store and seeds every built-in codon table that is not
// already stored. Imported tables are left alone.
func (c *Client) Init(ctx context.Context) error {
	if err := c.store.Init(ctx); err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	seeded := 0
	for _, table := range codon.BuiltinTables() {
		_, ok, err := c.store.GetCodonTable(ctx, table.Organism)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if err := c.store.SaveCodonTable(ctx, recordFromTable(table)); err != nil {
			return fmt.Errorf("seed %s: %w", table.Organism, err)
		}
		seeded++
	}
	c.logger.Debug("codon tables ready", "seeded", seeded)
	return nil
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
}

func recordFromTable(table codon.UsageTable) model.CodonUsageRecord {
	return storage.Stamp(model.CodonUsageRecord{
		Organism:    table.Organism,
		Name:        table.Name,
		Frequencies: table.Frequencies,
	})
}

func tableFromRecord(record model.CodonUsageRecord) codon.UsageTable {
	return codon.UsageTable{
		Organism:    record.Organism,
		Name:        record.Name,
		Frequencies: record.Frequencies,
	}
}
