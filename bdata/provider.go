package bdata

import (
	"context"
	"sort"

	"git.thinkinpower.net/bincheck/data"
	"git.thinkinpower.net/bincheck/mod"
	"github.com/pkg/errors"
)

var ErrEmptyBin = errors.New("bin must not be empty")

// BinDatabase is the local BIN history keyed by bin. Writes are
// last-write-wins; there is no per-record delete and no expiry.
type BinDatabase interface {
	// Get returns nil, nil when bin is not stored.
	Get(ctx context.Context, bin string) (*mod.BinRecord, error)
	Save(ctx context.Context, record mod.BinRecord) error
	// List returns every record, newest fetched_at first.
	List(ctx context.Context) ([]mod.BinRecord, error)
	Clear(ctx context.Context) error
	Close() error
}

type BinDataConfig struct {
	Mode        string
	SqlitePath  string
	DatabaseURL string
	RedisURL    string
}

func NewBinDatabase(ctx context.Context, cfg BinDataConfig) (BinDatabase, error) {
	switch cfg.Mode {
	case data.StoreModeMemory:
		return NewMemoryDatabase(), nil
	case data.StoreModeSqlite, "":
		return NewSqliteDatabase(cfg.SqlitePath)
	case data.StoreModePostgres:
		return NewPostgresDatabase(ctx, cfg.DatabaseURL)
	case data.StoreModeRedis:
		return NewRedisDatabase(ctx, cfg.RedisURL)
	}
	return nil, errors.Errorf("unknown store mode %q", cfg.Mode)
}

// sortRecords orders by fetched_at descending, ties by bin.
func sortRecords(records []mod.BinRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].FetchedAt.Equal(records[j].FetchedAt) {
			return records[i].FetchedAt.After(records[j].FetchedAt)
		}
		return records[i].Bin < records[j].Bin
	})
}
