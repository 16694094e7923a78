package bdata

import (
	"context"
	"time"

	"git.thinkinpower.net/bincheck/mod"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS bin_history (
    bin        TEXT PRIMARY KEY,
    scheme     TEXT,
    card_type  TEXT,
    brand      TEXT,
    prepaid    BOOLEAN,
    number     JSONB,
    country    JSONB,
    bank       JSONB,
    fetched_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bin_history_fetched_at ON bin_history (fetched_at DESC);
`

const binColumns = `bin, scheme, card_type, brand, prepaid, number, country, bank, fetched_at`

type postgresDatabase struct {
	pool *pgxpool.Pool
}

// NewPostgresDatabase connects to databaseURL and creates bin_history if needed.
func NewPostgresDatabase(ctx context.Context, databaseURL string) (BinDatabase, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is not configured")
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "unable to connect to database")
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ping database")
	}
	if _, err = pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "migrate bin_history")
	}
	return &postgresDatabase{pool: pool}, nil
}

func (p *postgresDatabase) Get(ctx context.Context, bin string) (*mod.BinRecord, error) {
	query := `SELECT ` + binColumns + ` FROM bin_history WHERE bin = $1`
	record, err := scanRecord(p.pool.QueryRow(ctx, query, bin))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read bin %s", bin)
	}
	return &record, nil
}

func (p *postgresDatabase) Save(ctx context.Context, record mod.BinRecord) error {
	if record.Bin == "" {
		return ErrEmptyBin
	}
	query := `
        INSERT INTO bin_history (` + binColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (bin) DO UPDATE SET
            scheme = EXCLUDED.scheme,
            card_type = EXCLUDED.card_type,
            brand = EXCLUDED.brand,
            prepaid = EXCLUDED.prepaid,
            number = EXCLUDED.number,
            country = EXCLUDED.country,
            bank = EXCLUDED.bank,
            fetched_at = EXCLUDED.fetched_at
    `
	_, err := p.pool.Exec(ctx, query,
		record.Bin, record.Scheme, record.CardType, record.Brand, record.Prepaid,
		record.Number, record.Country, record.Bank, record.FetchedAt.UnixNano())
	return errors.Wrapf(err, "save bin %s", record.Bin)
}

func (p *postgresDatabase) List(ctx context.Context) ([]mod.BinRecord, error) {
	query := `SELECT ` + binColumns + ` FROM bin_history ORDER BY fetched_at DESC, bin ASC`
	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "list bin_history")
	}
	defer rows.Close()

	result := make([]mod.BinRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan bin_history")
		}
		result = append(result, record)
	}
	return result, errors.Wrap(rows.Err(), "iterate bin_history")
}

func (p *postgresDatabase) Clear(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM bin_history`)
	return errors.Wrap(err, "clear bin_history")
}

func (p *postgresDatabase) Close() error {
	p.pool.Close()
	return nil
}

func scanRecord(row pgx.Row) (mod.BinRecord, error) {
	var (
		record    mod.BinRecord
		fetchedAt int64
	)
	err := row.Scan(&record.Bin, &record.Scheme, &record.CardType, &record.Brand, &record.Prepaid,
		&record.Number, &record.Country, &record.Bank, &fetchedAt)
	if err != nil {
		return record, err
	}
	record.FetchedAt = time.Unix(0, fetchedAt).UTC()
	return record, nil
}
