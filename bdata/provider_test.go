package bdata

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.thinkinpower.net/bincheck/mod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRecord(bin string, fetchedAt time.Time) mod.BinRecord {
	return mod.BinRecord{
		Bin:      bin,
		Scheme:   mod.String("visa"),
		CardType: mod.String("debit"),
		Brand:    mod.String("Visa/Dankort"),
		Prepaid:  mod.Bool(false),
		Number:   &mod.CardNumber{Length: mod.Int(16), Luhn: mod.Bool(true)},
		Country: &mod.Country{
			Numeric:   mod.String("208"),
			Alpha2:    mod.String("DK"),
			Name:      mod.String("Denmark"),
			Emoji:     mod.String("🇩🇰"),
			Currency:  mod.String("DKK"),
			Latitude:  mod.Float(56),
			Longitude: mod.Float(10),
		},
		Bank: &mod.Bank{
			Name:      mod.String("Jyske Bank"),
			Url:       mod.String("www.jyskebank.dk"),
			Phone:     mod.String("+4589893300"),
			City:      mod.String("Hjørring"),
			Latitude:  mod.Float(57.4581),
			Longitude: mod.Float(9.9826),
		},
		FetchedAt: fetchedAt,
	}
}

// testBinDatabase runs the behavior every backend must share.
func testBinDatabase(t *testing.T, db BinDatabase) {
	ctx := context.Background()
	base := time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC)

	t.Run("missing bin", func(t *testing.T) {
		got, err := db.Get(ctx, "000000")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("round trip", func(t *testing.T) {
		want := fullRecord("45717360", base)
		require.NoError(t, db.Save(ctx, want))
		got, err := db.Get(ctx, "45717360")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want, *got)
	})

	t.Run("sparse record round trip", func(t *testing.T) {
		want := mod.BinRecord{Bin: "555555", Scheme: mod.String("mastercard"), FetchedAt: base.Add(time.Minute)}
		require.NoError(t, db.Save(ctx, want))
		got, err := db.Get(ctx, "555555")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want, *got)
		assert.Nil(t, got.Prepaid)
		assert.Nil(t, got.Bank)
	})

	t.Run("second save wins", func(t *testing.T) {
		require.NoError(t, db.Save(ctx, mod.BinRecord{Bin: "411111", Scheme: mod.String("visa"), FetchedAt: base}))
		require.NoError(t, db.Save(ctx, mod.BinRecord{Bin: "411111", Scheme: mod.String("amex"), FetchedAt: base.Add(2 * time.Minute)}))

		records, err := db.List(ctx)
		require.NoError(t, err)
		count := 0
		for _, r := range records {
			if r.Bin == "411111" {
				count++
				assert.Equal(t, "amex", mod.Value(r.Scheme))
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("list newest first", func(t *testing.T) {
		records, err := db.List(ctx)
		require.NoError(t, err)
		var bins []string
		for _, r := range records {
			bins = append(bins, r.Bin)
		}
		assert.Equal(t, []string{"411111", "555555", "45717360"}, bins)
	})

	t.Run("sub-millisecond fetched_at kept", func(t *testing.T) {
		want := fullRecord("222222", base.Add(123456789*time.Nanosecond))
		require.NoError(t, db.Save(ctx, want))
		got, err := db.Get(ctx, "222222")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want, *got)
		assert.Equal(t, 123456789, got.FetchedAt.Nanosecond())
	})

	t.Run("empty bin rejected", func(t *testing.T) {
		require.ErrorIs(t, db.Save(ctx, mod.BinRecord{FetchedAt: base}), ErrEmptyBin)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, db.Clear(ctx))
		records, err := db.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
		got, err := db.Get(ctx, "45717360")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestMemoryDatabase(t *testing.T) {
	testBinDatabase(t, NewMemoryDatabase())
}

func TestSqliteDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history", "bin_database.db")
	db, err := NewSqliteDatabase(path)
	require.NoError(t, err)
	defer db.Close()

	testBinDatabase(t, db)
}

func TestSqliteDatabasePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bin_database.db")
	rec := fullRecord("999999", time.Date(2026, 1, 2, 3, 4, 5, 6000000, time.UTC))

	db, err := NewSqliteDatabase(path)
	require.NoError(t, err)
	require.NoError(t, db.Save(ctx, rec))
	require.NoError(t, db.Close())

	db, err = NewSqliteDatabase(path)
	require.NoError(t, err)
	defer db.Close()
	got, err := db.Get(ctx, "999999")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec, *got)
}

func TestPostgresDatabase(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := NewPostgresDatabase(context.Background(), url)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Clear(context.Background()))

	testBinDatabase(t, db)
}

func TestRedisDatabase(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	db, err := NewRedisDatabase(context.Background(), url)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Clear(context.Background()))

	testBinDatabase(t, db)
}

func TestNewBinDatabase(t *testing.T) {
	ctx := context.Background()

	db, err := NewBinDatabase(ctx, BinDataConfig{Mode: "memory"})
	require.NoError(t, err)
	assert.NoError(t, db.Close())

	_, err = NewBinDatabase(ctx, BinDataConfig{Mode: "leveldb"})
	assert.Error(t, err)

	_, err = NewBinDatabase(ctx, BinDataConfig{Mode: "postgres"})
	assert.Error(t, err)

	_, err = NewBinDatabase(ctx, BinDataConfig{Mode: "redis"})
	assert.Error(t, err)

	_, err = NewBinDatabase(ctx, BinDataConfig{Mode: "sqlite"})
	assert.Error(t, err, "sqlite needs a path")
}
