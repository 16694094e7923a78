package bdata

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"git.thinkinpower.net/bincheck/mod"
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// binRow is the bin_history table. Nested values are JSON blobs; an absent
// value is stored as JSON null. fetched_at is unix nanoseconds.
type binRow struct {
	Bin       string `gorm:"primaryKey;size:8"`
	Scheme    *string
	CardType  *string
	Brand     *string
	Prepaid   *bool
	Number    datatypes.JSON
	Country   datatypes.JSON
	Bank      datatypes.JSON
	FetchedAt int64 `gorm:"index;not null"`
}

func (binRow) TableName() string { return "bin_history" }

type sqliteDatabase struct {
	db *gorm.DB
}

// NewSqliteDatabase opens (or creates) the embedded history database at path.
func NewSqliteDatabase(path string) (BinDatabase, error) {
	if path == "" {
		return nil, errors.New("sqlite path is not configured")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, "create directory for %s", path)
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite %s", path)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "sqlite handle")
	}
	//sqlite只允许单写
	sqlDB.SetMaxOpenConns(1)
	if err = db.AutoMigrate(&binRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "migrate bin_history")
	}
	return &sqliteDatabase{db: db}, nil
}

func (s *sqliteDatabase) Get(ctx context.Context, bin string) (*mod.BinRecord, error) {
	var row binRow
	err := s.db.WithContext(ctx).Where("bin = ?", bin).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read bin %s", bin)
	}
	record, err := row.record()
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *sqliteDatabase) Save(ctx context.Context, record mod.BinRecord) error {
	if record.Bin == "" {
		return ErrEmptyBin
	}
	row, err := newBinRow(record)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "bin"}}, UpdateAll: true}).
		Create(&row).Error
	return errors.Wrapf(err, "save bin %s", record.Bin)
}

func (s *sqliteDatabase) List(ctx context.Context) ([]mod.BinRecord, error) {
	var rows []binRow
	if err := s.db.WithContext(ctx).Order("fetched_at desc").Order("bin asc").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list bin_history")
	}
	result := make([]mod.BinRecord, 0, len(rows))
	for _, row := range rows {
		record, err := row.record()
		if err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, nil
}

func (s *sqliteDatabase) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).Where("1 = 1").Delete(&binRow{}).Error
	return errors.Wrap(err, "clear bin_history")
}

func (s *sqliteDatabase) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newBinRow(record mod.BinRecord) (binRow, error) {
	row := binRow{
		Bin:       record.Bin,
		Scheme:    record.Scheme,
		CardType:  record.CardType,
		Brand:     record.Brand,
		Prepaid:   record.Prepaid,
		FetchedAt: record.FetchedAt.UnixNano(),
	}
	var err error
	if row.Number, err = json.Marshal(record.Number); err != nil {
		return row, errors.Wrap(err, "encode number")
	}
	if row.Country, err = json.Marshal(record.Country); err != nil {
		return row, errors.Wrap(err, "encode country")
	}
	if row.Bank, err = json.Marshal(record.Bank); err != nil {
		return row, errors.Wrap(err, "encode bank")
	}
	return row, nil
}

func (row binRow) record() (mod.BinRecord, error) {
	record := mod.BinRecord{
		Bin:       row.Bin,
		Scheme:    row.Scheme,
		CardType:  row.CardType,
		Brand:     row.Brand,
		Prepaid:   row.Prepaid,
		FetchedAt: time.Unix(0, row.FetchedAt).UTC(),
	}
	if err := decodeBlob(row.Number, &record.Number); err != nil {
		return record, errors.Wrapf(err, "decode number of %s", row.Bin)
	}
	if err := decodeBlob(row.Country, &record.Country); err != nil {
		return record, errors.Wrapf(err, "decode country of %s", row.Bin)
	}
	if err := decodeBlob(row.Bank, &record.Bank); err != nil {
		return record, errors.Wrapf(err, "decode bank of %s", row.Bin)
	}
	return record, nil
}

func decodeBlob(blob []byte, v interface{}) error {
	if len(blob) == 0 {
		return nil
	}
	return json.Unmarshal(blob, v)
}
