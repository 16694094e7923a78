package bdata

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"git.thinkinpower.net/bincheck/mod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	fetched := time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC)
	records := []mod.BinRecord{
		fullRecord("45717360", fetched),
		{Bin: "555555", Scheme: mod.String("mastercard"), FetchedAt: fetched},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "bin", rows[0][0])
	assert.Equal(t, []string{
		"45717360", "visa", "debit", "Visa/Dankort", "false", "Denmark", "DKK",
		"Jyske Bank", "www.jyskebank.dk", "+4589893300", "Hjørring", "57.4581", "9.9826",
		"2026-10-15 08:30:00",
	}, rows[1])
	assert.Equal(t, []string{
		"555555", "mastercard", "", "", "", "", "", "", "", "", "", "", "", "2026-10-15 08:30:00",
	}, rows[2])
}
