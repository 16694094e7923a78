package bdata

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"git.thinkinpower.net/bincheck/data"
	"git.thinkinpower.net/bincheck/mod"
	"github.com/pkg/errors"
)

var binDataHeader = "bin,scheme,type,brand,prepaid,country,currency,bank_name,bank_url,bank_phone,bank_city,bank_latitude,bank_longitude,fetched_at"

// WriteCSV exports records, one row per bin, with binDataHeader first.
// Unknown values are empty cells.
func WriteCSV(w io.Writer, records []mod.BinRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(strings.Split(binDataHeader, ",")); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	for _, r := range records {
		var country, currency string
		if r.Country != nil {
			country = mod.Value(r.Country.Name)
			currency = mod.Value(r.Country.Currency)
		}
		var bankName, bankUrl, bankPhone, bankCity, lat, lon string
		if r.Bank != nil {
			bankName = mod.Value(r.Bank.Name)
			bankUrl = mod.Value(r.Bank.Url)
			bankPhone = mod.Value(r.Bank.Phone)
			bankCity = mod.Value(r.Bank.City)
			lat = formatFloat(r.Bank.Latitude)
			lon = formatFloat(r.Bank.Longitude)
		}
		prepaid := ""
		if r.Prepaid != nil {
			prepaid = strconv.FormatBool(*r.Prepaid)
		}
		if err := writer.Write([]string{
			r.Bin,
			mod.Value(r.Scheme),
			mod.Value(r.CardType),
			mod.Value(r.Brand),
			prepaid,
			country,
			currency,
			bankName,
			bankUrl,
			bankPhone,
			bankCity,
			lat,
			lon,
			r.FetchedAt.UTC().Format(data.DateTimePattern),
		}); err != nil {
			return errors.Wrapf(err, "write csv row %s", r.Bin)
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "flush csv")
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
