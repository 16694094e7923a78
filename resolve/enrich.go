package resolve

import (
	"context"

	"git.thinkinpower.net/bincheck/binlist"
	"git.thinkinpower.net/bincheck/mod"
	logger "github.com/sirupsen/logrus"
)

// enrich converts the upstream bank and, when it has a name, adds the first
// geocoding match. Geocoding never fails the resolution.
func (r *Resolver) enrich(ctx context.Context, log logger.FieldLogger, bank *binlist.BankInfo) *mod.Bank {
	if bank == nil {
		return nil
	}
	result := &mod.Bank{Name: bank.Name, Url: bank.Url, Phone: bank.Phone, City: bank.City}
	if r.geocoder == nil || !present(bank.Name) {
		return result
	}

	query := geocodeQuery(*bank.Name, bank.City)
	log = log.WithFields(logger.Fields{"kind": KindEnrichmentFailed.String(), "query": query})
	places, err := r.geocoder.Search(ctx, query)
	if err != nil {
		enrichmentFailures.Inc()
		log.WithError(err).Warn("geocoding failed")
		return result
	}
	if len(places) == 0 {
		enrichmentFailures.Inc()
		log.Info("geocoding found nothing")
		return result
	}

	place := places[0]
	if !present(result.City) && place.Address != nil {
		if present(place.Address.City) {
			result.City = place.Address.City
		} else if present(place.Address.Town) {
			result.City = place.Address.Town
		}
	}
	if lat, lon, ok := place.Coordinates(); ok {
		result.Latitude = &lat
		result.Longitude = &lon
	}
	return result
}

func geocodeQuery(name string, city *string) string {
	if present(city) {
		return name + ", " + *city
	}
	return name + " bank"
}

func present(s *string) bool {
	return s != nil && *s != ""
}
