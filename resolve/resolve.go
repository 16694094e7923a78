// Package resolve answers "what do we know about this BIN": the local store
// first, binlist on a miss, best-effort geocoding of the bank, write-through,
// and the stored record again when binlist fails.
package resolve

//go:generate mockgen -source=resolve.go -destination=mocks/mocks.go -package=mocks LocalStore,RemoteLookupClient,GeocodingClient,CredentialStore

import (
	"context"
	"iter"
	"time"

	"git.thinkinpower.net/bincheck/binlist"
	"git.thinkinpower.net/bincheck/geocode"
	"git.thinkinpower.net/bincheck/mod"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("git.thinkinpower.net/bincheck/resolve")

type LocalStore interface {
	// Get returns nil, nil when bin is not stored.
	Get(ctx context.Context, bin string) (*mod.BinRecord, error)
	Save(ctx context.Context, record mod.BinRecord) error
	List(ctx context.Context) ([]mod.BinRecord, error)
	Clear(ctx context.Context) error
}

type RemoteLookupClient interface {
	Lookup(ctx context.Context, bin, authorization string) (*binlist.Response, error)
}

type GeocodingClient interface {
	Search(ctx context.Context, query string) ([]geocode.Place, error)
}

type CredentialStore interface {
	Get(ctx context.Context) (string, error)
}

type Resolver struct {
	store       LocalStore
	remote      RemoteLookupClient
	geocoder    GeocodingClient
	credentials CredentialStore
	log         logger.FieldLogger
	now         func() time.Time
}

type Option func(*Resolver)

func WithLogger(l logger.FieldLogger) Option {
	return func(r *Resolver) { r.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// New builds a Resolver. geocoder may be nil, which disables enrichment.
func New(store LocalStore, remote RemoteLookupClient, geocoder GeocodingClient, credentials CredentialStore, opts ...Option) (*Resolver, error) {
	if store == nil {
		return nil, errors.New("resolve: local store is required")
	}
	if remote == nil {
		return nil, errors.New("resolve: remote lookup client is required")
	}
	if credentials == nil {
		return nil, errors.New("resolve: credential store is required")
	}
	r := &Resolver{
		store:       store,
		remote:      remote,
		geocoder:    geocoder,
		credentials: credentials,
		log:         logger.StandardLogger(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// ValidateBin accepts exactly 6 to 8 ASCII digits.
func ValidateBin(bin string) error {
	if len(bin) < 6 || len(bin) > 8 {
		return &LookupError{Kind: KindInvalidFormat}
	}
	for i := 0; i < len(bin); i++ {
		if bin[i] < '0' || bin[i] > '9' {
			return &LookupError{Kind: KindInvalidFormat}
		}
	}
	return nil
}

// Check validates bin and resolves it. Invalid input never touches the
// store or the network.
func (r *Resolver) Check(ctx context.Context, bin string) (*mod.BinRecord, error) {
	if err := ValidateBin(bin); err != nil {
		lookupFailures.WithLabelValues(KindInvalidFormat.String()).Inc()
		return nil, err
	}
	return r.Resolve(ctx, bin)
}

// Resolve returns the stored record for bin, or fetches, enriches and stores
// a new one. When the fetch fails the stored record is preferred over the
// error. Returned errors are *LookupError.
func (r *Resolver) Resolve(ctx context.Context, bin string) (*mod.BinRecord, error) {
	ctx, span := tracer.Start(ctx, "resolve.Resolve", trace.WithAttributes(attribute.String("bin", bin)))
	defer span.End()
	log := r.log.WithField("bin", bin)

	if cached := r.cached(ctx, log, bin); cached != nil {
		r.answered(span, sourceCache)
		return cached, nil
	}

	resp, err := r.fetch(ctx, log, bin)
	if err != nil {
		lookupErr := classify(err)
		log.WithFields(logger.Fields{"kind": lookupErr.Kind.String(), "error": err}).Warn("remote lookup failed")
		if cached := r.cached(ctx, log, bin); cached != nil {
			log.Info("serving cached record after remote failure")
			r.answered(span, sourceFallback)
			return cached, nil
		}
		lookupFailures.WithLabelValues(lookupErr.Kind.String()).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, lookupErr.Error())
		return nil, lookupErr
	}

	record := mod.BinRecord{
		Bin:       bin,
		Scheme:    resp.Scheme,
		CardType:  resp.Type,
		Brand:     resp.Brand,
		Prepaid:   resp.Prepaid,
		Number:    resp.Number,
		Country:   normalizeCountry(resp.Country),
		Bank:      r.enrich(ctx, log, resp.Bank),
		FetchedAt: r.now().UTC().Truncate(time.Millisecond),
	}
	if err = r.store.Save(ctx, record); err != nil {
		persistFailures.Inc()
		log.WithFields(logger.Fields{"kind": KindPersistFailed.String(), "error": err}).Warn("fresh record not cached")
	}
	r.answered(span, sourceRemote)
	return &record, nil
}

func (r *Resolver) cached(ctx context.Context, log logger.FieldLogger, bin string) *mod.BinRecord {
	record, err := r.store.Get(ctx, bin)
	if err != nil {
		log.WithError(err).Warn("cache read failed, treating as miss")
		return nil
	}
	return record
}

func (r *Resolver) fetch(ctx context.Context, log logger.FieldLogger, bin string) (*binlist.Response, error) {
	apiKey, err := r.credentials.Get(ctx)
	if err != nil {
		log.WithError(err).Warn("credential unavailable, using free tier")
		apiKey = ""
	}
	authorization := ""
	if apiKey != "" {
		authorization = "Bearer " + apiKey
	}
	log.WithField("premium", apiKey != "").Debug("requesting binlist")

	start := time.Now()
	resp, err := r.remote.Lookup(ctx, bin, authorization)
	remoteDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	if err == nil && resp == nil {
		err = errors.New("binlist returned no body")
	}
	return resp, err
}

func (r *Resolver) answered(span trace.Span, source string) {
	lookupsTotal.WithLabelValues(source).Inc()
	span.SetAttributes(attribute.String("source", source))
}

// normalizeCountry copies c, dropping a coordinate pair that is only half present.
func normalizeCountry(c *mod.Country) *mod.Country {
	if c == nil {
		return nil
	}
	country := *c
	if country.Latitude == nil || country.Longitude == nil {
		country.Latitude, country.Longitude = nil, nil
	}
	return &country
}

// ListAll yields the history newest first. Each range re-reads the store.
func (r *Resolver) ListAll(ctx context.Context) iter.Seq2[mod.BinRecord, error] {
	return func(yield func(mod.BinRecord, error) bool) {
		records, err := r.store.List(ctx)
		if err != nil {
			yield(mod.BinRecord{}, errors.Wrap(err, "list history"))
			return
		}
		for _, record := range records {
			if !yield(record, nil) {
				return
			}
		}
	}
}

// Search returns the history entries matching query; see mod.BinRecord.Matches.
func (r *Resolver) Search(ctx context.Context, query string) ([]mod.BinRecord, error) {
	result := make([]mod.BinRecord, 0)
	for record, err := range r.ListAll(ctx) {
		if err != nil {
			return nil, err
		}
		if record.Matches(query) {
			result = append(result, record)
		}
	}
	return result, nil
}

// Save upserts record by bin. fetched_at is stored in UTC.
func (r *Resolver) Save(ctx context.Context, record mod.BinRecord) error {
	record.FetchedAt = record.FetchedAt.UTC()
	return errors.Wrapf(r.store.Save(ctx, record), "save bin %s", record.Bin)
}

// LookupCached reads the store only. It returns nil, nil when bin is unknown.
func (r *Resolver) LookupCached(ctx context.Context, bin string) (*mod.BinRecord, error) {
	record, err := r.store.Get(ctx, bin)
	return record, errors.Wrapf(err, "read bin %s", bin)
}

func (r *Resolver) ClearAll(ctx context.Context) error {
	if err := r.store.Clear(ctx); err != nil {
		return errors.Wrap(err, "clear history")
	}
	r.log.Info("history cleared")
	return nil
}
