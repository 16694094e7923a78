package resolve

import (
	"fmt"

	"git.thinkinpower.net/bincheck/binlist"
	"github.com/pkg/errors"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidFormat
	KindRateLimited
	KindNotFound
	KindNetworkUnavailable
	KindUpstreamError
	// KindEnrichmentFailed and KindPersistFailed are only ever logged.
	KindEnrichmentFailed
	KindPersistFailed
)

func (k Kind) String() string {
	switch k {
	case KindInvalidFormat:
		return "invalid_format"
	case KindRateLimited:
		return "rate_limited"
	case KindNotFound:
		return "not_found"
	case KindNetworkUnavailable:
		return "network_unavailable"
	case KindUpstreamError:
		return "upstream_error"
	case KindEnrichmentFailed:
		return "enrichment_failed"
	case KindPersistFailed:
		return "persist_failed"
	}
	return "unknown"
}

// LookupError is what a failed resolution surfaces. Error returns a short
// message meant to be shown to the user as is.
type LookupError struct {
	Kind Kind
	// Code is the upstream HTTP status for KindUpstreamError.
	Code  int
	Cause error
}

func (e *LookupError) Error() string {
	switch e.Kind {
	case KindInvalidFormat:
		return "BIN must contain 6 to 8 digits"
	case KindRateLimited:
		return "request limit exceeded, try again later"
	case KindNotFound:
		return "BIN not found"
	case KindNetworkUnavailable:
		return "no network connection"
	case KindUpstreamError:
		return fmt.Sprintf("lookup service error: %d", e.Code)
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "unknown error"
}

func (e *LookupError) Unwrap() error { return e.Cause }

// KindOf returns the kind of a *LookupError anywhere in err's chain.
func KindOf(err error) Kind {
	var lookupErr *LookupError
	if errors.As(err, &lookupErr) {
		return lookupErr.Kind
	}
	return KindUnknown
}

func classify(err error) *LookupError {
	var statusErr *binlist.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case 429:
			return &LookupError{Kind: KindRateLimited, Code: statusErr.Code, Cause: err}
		case 404:
			return &LookupError{Kind: KindNotFound, Code: statusErr.Code, Cause: err}
		}
		return &LookupError{Kind: KindUpstreamError, Code: statusErr.Code, Cause: err}
	}
	var transportErr *binlist.TransportError
	if errors.As(err, &transportErr) {
		return &LookupError{Kind: KindNetworkUnavailable, Cause: err}
	}
	return &LookupError{Kind: KindUnknown, Cause: err}
}
