package brouhaha

import "errors"

var (
	// ErrRootNotSet is returned when the corpus root is read before SetRoot.
	ErrRootNotSet = errors.New("brouhaha: root not set")
	// ErrLookup marks a uri that has no reverb label, SNR array or UEM entry.
	ErrLookup = errors.New("brouhaha: lookup failed")
	// ErrMalformedLabel marks an unparsable reverb-label row.
	ErrMalformedLabel = errors.New("brouhaha: malformed label")
)
