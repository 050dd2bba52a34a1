package router

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/cheongnyamri/market/internal/storage"
)

// keyMapURL persists the shopper's map override across sessions.
const keyMapURL = "ddmap.marketUrl"

// DefaultMapURL is the built-in market map, used when neither an override
// nor a stored URL exists.
const DefaultMapURL = "https://transcendent-crisp-6ebea8.netlify.app/"

// ErrInvalidMapURL rejects map URLs that are not absolute http(s).
var ErrInvalidMapURL = errors.New("router: invalid map url")

// MapURLStore resolves the map screen's URL with the precedence
// override > stored > default, and persists shopper-set URLs.
type MapURLStore struct {
	gw         storage.Gateway
	defaultURL string
	override   string
	stored     string
	loaded     bool
}

// NewMapURLStore wires the store to its persistence gateway.
func NewMapURLStore(gw storage.Gateway, defaultURL, override string) *MapURLStore {
	return &MapURLStore{gw: gw, defaultURL: defaultURL, override: override}
}

// Resolve returns the effective map URL.
func (m *MapURLStore) Resolve() string {
	if m.override != "" {
		return m.override
	}
	m.load()
	if m.stored != "" {
		return m.stored
	}
	return m.defaultURL
}

// Set validates, normalizes, and persists a shopper-entered map URL. The
// normalized form keeps scheme, host, and path; query and fragment are
// dropped so bookmark noise does not stick.
func (m *MapURLStore) Set(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidMapURL, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidMapURL, raw)
	}
	normalized := parsed.Scheme + "://" + parsed.Host + parsed.Path
	if err := m.gw.Set(keyMapURL, normalized); err != nil {
		return "", err
	}
	m.stored = normalized
	m.loaded = true
	return normalized, nil
}

func (m *MapURLStore) load() {
	if m.loaded {
		return
	}
	m.loaded = true
	var stored string
	if ok, err := m.gw.Get(keyMapURL, &stored); err == nil && ok {
		m.stored = stored
	}
}
