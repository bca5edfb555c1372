package settings

import "github.com/emberlaunch/launchersync/internal/paste"

// Fields is the editable form model for the launcher's API settings. It is
// populated from a Store by Load, mutated by user edits or an applied
// properties document, and flushed back by Apply. It has no life of its own
// beyond that round trip.
type Fields struct {
	PasteType       paste.Type
	PasteCustomBase string

	MSAClientID  string
	MetaURL      string
	ResourceURL  string
	LibrariesURL string

	FlameKey      string
	ModrinthToken string
	UserAgent     string
}

// Load reads the form model out of the store. Missing keys read as empty. A
// stored paste type that names no known service falls back to the default
// service and discards the stored custom base URL along with it.
func Load(s Store) Fields {
	f := Fields{
		PasteType:       paste.DefaultType,
		PasteCustomBase: s.Get(KeyPastebinCustomAPIBase),
		MSAClientID:     s.Get(KeyMSAClientIDOverride),
		MetaURL:         s.Get(KeyMetaURLOverride),
		ResourceURL:     s.Get(KeyResourceURLOverride),
		LibrariesURL:    s.Get(KeyLibrariesURLOverride),
		FlameKey:        s.Get(KeyFlameKeyOverride),
		ModrinthToken:   s.Get(KeyModrinthToken),
		UserAgent:       s.Get(KeyUserAgentOverride),
	}

	// An absent key keeps the default service; a present but unrecognized
	// value falls back to it and discards the custom base as well.
	if raw := s.Get(KeyPastebinType); raw != "" {
		stored := s.GetInt(KeyPastebinType)
		if _, ok := paste.Lookup(stored); ok {
			f.PasteType = paste.Type(stored)
		} else {
			f.PasteCustomBase = ""
		}
	}

	return f
}

// Apply writes the form model back to the store. The three service URL
// overrides are normalized on the way out; the custom paste base and all
// remaining fields are written verbatim. Validation is advisory and happens
// at edit time, so Apply never rejects a value.
func Apply(f Fields, s Store) {
	s.SetInt(KeyPastebinType, int(f.PasteType))
	s.Set(KeyPastebinCustomAPIBase, f.PasteCustomBase)

	s.Set(KeyMSAClientIDOverride, f.MSAClientID)
	s.Set(KeyMetaURLOverride, NormalizeURL(f.MetaURL))
	s.Set(KeyResourceURLOverride, NormalizeURL(f.ResourceURL))
	s.Set(KeyLibrariesURLOverride, NormalizeURL(f.LibrariesURL))

	s.Set(KeyFlameKeyOverride, f.FlameKey)
	s.Set(KeyModrinthToken, f.ModrinthToken)
	s.Set(KeyUserAgentOverride, f.UserAgent)
}
