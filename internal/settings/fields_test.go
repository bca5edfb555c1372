package settings

import (
	"testing"

	"github.com/emberlaunch/launchersync/internal/paste"
)

func TestLoadDefaults(t *testing.T) {
	s := NewMemStore()

	f := Load(s)

	if f.PasteType != paste.DefaultType {
		t.Errorf("expected default paste type %v for empty store, got %v", paste.DefaultType, f.PasteType)
	}
	if f.MetaURL != "" || f.ResourceURL != "" || f.LibrariesURL != "" {
		t.Error("expected empty URL overrides for empty store")
	}
	if f.MSAClientID != "" || f.FlameKey != "" || f.ModrinthToken != "" || f.UserAgent != "" {
		t.Error("expected empty override fields for empty store")
	}
}

func TestLoadUnrecognizedPasteType(t *testing.T) {
	s := NewMemStore()
	s.SetInt(KeyPastebinType, 42)
	s.Set(KeyPastebinCustomAPIBase, "https://paste.example.com")

	f := Load(s)

	if f.PasteType != paste.DefaultType {
		t.Errorf("expected fallback to %v, got %v", paste.DefaultType, f.PasteType)
	}
	if f.PasteCustomBase != "" {
		t.Errorf("expected custom base to be discarded, got %q", f.PasteCustomBase)
	}
}

func TestApplyNormalizesServiceURLs(t *testing.T) {
	s := NewMemStore()

	f := Fields{
		PasteType:       paste.PasteGG,
		PasteCustomBase: "http://paste.example.com", // stored verbatim
		MetaURL:         "http://meta.example.com",
		ResourceURL:     "https://resources.example.com/v2",
		LibrariesURL:    "https://libraries.example.com/",
		MSAClientID:     "not-a-uuid", // advisory validation only; stored as-is
	}

	Apply(f, s)

	if got := s.GetInt(KeyPastebinType); got != int(paste.PasteGG) {
		t.Errorf("expected paste type %d, got %d", int(paste.PasteGG), got)
	}
	if got := s.Get(KeyPastebinCustomAPIBase); got != "http://paste.example.com" {
		t.Errorf("expected paste base stored verbatim, got %q", got)
	}
	if got := s.Get(KeyMetaURLOverride); got != "https://meta.example.com/" {
		t.Errorf("expected normalized meta URL, got %q", got)
	}
	if got := s.Get(KeyResourceURLOverride); got != "https://resources.example.com/v2/" {
		t.Errorf("expected normalized resource URL, got %q", got)
	}
	if got := s.Get(KeyLibrariesURLOverride); got != "https://libraries.example.com/" {
		t.Errorf("expected libraries URL unchanged, got %q", got)
	}
	if got := s.Get(KeyMSAClientIDOverride); got != "not-a-uuid" {
		t.Errorf("expected client ID stored verbatim, got %q", got)
	}
}

func TestApplyLoadFixedPoint(t *testing.T) {
	s := NewMemStore()
	s.SetInt(KeyPastebinType, int(paste.Hastebin))
	s.Set(KeyMetaURLOverride, "http://meta.example.com/v1")
	s.Set(KeyResourceURLOverride, "https://resources.example.com")
	s.Set(KeyLibrariesURLOverride, "https://libraries.example.com/maven")

	// First apply normalizes the stored values.
	Apply(Load(s), s)

	meta := s.Get(KeyMetaURLOverride)
	resource := s.Get(KeyResourceURLOverride)
	libraries := s.Get(KeyLibrariesURLOverride)

	// A second load/apply round trip must not change them again.
	Apply(Load(s), s)

	if got := s.Get(KeyMetaURLOverride); got != meta {
		t.Errorf("meta URL changed on re-apply: %q -> %q", meta, got)
	}
	if got := s.Get(KeyResourceURLOverride); got != resource {
		t.Errorf("resource URL changed on re-apply: %q -> %q", resource, got)
	}
	if got := s.Get(KeyLibrariesURLOverride); got != libraries {
		t.Errorf("libraries URL changed on re-apply: %q -> %q", libraries, got)
	}
}
