package paste

import "testing"

func TestLookup(t *testing.T) {
	for _, typ := range []Type{NullPointer, Hastebin, Mclogs, PasteGG} {
		svc, ok := Lookup(int(typ))
		if !ok {
			t.Errorf("Lookup(%d) should find a service", int(typ))
		}
		if svc.Name == "" || svc.DefaultBase == "" {
			t.Errorf("service %d has incomplete metadata: %+v", int(typ), svc)
		}
	}

	if _, ok := Lookup(42); ok {
		t.Error("Lookup(42) should not find a service")
	}
	if _, ok := Lookup(-1); ok {
		t.Error("Lookup(-1) should not find a service")
	}
}

func TestWireValuesStable(t *testing.T) {
	// These values are persisted; changing them breaks existing settings files.
	if NullPointer != 0 || Hastebin != 1 || Mclogs != 2 || PasteGG != 3 {
		t.Errorf("paste service wire values changed: %d %d %d %d",
			NullPointer, Hastebin, Mclogs, PasteGG)
	}
}

func TestByName(t *testing.T) {
	for _, typ := range DisplayOrder {
		got, ok := ByName(typ.String())
		if !ok || got != typ {
			t.Errorf("ByName(%q) = %v, %v", typ.String(), got, ok)
		}
	}

	if _, ok := ByName("pastebin.com"); ok {
		t.Error("ByName should not resolve unknown service names")
	}
}

func TestDisplayOrderCoversAllServices(t *testing.T) {
	if len(DisplayOrder) != len(services) {
		t.Fatalf("display order lists %d services, registry has %d",
			len(DisplayOrder), len(services))
	}

	seen := make(map[Type]bool)
	for _, typ := range DisplayOrder {
		if seen[typ] {
			t.Errorf("service %v listed twice in display order", typ)
		}
		seen[typ] = true
		if _, ok := services[typ]; !ok {
			t.Errorf("display order lists unknown service %d", int(typ))
		}
	}
}
