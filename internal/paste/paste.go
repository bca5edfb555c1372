// Package paste describes the log-upload paste services supported by the launcher.
package paste

import "fmt"

// Type identifies a paste service. The numeric values are persisted in the
// settings store, so they must stay stable even if the display order changes.
type Type int

const (
	NullPointer Type = 0
	Hastebin    Type = 1
	Mclogs      Type = 2
	PasteGG     Type = 3
)

// DefaultType is substituted when the stored value is unrecognized.
const DefaultType = Mclogs

// Service holds the display metadata for a paste service.
type Service struct {
	Name        string
	DefaultBase string
}

var services = map[Type]Service{
	NullPointer: {Name: "0x0.st", DefaultBase: "https://0x0.st"},
	Hastebin:    {Name: "hastebin", DefaultBase: "https://hst.sh"},
	Mclogs:      {Name: "mclo.gs", DefaultBase: "https://api.mclo.gs"},
	PasteGG:     {Name: "paste.gg", DefaultBase: "https://api.paste.gg"},
}

// DisplayOrder is the order in which services are offered to the user.
// Reordering this slice must not change the wire values above.
var DisplayOrder = []Type{Mclogs, NullPointer, PasteGG, Hastebin}

// Lookup returns the service metadata for a stored wire value and reports
// whether the value names a known service.
func Lookup(v int) (Service, bool) {
	s, ok := services[Type(v)]
	return s, ok
}

// ByName resolves a service name (as shown by DisplayOrder) to its Type.
func ByName(name string) (Type, bool) {
	for t, s := range services {
		if s.Name == name {
			return t, true
		}
	}
	return DefaultType, false
}

func (t Type) String() string {
	if s, ok := services[t]; ok {
		return s.Name
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}
