// Package settings provides the persisted launcher settings store and the
// form model that edits it.
package settings

// Keys for the persisted settings this package manages. The names are part of
// the on-disk layout shared with the launcher itself and must not change.
const (
	KeyPastebinType          = "PastebinType"
	KeyPastebinCustomAPIBase = "PastebinCustomAPIBase"
	KeyMSAClientIDOverride   = "MSAClientIDOverride"
	KeyMetaURLOverride       = "MetaURLOverride"
	KeyResourceURLOverride   = "MinecraftResourceURLOverride"
	KeyLibrariesURLOverride  = "MinecraftLibrariesURLOverride"
	KeyFlameKeyOverride      = "FlameKeyOverride"
	KeyModrinthToken         = "ModrinthToken"
	KeyUserAgentOverride     = "UserAgentOverride"

	// KeyMaxMemAlloc (megabytes) is not a form field; it is written when the
	// meta server's properties document carries a maxMemoryAllocation value.
	KeyMaxMemAlloc = "MaxMemAlloc"
)

// AllKeys lists the form field keys, in display order.
var AllKeys = []string{
	KeyPastebinType,
	KeyPastebinCustomAPIBase,
	KeyMSAClientIDOverride,
	KeyMetaURLOverride,
	KeyResourceURLOverride,
	KeyLibrariesURLOverride,
	KeyFlameKeyOverride,
	KeyModrinthToken,
	KeyUserAgentOverride,
}

// Store is an opaque key-value settings store. All operations are total:
// missing keys read as zero values and writes never fail at this layer.
// Persistence, if any, is the implementation's concern.
type Store interface {
	Get(key string) string
	GetInt(key string) int
	Set(key, value string)
	SetInt(key string, value int)
}
