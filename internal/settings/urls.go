package settings

import (
	"net/url"
	"strings"
)

// NormalizeURL prepares an endpoint override for persistence: the path gains a
// trailing slash if it lacks one, and a plain http scheme is upgraded to
// https. Other schemes pass through untouched. Empty input stays empty, and
// input that does not parse as a URL is returned as-is; syntactic checking is
// the validation package's job, not this one's.
//
// The transform is idempotent, so re-applying it to an already-persisted
// value is a no-op.
func NormalizeURL(raw string) string {
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if u.Scheme == "http" {
		u.Scheme = "https"
	}

	return u.String()
}
