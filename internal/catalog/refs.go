package catalog

import (
	"regexp"
	"strings"
)

var (
	reEpisodeRef  = regexp.MustCompile(`/episode/(\d+)/?$`)
	reResourceRef = regexp.MustCompile(`/(\w+)/(\d+)/?$`)
	reNumericID   = regexp.MustCompile(`^\d+$`)
)

// EpisodeIDFromURL extracts the numeric id from ".../episode/<digits>".
// ok is false when the reference does not match; callers treat that as
// "no episode data", never as an error.
func EpisodeIDFromURL(ref string) (string, bool) {
	m := reEpisodeRef.FindStringSubmatch(strings.TrimSpace(ref))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ResourceIDFromURL splits ".../<kind>/<digits>" references such as
// origin and location URLs.
func ResourceIDFromURL(ref string) (kind, id string, ok bool) {
	m := reResourceRef.FindStringSubmatch(strings.TrimSpace(ref))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// ResourceURL builds the API link for a resource kind and id.
func ResourceURL(baseURL, kind, id string) string {
	return strings.TrimRight(baseURL, "/") + "/" + kind + "/" + id
}

func validNumericID(id string) bool {
	return reNumericID.MatchString(id)
}
