package catalog

import "regexp"

// YouTube video IDs are always 11 characters.
const videoIDLen = 11

var (
	// urlIDPattern matches the ID segment in the URL shapes handed to the
	// admin form: watch URLs, youtu.be short links, /embed/ player URLs and
	// the older /v/ and /u/<x>/ paths.
	urlIDPattern = regexp.MustCompile(`(?:youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*)`)
	// bareIDPattern matches an already-extracted identifier.
	bareIDPattern = regexp.MustCompile(`^[\w-]{11}$`)
)

// ExtractVideoID pulls the 11-character YouTube identifier out of a URL or
// returns a bare identifier unchanged.  The second result is false when the
// input matches none of the known shapes; callers are expected to keep the
// raw input as the player reference in that case.
func ExtractVideoID(raw string) (string, bool) {
	if bareIDPattern.MatchString(raw) {
		return raw, true
	}
	m := urlIDPattern.FindStringSubmatch(raw)
	if m == nil || len(m[1]) != videoIDLen {
		return "", false
	}
	return m[1], true
}

// ThumbnailURL returns the standard thumbnail location for an extracted
// video identifier.
func ThumbnailURL(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/maxresdefault.jpg"
}
