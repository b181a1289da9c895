package handler

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dumichanda/booking-api/internal/auth"
	"github.com/dumichanda/booking-api/internal/middleware"
)

// claimFrom extracts the verified identity claim placed in context by the
// cookie auth middleware.
func claimFrom(c echo.Context) (auth.Claim, error) {
	cl, ok := middleware.ClaimFrom(c)
	if !ok {
		return auth.Claim{}, errors.New("no claim in context")
	}
	return cl, nil
}

// defaultPhoto is served in place of an empty photo reference.
const defaultPhoto = "default.jpg"

// resolvePhotoURL turns a stored photo reference into a renderable URL.
// Full URLs pass through untouched; bare filenames produced by the media
// ingest resolve against the public /uploads prefix, and empty references
// fall back to the default image.
func resolvePhotoURL(publicBase, ref string) string {
	if ref == "" {
		ref = defaultPhoto
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" && u.Host != "" {
		return ref
	}
	return strings.TrimRight(publicBase, "/") + "/uploads/" + ref
}

// resolvePhotoURLs maps resolvePhotoURL over a photo list, preserving order.
func resolvePhotoURLs(publicBase string, refs []string) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = resolvePhotoURL(publicBase, r)
	}
	return out
}

// parseDate accepts the bare date form the client sends ("2006-01-02") and
// falls back to RFC3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
