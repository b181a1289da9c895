package storage

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_PreservesExtension(t *testing.T) {
	t.Parallel()

	assert.True(t, strings.HasSuffix(Key("photo.jpg"), ".jpg"))
	assert.True(t, strings.HasSuffix(Key("photo.JPG"), ".jpg"), "extension is lower-cased")
	assert.True(t, strings.HasSuffix(Key("archive.tar.gz"), ".gz"))
	assert.True(t, strings.HasSuffix(Key("no-extension"), ".bin"))
}

func TestKey_TimestampPrefix(t *testing.T) {
	t.Parallel()

	before := time.Now().UnixMilli()
	key := Key("photo.png")
	after := time.Now().UnixMilli()

	stamp, _, ok := strings.Cut(key, ".")
	require.True(t, ok)
	ms, err := strconv.ParseInt(stamp, 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ms, before)
	assert.LessOrEqual(t, ms, after)
}

func TestURL(t *testing.T) {
	t.Parallel()

	s := &ObjectStore{bucket: "booking-app-media"}
	assert.Equal(t, "https://booking-app-media.s3.amazonaws.com/1.jpg", s.URL("1.jpg"))

	s = &ObjectStore{bucket: "booking-app-media", publicBase: "https://cdn.example.com/"}
	assert.Equal(t, "https://cdn.example.com/1.jpg", s.URL("1.jpg"))
}
