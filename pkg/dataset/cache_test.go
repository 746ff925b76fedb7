package dataset_test

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/grexie/iris/pkg/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cache *dataset.Cache

func TestMain(m *testing.M) {
	path := fmt.Sprintf("%s/iris-cache.db-test-%d", os.TempDir(), os.Getpid())
	if err := os.RemoveAll(path); err != nil {
		log.Fatalf("failed to remove %s", path)
	} else if c, err := dataset.OpenCache(path); err != nil {
		log.Fatalf("failed to open %s: %v", path, err)
	} else {
		cache = c
	}
	code := m.Run()
	cache.Close()
	os.RemoveAll(path)
	os.Exit(code)
}

func TestCacheRoundTrip(t *testing.T) {
	source := "https://example.com/cache-round-trip.csv"

	_, ok, err := cache.Get(source)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Put(source, []byte("a,b\n1,2\n")))

	body, ok, err := cache.Get(source)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a,b\n1,2\n", string(body))

	require.NoError(t, cache.Delete(source))
	_, ok, err = cache.Get(source)
	require.NoError(t, err)
	assert.False(t, ok)
}
