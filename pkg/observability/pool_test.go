package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterPoolExportsStats(t *testing.T) {
	c := NewCollector("movie_catalog")

	stats := PoolStats{AcquiredConns: 3, IdleConns: 2, TotalConns: 5, MaxConns: 10, AcquireCount: 42, AcquireDuration: 1500 * time.Millisecond}
	require.NoError(t, c.RegisterPool("postgres", func() PoolStats { return stats }))

	scrape := func() string {
		rec := httptest.NewRecorder()
		c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		return rec.Body.String()
	}

	body := scrape()
	assert.Contains(t, body, `movie_catalog_db_pool_acquired_connections{pool="postgres"} 3`)
	assert.Contains(t, body, `movie_catalog_db_pool_idle_connections{pool="postgres"} 2`)
	assert.Contains(t, body, `movie_catalog_db_pool_total_connections{pool="postgres"} 5`)
	assert.Contains(t, body, `movie_catalog_db_pool_max_connections{pool="postgres"} 10`)
	assert.Contains(t, body, `movie_catalog_db_pool_acquires_total{pool="postgres"} 42`)
	assert.Contains(t, body, `movie_catalog_db_pool_acquire_duration_seconds_total{pool="postgres"} 1.5`)

	stats.AcquiredConns = 7
	assert.Contains(t, scrape(), `movie_catalog_db_pool_acquired_connections{pool="postgres"} 7`, "stats are read per scrape")
}

func TestRegisterPoolTwiceFails(t *testing.T) {
	c := NewCollector("movie_catalog")
	stats := func() PoolStats { return PoolStats{} }

	require.NoError(t, c.RegisterPool("postgres", stats))
	assert.Error(t, c.RegisterPool("postgres", stats))
}
