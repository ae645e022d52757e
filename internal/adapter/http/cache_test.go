package http

import (
	"testing"

	"github.com/orbitalgrid/link-impact-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", domain.WeatherImpactAssessment{StationID: "a"})
	c.put("b", domain.WeatherImpactAssessment{StationID: "b"})

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "a", result.StationID)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", domain.WeatherImpactAssessment{StationID: "a"})
	c.put("b", domain.WeatherImpactAssessment{StationID: "b"})
	c.put("c", domain.WeatherImpactAssessment{StationID: "c"}) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	result, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, "b", result.StationID)

	result, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, "c", result.StationID)
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", domain.WeatherImpactAssessment{StationID: "a"})
	c.put("b", domain.WeatherImpactAssessment{StationID: "b"})

	// Access "a" to promote it
	c.get("a")

	// Insert "c", which should evict "b" (LRU), not "a"
	c.put("c", domain.WeatherImpactAssessment{StationID: "c"})

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", domain.WeatherImpactAssessment{StationID: "a1"})
	c.put("a", domain.WeatherImpactAssessment{StationID: "a2"})

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "a2", result.StationID)
}
