package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quakemap/quake-backend-go/internal/models"
)

func TestContainsSimpleBox(t *testing.T) {
	v := models.Viewport{MinLat: 30, MaxLat: 40, MinLon: 130, MaxLon: 145}

	assert.True(t, Contains(v, 35, 139))
	assert.True(t, Contains(v, 30, 130), "south-west corner inclusive")
	assert.True(t, Contains(v, 40, 145), "north-east corner inclusive")
	assert.False(t, Contains(v, 41, 139))
	assert.False(t, Contains(v, 35, 146))
}

func TestContainsAntimeridianWrap(t *testing.T) {
	v := models.Viewport{MinLat: -90, MaxLat: 90, MinLon: 170, MaxLon: -170}

	assert.True(t, Contains(v, 0, 175))
	assert.True(t, Contains(v, 0, -175))
	assert.True(t, Contains(v, 0, 180))
	assert.True(t, Contains(v, 0, -180))
	assert.False(t, Contains(v, 0, 0))
	assert.False(t, Contains(v, 0, 169))
	assert.False(t, Contains(v, 0, -169))
}

func TestContainsFullWorld(t *testing.T) {
	v := models.World()

	assert.True(t, Contains(v, 0, 0))
	assert.True(t, Contains(v, 90, 180))
	assert.True(t, Contains(v, -90, -180))
}

func TestContainsWrapReachingPrimeMeridian(t *testing.T) {
	// Wrapping box from 90E eastwards to 0: covers the Pacific, excludes
	// the Atlantic.
	v := models.Viewport{MinLat: -60, MaxLat: 60, MinLon: 90, MaxLon: 0}

	assert.True(t, Contains(v, 0, 120))
	assert.True(t, Contains(v, 0, -120))
	assert.True(t, Contains(v, 0, 0))
	assert.False(t, Contains(v, 0, 45))
	assert.False(t, Contains(v, 0, -45))
}
