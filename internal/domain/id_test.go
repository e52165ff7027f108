package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointID_Deterministic(t *testing.T) {
	assert.Equal(t, PointID("alice_cv", 0), PointID("alice_cv", 0))
	assert.Equal(t, PointID("alice_cv", 7), PointID("alice_cv", 7))
}

func TestPointID_DistinctPerChunk(t *testing.T) {
	assert.NotEqual(t, PointID("alice_cv", 0), PointID("alice_cv", 1))
	assert.NotEqual(t, PointID("alice_cv", 0), PointID("bob_cv", 0))
}

func TestPointID_IsValidUUID(t *testing.T) {
	id, err := uuid.Parse(PointID("alice_cv", 3))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), id.Version())
}
