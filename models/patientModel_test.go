package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPrimaryPicksOldestActive(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	remaining := []HolderPatientRelationship{
		{ID: 3, HolderID: "h3", PatientID: "p1", IsActive: true, CreatedAt: base.Add(48 * time.Hour)},
		{ID: 1, HolderID: "h1", PatientID: "p1", IsActive: false, CreatedAt: base},
		{ID: 2, HolderID: "h2", PatientID: "p1", IsActive: true, CreatedAt: base.Add(24 * time.Hour)},
	}

	next := NextPrimary(remaining)
	require.NotNil(t, next)
	assert.Equal(t, uint(2), next.ID, "inactive relationships are skipped even when older")
}

func TestNextPrimaryNoneLeft(t *testing.T) {
	assert.Nil(t, NextPrimary(nil))
	assert.Nil(t, NextPrimary([]HolderPatientRelationship{
		{ID: 1, IsActive: false},
	}))
}
