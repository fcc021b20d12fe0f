package remotetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/growth-tracker/internal/remote"
)

const ownerID = "0b6c7a52-8f8e-4d0e-9d57-3f0a9c1e2b11"

func validGoal() remote.GoalRow {
	return remote.GoalRow{
		ID: "1c2d3e4f-5a6b-4c7d-8e9f-0a1b2c3d4e5f", UserID: ownerID,
		Title: "Recital", Deadline: "2024-12-01", Priority: "medium",
	}
}

func TestStore_RejectsRowsTheClientRejects(t *testing.T) {
	ctx := context.Background()
	s := New()

	bad := validGoal()
	bad.Deadline = "next friday"
	_, err := s.Goals().Create(ctx, bad)
	assert.ErrorIs(t, err, remote.ErrInvalidRequest)

	_, err = s.Profiles().Upsert(ctx, remote.ProfileRow{ID: ownerID, Name: "Me", Email: ptr("me at home")})
	assert.ErrorIs(t, err, remote.ErrInvalidRequest)

	err = s.Import(ctx, ownerID, remote.Bundle{
		Profile: remote.ProfileRow{ID: ownerID, Name: "Me"},
		Goals:   []remote.GoalRow{bad},
	})
	assert.ErrorIs(t, err, remote.ErrInvalidRequest)
	assert.Zero(t, s.Imports)
	assert.Empty(t, s.GoalRows)
	assert.Empty(t, s.ProfileRows)
}

func TestStore_AcceptsValidRows(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Goals().Create(ctx, validGoal())
	require.NoError(t, err)

	updated := validGoal()
	updated.Deadline = "2025-01-15"
	_, err = s.Goals().Update(ctx, updated.ID, updated)
	require.NoError(t, err)

	rows, err := s.Goals().List(ctx, ownerID, remote.ListOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2025-01-15", rows[0].Deadline)
}

func ptr(s string) *string { return &s }
