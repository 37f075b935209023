package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/acme-dashboard/internal/models"
)

func TestInvitationRepository_CreateAndFetch(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seedWorkspace(t, db)
	repo := NewInvitationRepository(db, testLogger(t))

	soon := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	later := soon.Add(48 * time.Hour)

	_, err := repo.CreateInvitation(ctx, f.companyID, "soon@example.com", "tok-soon", soon)
	require.NoError(t, err)
	laterID, err := repo.CreateInvitation(ctx, f.companyID, "later@example.com", "tok-later", later)
	require.NoError(t, err)

	invitations, err := repo.FetchInvitations(ctx, f.companyID)
	require.NoError(t, err)
	require.Len(t, invitations, 2)
	assert.Equal(t, laterID, invitations[0].ID)
	assert.Equal(t, "soon@example.com", invitations[1].Email)
	assert.Equal(t, models.InvitationPending, invitations[0].Status)
	assert.True(t, later.Equal(invitations[0].ExpiresAt))

	byToken, found, err := repo.FetchInvitationByToken(ctx, "tok-soon")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "soon@example.com", byToken.Email)

	_, found, err = repo.FetchInvitationByToken(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvitationRepository_DuplicateToken(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seedWorkspace(t, db)
	repo := NewInvitationRepository(db, testLogger(t))

	expires := time.Now().Add(time.Hour)
	_, err := repo.CreateInvitation(ctx, f.companyID, "a@example.com", "same", expires)
	require.NoError(t, err)

	id, err := repo.CreateInvitation(ctx, f.companyID, "b@example.com", "same", expires)
	assert.ErrorIs(t, err, ErrCreateInvitation)
	assert.Empty(t, id)
}
