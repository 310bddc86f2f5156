package repository

import (
	"context"
	"testing"

	"casino/models"
	"casino/repository/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinRequestRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accounts := NewAccountRepository(testDB.DB)
	repo := NewCoinRequestRepository(testDB.DB)
	ctx := context.Background()

	account, err := accounts.Create(ctx, "alice", 0)
	require.NoError(t, err)

	t.Run("not found returns nil", func(t *testing.T) {
		request, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, request)
	})

	t.Run("create and retrieve", func(t *testing.T) {
		request := testutil.CreateTestCoinRequest(account.ID, 500)
		require.NoError(t, repo.Create(ctx, request))
		assert.False(t, request.CreatedAt.IsZero())

		got, err := repo.GetByID(ctx, request.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, models.CoinRequestPending, got.Status)
		assert.Nil(t, got.ReviewedBy)
		assert.Nil(t, got.ReviewedAt)
	})
}

func TestCoinRequestRepository_HasPending(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accounts := NewAccountRepository(testDB.DB)
	repo := NewCoinRequestRepository(testDB.DB)
	ctx := context.Background()

	account, err := accounts.Create(ctx, "bob", 0)
	require.NoError(t, err)

	pending, err := repo.HasPending(ctx, account.ID)
	require.NoError(t, err)
	assert.False(t, pending)

	request := testutil.CreateTestCoinRequest(account.ID, 500)
	require.NoError(t, repo.Create(ctx, request))

	pending, err = repo.HasPending(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, pending)

	// A reviewed request no longer counts as pending
	_, err = repo.MarkReviewed(ctx, request.ID, models.CoinRequestRejected, "admin")
	require.NoError(t, err)

	pending, err = repo.HasPending(ctx, account.ID)
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestCoinRequestRepository_MarkReviewed(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accounts := NewAccountRepository(testDB.DB)
	repo := NewCoinRequestRepository(testDB.DB)
	ctx := context.Background()

	account, err := accounts.Create(ctx, "carol", 0)
	require.NoError(t, err)

	t.Run("approves a pending request", func(t *testing.T) {
		request := testutil.CreateTestCoinRequest(account.ID, 500)
		require.NoError(t, repo.Create(ctx, request))

		reviewed, err := repo.MarkReviewed(ctx, request.ID, models.CoinRequestApproved, "admin")
		require.NoError(t, err)
		require.NotNil(t, reviewed)
		assert.Equal(t, models.CoinRequestApproved, reviewed.Status)
		require.NotNil(t, reviewed.ReviewedBy)
		assert.Equal(t, "admin", *reviewed.ReviewedBy)
		assert.NotNil(t, reviewed.ReviewedAt)
	})

	t.Run("second review matches nothing", func(t *testing.T) {
		request := testutil.CreateTestCoinRequest(account.ID, 500)
		require.NoError(t, repo.Create(ctx, request))

		first, err := repo.MarkReviewed(ctx, request.ID, models.CoinRequestApproved, "admin")
		require.NoError(t, err)
		require.NotNil(t, first)

		second, err := repo.MarkReviewed(ctx, request.ID, models.CoinRequestRejected, "other")
		require.NoError(t, err)
		assert.Nil(t, second)

		// The first review stands
		got, err := repo.GetByID(ctx, request.ID)
		require.NoError(t, err)
		assert.Equal(t, models.CoinRequestApproved, got.Status)
	})

	t.Run("rejects a transition back to pending", func(t *testing.T) {
		request := testutil.CreateTestCoinRequest(account.ID, 500)
		require.NoError(t, repo.Create(ctx, request))

		_, err := repo.MarkReviewed(ctx, request.ID, models.CoinRequestPending, "admin")
		assert.Error(t, err)
	})
}

func TestCoinRequestRepository_Lists(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accounts := NewAccountRepository(testDB.DB)
	repo := NewCoinRequestRepository(testDB.DB)
	ctx := context.Background()

	alice, err := accounts.Create(ctx, "alice", 0)
	require.NoError(t, err)
	bob, err := accounts.Create(ctx, "bob", 0)
	require.NoError(t, err)

	first := testutil.CreateTestCoinRequest(alice.ID, 100)
	require.NoError(t, repo.Create(ctx, first))
	second := testutil.CreateTestCoinRequest(bob.ID, 200)
	require.NoError(t, repo.Create(ctx, second))

	_, err = repo.MarkReviewed(ctx, first.ID, models.CoinRequestApproved, "admin")
	require.NoError(t, err)

	third := testutil.CreateTestCoinRequest(alice.ID, 300)
	require.NoError(t, repo.Create(ctx, third))

	t.Run("by account includes reviewed requests", func(t *testing.T) {
		requests, err := repo.ListByAccount(ctx, alice.ID)
		require.NoError(t, err)
		assert.Len(t, requests, 2)
	})

	t.Run("pending only, oldest first", func(t *testing.T) {
		requests, err := repo.ListPending(ctx)
		require.NoError(t, err)
		require.Len(t, requests, 2)
		assert.Equal(t, second.ID, requests[0].ID)
		assert.Equal(t, third.ID, requests[1].ID)
	})
}
