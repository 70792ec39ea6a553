package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subtrack/subtrack/internal/utils"
	"github.com/subtrack/subtrack/pkg/category"
)

func setupServiceTest(t *testing.T) (*ServiceImpl, context.Context, func()) {
	repo := NewStubRepository()
	categoryRepo := category.NewStubRepository()
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)}
	service := NewService(repo, category.NewService(categoryRepo), clock)
	ctx := context.Background()

	return service, ctx, func() {
		t.Log("Teardown after test")
		repo.Cleanup()
		categoryRepo.Cleanup()
	}
}

func ptr[T any](v T) *T {
	return &v
}

func validInput() Input {
	return Input{
		Name:      ptr("Netflix"),
		Price:     ptr(15.99),
		Frequency: ptr("Monthly"),
		Category:  ptr("Entertainment"),
	}
}

func TestCreateSubscription(t *testing.T) {

	t.Run("valid input creates subscription with defaults", func(t *testing.T) {
		service, ctx, teardown := setupServiceTest(t)
		defer teardown()

		created, err := service.Create(ctx, validInput())
		require.NoError(t, err)

		assert.Equal(t, 1, created.ID)
		assert.Equal(t, "Netflix", created.Name)
		assert.Equal(t, 15.99, created.Price)
		assert.Equal(t, FrequencyMonthly, created.Frequency)
		assert.Equal(t, StatusActive, created.Status, "status defaults to Active")
		assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), created.StartDate,
			"start date defaults to the clock's current date")
		assert.Equal(t, "Entertainment", created.CategoryName)
	})

	t.Run("explicit status and start date are honored", func(t *testing.T) {
		service, ctx, teardown := setupServiceTest(t)
		defer teardown()

		input := validInput()
		input.Status = ptr("Paused")
		input.StartDate = ptr("2024-11-01")

		created, err := service.Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, StatusPaused, created.Status)
		assert.Equal(t, time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), created.StartDate)
	})

	t.Run("missing required fields are named in the error", func(t *testing.T) {
		service, ctx, teardown := setupServiceTest(t)
		defer teardown()

		_, err := service.Create(ctx, Input{Name: ptr("Spotify")})

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Reason, "price")
		assert.Contains(t, vErr.Reason, "frequency")
		assert.Contains(t, vErr.Reason, "category")
		assert.NotContains(t, vErr.Reason, "name")
	})

	t.Run("duplicate name differing only in case is a conflict", func(t *testing.T) {
		service, ctx, teardown := setupServiceTest(t)
		defer teardown()

		_, err := service.Create(ctx, validInput())
		require.NoError(t, err)

		input := validInput()
		input.Name = ptr("NETFLIX")
		_, err = service.Create(ctx, input)
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		service, ctx, teardown := setupServiceTest(t)
		defer teardown()

		input := validInput()
		input.Price = ptr(-1.0)
		_, err := service.Create(ctx, input)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Reason, "Price")
	})

	t.Run("invalid frequency error enumerates allowed values", func(t *testing.T) {
		service, ctx, teardown := setupServiceTest(t)
		defer teardown()

		input := validInput()
		input.Frequency = ptr("Daily")
		_, err := service.Create(ctx, input)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Reason, "Weekly, Monthly, Yearly")
	})

	t.Run("invalid status error enumerates allowed values", func(t *testing.T) {
		service, ctx, teardown := setupServiceTest(t)
		defer teardown()

		input := validInput()
		input.Status = ptr("Expired")
		_, err := service.Create(ctx, input)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Reason, "Active, Paused, Cancelled")
	})

	t.Run("invalid start date format is rejected", func(t *testing.T) {
		service, ctx, teardown := setupServiceTest(t)
		defer teardown()

		input := validInput()
		input.StartDate = ptr("01/11/2024")
		_, err := service.Create(ctx, input)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Reason, "YYYY-MM-DD")
	})

	t.Run("category input is resolved case-insensitively and canonicalized", func(t *testing.T) {
		service, ctx, teardown := setupServiceTest(t)
		defer teardown()

		input := validInput()
		input.Category = ptr("streaming SERVICES")
		first, err := service.Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "Streaming services", first.CategoryName)

		second := validInput()
		second.Name = ptr("Disney+")
		second.Category = ptr("STREAMING services")
		created, err := service.Create(ctx, second)
		require.NoError(t, err)
		assert.Equal(t, first.CategoryID, created.CategoryID, "resolution must not create a duplicate category")
	})
}

func TestUpdateSubscription(t *testing.T) {

	t.Run("updating only price leaves other fields unchanged", func(t *testing.T) {
		service, ctx, teardown := setupServiceTest(t)
		defer teardown()

		created, err := service.Create(ctx, validInput())
		require.NoError(t, err)

		updated, err := service.Update(ctx, created.ID, Input{Price: ptr(19.99)})
		require.NoError(t, err)

		assert.Equal(t, 19.99, updated.Price)
		assert.Equal(t, created.Name, updated.Name)
		assert.Equal(t, created.Frequency, updated.Frequency)
		assert.Equal(t, created.Status, updated.Status)
		assert.Equal(t, created.StartDate, updated.StartDate)
		assert.Equal(t, created.CategoryID, updated.CategoryID)
	})

	t.Run("renaming to another subscription's name is a conflict", func(t *testing.T) {
		service, ctx, teardown := setupServiceTest(t)
		defer teardown()

		_, err := service.Create(ctx, validInput())
		require.NoError(t, err)

		other := validInput()
		other.Name = ptr("Spotify")
		created, err := service.Create(ctx, other)
		require.NoError(t, err)

		_, err = service.Update(ctx, created.ID, Input{Name: ptr("netflix")})
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("changing case of own name is allowed", func(t *testing.T) {
		service, ctx, teardown := setupServiceTest(t)
		defer teardown()

		created, err := service.Create(ctx, validInput())
		require.NoError(t, err)

		updated, err := service.Update(ctx, created.ID, Input{Name: ptr("NETFLIX")})
		require.NoError(t, err)
		assert.Equal(t, "NETFLIX", updated.Name)
	})

	t.Run("changing category re-resolves and may create a new one", func(t *testing.T) {
		service, ctx, teardown := setupServiceTest(t)
		defer teardown()

		created, err := service.Create(ctx, validInput())
		require.NoError(t, err)

		updated, err := service.Update(ctx, created.ID, Input{Category: ptr("music")})
		require.NoError(t, err)
		assert.Equal(t, "Music", updated.CategoryName)
		assert.NotEqual(t, created.CategoryID, updated.CategoryID)
	})

	t.Run("invalid field on update rejects before applying", func(t *testing.T) {
		service, ctx, teardown := setupServiceTest(t)
		defer teardown()

		created, err := service.Create(ctx, validInput())
		require.NoError(t, err)

		_, err = service.Update(ctx, created.ID, Input{Frequency: ptr("Fortnightly")})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)

		unchanged, err := service.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, FrequencyMonthly, unchanged.Frequency)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		service, ctx, teardown := setupServiceTest(t)
		defer teardown()

		_, err := service.Update(ctx, 42, Input{Price: ptr(5.0)})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteSubscription(t *testing.T) {

	t.Run("delete returns the removed record", func(t *testing.T) {
		service, ctx, teardown := setupServiceTest(t)
		defer teardown()

		created, err := service.Create(ctx, validInput())
		require.NoError(t, err)

		deleted, err := service.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Name, deleted.Name)
		assert.Equal(t, created.Price, deleted.Price)

		_, err = service.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("deleting an unknown id is not found", func(t *testing.T) {
		service, ctx, teardown := setupServiceTest(t)
		defer teardown()

		_, err := service.Delete(ctx, 42)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListSubscriptions(t *testing.T) {

	t.Run("filters combine as logical AND, case-insensitively", func(t *testing.T) {
		service, ctx, teardown := setupServiceTest(t)
		defer teardown()

		first := validInput()
		_, err := service.Create(ctx, first)
		require.NoError(t, err)

		paused := validInput()
		paused.Name = ptr("HBO Max")
		paused.Status = ptr("Paused")
		_, err = service.Create(ctx, paused)
		require.NoError(t, err)

		music := validInput()
		music.Name = ptr("Spotify")
		music.Category = ptr("Music")
		_, err = service.Create(ctx, music)
		require.NoError(t, err)

		subs, err := service.List(ctx, "ENTERTAINMENT", "active")
		require.NoError(t, err)
		require.Len(t, subs, 1)
		assert.Equal(t, "Netflix", subs[0].Name)
	})

	t.Run("zero matches is a successful empty result", func(t *testing.T) {
		service, ctx, teardown := setupServiceTest(t)
		defer teardown()

		subs, err := service.List(ctx, "Gaming", "")
		require.NoError(t, err)
		assert.Empty(t, subs)
	})
}
