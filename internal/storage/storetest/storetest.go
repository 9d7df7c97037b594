// Package storetest is a conformance suite run against every storage backend.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenny-yujl/marketingTrain/internal/interfaces"
	"github.com/jenny-yujl/marketingTrain/internal/models"
)

// Factory returns an empty store (no products) for one subtest.
type Factory func(t *testing.T) interfaces.Storage

// SampleDraft is a complete wizard submission.
func SampleDraft() *models.CampaignDraft {
	productID := int64(1)
	original := models.MustMoney("399.00")
	current := models.MustMoney("299.00")
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	return &models.CampaignDraft{
		Name:                   "t1",
		MarketingGoal:          "live_commerce",
		OptimizationTarget:     "conversions",
		Priority:               "balanced",
		PromotionScenario:      "live_room",
		Placements:             []string{"douyin_feed", "search", "直播间"},
		DeviceTypes:            []string{"ios", "android"},
		ProductID:              &productID,
		OriginalPrice:          &original,
		CurrentPrice:           &current,
		HasTimeLimitedDiscount: true,
		DiscountPercentage:     25,
		AgeRange:               "18-30",
		Gender:                 "female",
		Location:               "上海",
		Interests:              []string{"beauty", "fashion"},
		Behaviors:              []string{},
		CampaignType:           "standard",
		StartTime:              &start,
		TotalBudget:            models.MustMoney("1000.50"),
		DailyBudget:            models.MustMoney("100.00"),
		BiddingStrategy:        "auto",
		ClickBid:               models.MustMoney("0.80"),
		WeeklySchedule:         []bool{true, false, true, true, false, true, false},
	}
}

// sameInstant compares times by instant, ignoring location and monotonic
// readings that differ between drivers.
var sameInstant = cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })

// Run executes the suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("CreateAssignsIDAndDefaults", func(t *testing.T) {
		s := newStore(t)
		first, err := s.CreateCampaign(ctx, SampleDraft())
		require.NoError(t, err)
		second, err := s.CreateCampaign(ctx, &models.CampaignDraft{Name: "bare"})
		require.NoError(t, err)

		assert.Equal(t, int64(1), first.ID)
		assert.Greater(t, second.ID, first.ID)
		assert.Equal(t, models.CampaignStatusDraft, first.Status)
		assert.Equal(t, []string{}, second.Placements)
		assert.Equal(t, []string{}, second.Interests)
		assert.Equal(t, []bool{}, second.WeeklySchedule)
		assert.False(t, first.CreatedAt.IsZero())
		assert.True(t, first.CreatedAt.Equal(first.UpdatedAt))
	})

	t.Run("CreateThenGetRoundTrips", func(t *testing.T) {
		s := newStore(t)
		draft := SampleDraft()
		created, err := s.CreateCampaign(ctx, draft)
		require.NoError(t, err)

		got, err := s.GetCampaign(ctx, created.ID)
		require.NoError(t, err)

		want := *draft
		want.Status = models.CampaignStatusDraft
		if diff := cmp.Diff(want, got.CampaignDraft, sameInstant); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, "1000.50", got.TotalBudget.String())
		assert.Equal(t, []bool{true, false, true, true, false, true, false}, got.WeeklySchedule)
	})

	t.Run("GetUnknownIsNotFound", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetCampaign(ctx, 404)
		assert.ErrorIs(t, err, interfaces.ErrNotFound)
	})

	t.Run("UpdateMergesAndRefreshesUpdatedAt", func(t *testing.T) {
		s := newStore(t)
		created, err := s.CreateCampaign(ctx, SampleDraft())
		require.NoError(t, err)

		name := "renamed"
		status := models.CampaignStatusSubmitted
		interests := []string{"travel"}
		patch := &models.CampaignPatch{
			Name:          &name,
			Status:        &status,
			Interests:     &interests,
			ProductID:     models.Nullable[int64]{Set: true},
			OriginalPrice: models.NullableOf(models.MustMoney("350")),
		}
		time.Sleep(2 * time.Millisecond)
		updated, err := s.UpdateCampaign(ctx, created.ID, patch)
		require.NoError(t, err)

		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "renamed", updated.Name)
		assert.Equal(t, models.CampaignStatusSubmitted, updated.Status)
		assert.Equal(t, []string{"travel"}, updated.Interests)
		assert.Nil(t, updated.ProductID)
		require.NotNil(t, updated.OriginalPrice)
		assert.Equal(t, "350.00", updated.OriginalPrice.String())
		// untouched fields survive
		assert.Equal(t, created.Placements, updated.Placements)
		assert.Equal(t, "1000.50", updated.TotalBudget.String())
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

		got, err := s.GetCampaign(ctx, created.ID)
		require.NoError(t, err)
		if diff := cmp.Diff(updated, got, sameInstant); diff != "" {
			t.Fatalf("stored record differs from update result (-want +got):\n%s", diff)
		}
	})

	t.Run("UpdateUnknownDoesNotCreate", func(t *testing.T) {
		s := newStore(t)
		name := "ghost"
		_, err := s.UpdateCampaign(ctx, 99, &models.CampaignPatch{Name: &name})
		assert.ErrorIs(t, err, interfaces.ErrNotFound)

		list, err := s.ListCampaigns(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		s := newStore(t)
		created, err := s.CreateCampaign(ctx, SampleDraft())
		require.NoError(t, err)

		require.NoError(t, s.DeleteCampaign(ctx, created.ID))
		require.NoError(t, s.DeleteCampaign(ctx, created.ID))
		require.NoError(t, s.DeleteCampaign(ctx, 12345))

		_, err = s.GetCampaign(ctx, created.ID)
		assert.ErrorIs(t, err, interfaces.ErrNotFound)
	})

	t.Run("ListReturnsAll", func(t *testing.T) {
		s := newStore(t)
		for i := 0; i < 3; i++ {
			_, err := s.CreateCampaign(ctx, SampleDraft())
			require.NoError(t, err)
		}
		list, err := s.ListCampaigns(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		for _, c := range list {
			assert.Equal(t, SampleDraft().Placements, c.Placements)
		}
	})

	t.Run("Products", func(t *testing.T) {
		s := newStore(t)
		draft := &models.ProductDraft{
			Name:          "无线蓝牙耳机",
			Description:   "降噪功能，超长续航",
			Image:         "https://example.com/earbuds.jpg",
			OriginalPrice: models.MustMoney("799"),
			CurrentPrice:  models.MustMoney("599.00"),
			Category:      "数码产品",
		}
		created, err := s.CreateProduct(ctx, draft)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)

		got, err := s.GetProduct(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "799.00", got.OriginalPrice.String())
		assert.Equal(t, "599.00", got.CurrentPrice.String())
		assert.Equal(t, draft.Name, got.Name)

		list, err := s.ListProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		_, err = s.GetProduct(ctx, created.ID+100)
		assert.ErrorIs(t, err, interfaces.ErrNotFound)
	})

	t.Run("Ping", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Ping(ctx))
		assert.NotEmpty(t, s.Backend())
	})
}
