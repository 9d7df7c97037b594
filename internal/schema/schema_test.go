package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenny-yujl/marketingTrain/internal/models"
)

func campaignBody(overrides map[string]any) []byte {
	body := map[string]any{
		"name":               "t1",
		"marketingGoal":      "live_commerce",
		"optimizationTarget": "conversions",
		"priority":           "balanced",
		"promotionScenario":  "live_room",
		"placements":         []string{"douyin_feed", "search"},
		"deviceTypes":        []string{"ios", "android"},
		"ageRange":           "18-30",
		"gender":             "all",
		"location":           "nationwide",
		"interests":          []string{"beauty"},
		"behaviors":          []string{"purchased_30d"},
		"campaignType":       "standard",
		"totalBudget":        1000,
		"dailyBudget":        100,
		"biddingStrategy":    "auto",
		"clickBid":           "0.80",
		"weeklySchedule":     []bool{true, true, true, true, true, true, true},
	}
	for k, v := range overrides {
		if v == nil {
			delete(body, k)
			continue
		}
		body[k] = v
	}
	b, _ := json.Marshal(body)
	return b
}

func asValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	return verr
}

func TestDecodeCampaignDefaults(t *testing.T) {
	draft, err := DecodeCampaign(campaignBody(map[string]any{
		"placements": nil,
		"interests":  nil,
	}))
	require.NoError(t, err)

	assert.Equal(t, models.CampaignStatusDraft, draft.Status)
	assert.NotNil(t, draft.Placements)
	assert.Empty(t, draft.Placements)
	assert.Empty(t, draft.Interests)
	assert.Equal(t, []string{"ios", "android"}, draft.DeviceTypes)
	assert.Nil(t, draft.ProductID)
	assert.False(t, draft.HasFullReduction)
	assert.Equal(t, 0, draft.DiscountPercentage)
}

func TestDecodeCampaignEncodedArraysMatchNative(t *testing.T) {
	native, err := DecodeCampaign(campaignBody(nil))
	require.NoError(t, err)

	encoded, err := DecodeCampaign(campaignBody(map[string]any{
		"placements":     `["douyin_feed","search"]`,
		"deviceTypes":    `["ios","android"]`,
		"interests":      `["beauty"]`,
		"behaviors":      `["purchased_30d"]`,
		"weeklySchedule": `[true,true,true,true,true,true,true]`,
	}))
	require.NoError(t, err)

	assert.Equal(t, native.Placements, encoded.Placements)
	assert.Equal(t, native.DeviceTypes, encoded.DeviceTypes)
	assert.Equal(t, native.Interests, encoded.Interests)
	assert.Equal(t, native.Behaviors, encoded.Behaviors)
	assert.Equal(t, native.WeeklySchedule, encoded.WeeklySchedule)
}

func TestDecodeCampaignEmptyStringIsEmptyList(t *testing.T) {
	draft, err := DecodeCampaign(campaignBody(map[string]any{"behaviors": ""}))
	require.NoError(t, err)
	assert.Equal(t, []string{}, draft.Behaviors)
}

func TestDecodeCampaignCoercesScalars(t *testing.T) {
	draft, err := DecodeCampaign(campaignBody(map[string]any{
		"totalBudget":            1000.5,
		"dailyBudget":            "100",
		"clickBid":               "0.456",
		"originalPrice":          "399",
		"currentPrice":           299,
		"hasTimeLimitedDiscount": 1,
		"hasFullReduction":       "false",
		"discountPercentage":     "20",
		"productId":              "2",
		"weeklySchedule":         []int{1, 1, 1, 1, 1, 0, 0},
		"startTime":              "2025-06-01T08:30",
		"endTime":                "2025-06-30T23:59:59Z",
	}))
	require.NoError(t, err)

	assert.Equal(t, "1000.50", draft.TotalBudget.String())
	assert.Equal(t, "100.00", draft.DailyBudget.String())
	assert.Equal(t, "0.46", draft.ClickBid.String())
	require.NotNil(t, draft.OriginalPrice)
	assert.Equal(t, "399.00", draft.OriginalPrice.String())
	assert.Equal(t, "299.00", draft.CurrentPrice.String())
	assert.True(t, draft.HasTimeLimitedDiscount)
	assert.False(t, draft.HasFullReduction)
	assert.Equal(t, 20, draft.DiscountPercentage)
	require.NotNil(t, draft.ProductID)
	assert.Equal(t, int64(2), *draft.ProductID)
	assert.Equal(t, []bool{true, true, true, true, true, false, false}, draft.WeeklySchedule)
	require.NotNil(t, draft.StartTime)
	assert.Equal(t, time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC), *draft.StartTime)
	assert.Equal(t, time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC), *draft.EndTime)
}

func TestDecodeNameHasNoLengthCap(t *testing.T) {
	long := strings.Repeat("直播", 400)

	draft, err := DecodeCampaign(campaignBody(map[string]any{"name": long}))
	require.NoError(t, err)
	assert.Equal(t, long, draft.Name)

	p, err := DecodeProduct([]byte(`{"name":"` + long + `","description":"d","image":"https://example.com/a.jpg","originalPrice":1,"currentPrice":1,"category":"c"}`))
	require.NoError(t, err)
	assert.Equal(t, long, p.Name)
}

func TestDecodeCampaignMissingRequiredField(t *testing.T) {
	_, err := DecodeCampaign(campaignBody(map[string]any{"marketingGoal": nil}))
	verr := asValidationError(t, err)

	require.Len(t, verr.Errors, 1)
	fe := verr.Errors[0]
	assert.Equal(t, "marketingGoal", fe.Path)
	assert.Equal(t, "Required", fe.Message)
	assert.Equal(t, "undefined", fe.Received)
	assert.Equal(t, "string", fe.Expected)
}

func TestDecodeCampaignCollectsAllErrors(t *testing.T) {
	_, err := DecodeCampaign(campaignBody(map[string]any{
		"name":               nil,
		"gender":             42,
		"placements":         []any{"feed", 7},
		"totalBudget":        "abc",
		"discountPercentage": 150,
		"weeklySchedule":     []bool{true, false, true},
		"startTime":          "next tuesday",
	}))
	verr := asValidationError(t, err)

	assert.ElementsMatch(t, []string{
		"name", "gender", "placements.1", "totalBudget",
		"discountPercentage", "weeklySchedule", "startTime",
	}, verr.Paths())
}

func TestDecodeCampaignRejectsNegativeMoney(t *testing.T) {
	_, err := DecodeCampaign(campaignBody(map[string]any{"dailyBudget": -1}))
	verr := asValidationError(t, err)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, "dailyBudget", verr.Errors[0].Path)
}

func TestDecodeCampaignPatchRejectsHugeExponentQuickly(t *testing.T) {
	for _, body := range []string{
		`{"totalBudget":"1e20000000"}`,
		`{"totalBudget":1e20000000}`,
		`{"clickBid":"-1e20000000"}`,
	} {
		start := time.Now()
		_, err := DecodeCampaignPatch([]byte(body))
		elapsed := time.Since(start)

		verr := asValidationError(t, err)
		require.Len(t, verr.Errors, 1, body)
		assert.Less(t, elapsed, 100*time.Millisecond, body)
	}

	_, err := DecodeCampaignPatch([]byte(`{"totalBudget":"1e20000000"}`))
	assert.Contains(t, err.Error(), "less than or equal to 99999999.99")
}

func TestDecodeCampaignPatchTinyExponentRoundsToZero(t *testing.T) {
	start := time.Now()
	patch, err := DecodeCampaignPatch([]byte(`{"dailyBudget":"1e-20000000","totalBudget":"0e-20000000","clickBid":"1e2"}`))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	require.NoError(t, err)
	require.NotNil(t, patch.DailyBudget)
	assert.Equal(t, "0.00", patch.DailyBudget.String())
	assert.Equal(t, "0.00", patch.TotalBudget.String())
	assert.Equal(t, "100.00", patch.ClickBid.String())
}

func TestDecodeCampaignRejectsUndecodableEncodedArray(t *testing.T) {
	_, err := DecodeCampaign(campaignBody(map[string]any{"interests": "beauty, sports"}))
	verr := asValidationError(t, err)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, "interests", verr.Errors[0].Path)
	assert.Equal(t, "string", verr.Errors[0].Received)
	assert.Equal(t, "array", verr.Errors[0].Expected)
}

func TestDecodeCampaignPatchOnlyPresentFields(t *testing.T) {
	patch, err := DecodeCampaignPatch([]byte(`{"status":"submitted","productId":null,"interests":"[\"travel\"]"}`))
	require.NoError(t, err)

	assert.True(t, patch.SubmitsCampaign())
	assert.True(t, patch.ProductID.Set)
	assert.Nil(t, patch.ProductID.Value)
	require.NotNil(t, patch.Interests)
	assert.Equal(t, []string{"travel"}, *patch.Interests)
	assert.Nil(t, patch.Name)
	assert.Nil(t, patch.TotalBudget)
	assert.False(t, patch.StartTime.Set)
}

func TestDecodeCampaignPatchValidatesPresentFields(t *testing.T) {
	_, err := DecodeCampaignPatch([]byte(`{"clickBid":true}`))
	verr := asValidationError(t, err)
	assert.Equal(t, []string{"clickBid"}, verr.Paths())
	assert.Equal(t, "boolean", verr.Errors[0].Received)
}

func TestDecodeRejectsNonObjects(t *testing.T) {
	_, err := DecodeCampaign([]byte(`[1,2]`))
	verr := asValidationError(t, err)
	assert.Equal(t, "object", verr.Errors[0].Expected)

	_, err = DecodeCampaign([]byte(`{"name":`))
	assert.ErrorIs(t, err, ErrInvalidJSON)

	_, err = DecodeCampaignPatch(nil)
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestDecodeProduct(t *testing.T) {
	p, err := DecodeProduct([]byte(`{"name":"智能运动手表","description":"健康监测","image":"https://example.com/w.jpg","originalPrice":1599,"currentPrice":"1299.00","category":"数码产品"}`))
	require.NoError(t, err)
	assert.Equal(t, "1599.00", p.OriginalPrice.String())
	assert.Equal(t, "1299.00", p.CurrentPrice.String())

	_, err = DecodeProduct([]byte(`{"name":"x"}`))
	verr := asValidationError(t, err)
	assert.ElementsMatch(t, []string{"description", "image", "originalPrice", "currentPrice", "category"}, verr.Paths())
}
