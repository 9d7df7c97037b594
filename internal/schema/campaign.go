package schema

import "github.com/jenny-yujl/marketingTrain/internal/models"

// DecodeCampaign validates a create payload and returns it in canonical
// form: list fields never nil, status defaulted, money rounded to cents.
func DecodeCampaign(body []byte) (*models.CampaignDraft, error) {
	d, err := newDecoder(body, false)
	if err != nil {
		return nil, err
	}
	patch := readCampaign(d)
	if err := d.err(); err != nil {
		return nil, err
	}

	var c models.Campaign
	patch.ApplyTo(&c)
	c.CampaignDraft.Normalize()
	return &c.CampaignDraft, nil
}

// DecodeCampaignPatch validates a partial update. Only fields present in the
// body are checked and set.
func DecodeCampaignPatch(body []byte) (*models.CampaignPatch, error) {
	d, err := newDecoder(body, true)
	if err != nil {
		return nil, err
	}
	patch := readCampaign(d)
	if err := d.err(); err != nil {
		return nil, err
	}
	return patch, nil
}

func readCampaign(d *decoder) *models.CampaignPatch {
	p := &models.CampaignPatch{
		Name:               d.str("name", true),
		MarketingGoal:      d.str("marketingGoal", true),
		OptimizationTarget: d.str("optimizationTarget", true),
		Priority:           d.str("priority", true),
		PromotionScenario:  d.str("promotionScenario", true),
		Placements:         d.strList("placements"),
		DeviceTypes:        d.strList("deviceTypes"),

		ProductID:              d.nullableID("productId"),
		OriginalPrice:          d.nullableMoney("originalPrice"),
		CurrentPrice:           d.nullableMoney("currentPrice"),
		HasTimeLimitedDiscount: d.flag("hasTimeLimitedDiscount"),
		DiscountPercentage:     d.integer("discountPercentage"),
		HasFullReduction:       d.flag("hasFullReduction"),
		FullReductionThreshold: d.nullableMoney("fullReductionThreshold"),
		FullReductionAmount:    d.nullableMoney("fullReductionAmount"),

		AgeRange:  d.str("ageRange", true),
		Gender:    d.str("gender", true),
		Location:  d.str("location", true),
		Interests: d.strList("interests"),
		Behaviors: d.strList("behaviors"),

		CampaignType:    d.str("campaignType", true),
		StartTime:       d.nullableTime("startTime"),
		EndTime:         d.nullableTime("endTime"),
		TotalBudget:     d.money("totalBudget", true),
		DailyBudget:     d.money("dailyBudget", true),
		BiddingStrategy: d.str("biddingStrategy", true),
		ClickBid:        d.money("clickBid", true),
		WeeklySchedule:  d.boolList("weeklySchedule"),
	}
	if s := d.str("status", false); s != nil {
		status := models.CampaignStatus(*s)
		p.Status = &status
	}

	if p.DiscountPercentage != nil {
		d.check("discountPercentage", *p.DiscountPercentage, "gte=0,lte=100")
	}
	if p.WeeklySchedule != nil && len(*p.WeeklySchedule) > 0 {
		d.check("weeklySchedule", *p.WeeklySchedule, "len=7")
	}
	return p
}
