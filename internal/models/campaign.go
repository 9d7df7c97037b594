// internal/models/campaign.go
package models

import "time"

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusSubmitted CampaignStatus = "submitted"
)

// CampaignDraft holds every wizard-editable field of a campaign. It is the
// normalized create payload and the body of a stored Campaign.
type CampaignDraft struct {
	Name string `json:"name"`

	// Step 1: marketing goal
	MarketingGoal      string `json:"marketingGoal"`
	OptimizationTarget string `json:"optimizationTarget"`
	Priority           string `json:"priority"`

	// Step 2: promotion scenario
	PromotionScenario string   `json:"promotionScenario"`
	Placements        []string `json:"placements"`
	DeviceTypes       []string `json:"deviceTypes"`

	// Step 3: product settings
	ProductID              *int64 `json:"productId"`
	OriginalPrice          *Money `json:"originalPrice"`
	CurrentPrice           *Money `json:"currentPrice"`
	HasTimeLimitedDiscount bool   `json:"hasTimeLimitedDiscount"`
	DiscountPercentage     int    `json:"discountPercentage"`
	HasFullReduction       bool   `json:"hasFullReduction"`
	FullReductionThreshold *Money `json:"fullReductionThreshold"`
	FullReductionAmount    *Money `json:"fullReductionAmount"`

	// Step 4: user targeting
	AgeRange  string   `json:"ageRange"`
	Gender    string   `json:"gender"`
	Location  string   `json:"location"`
	Interests []string `json:"interests"`
	Behaviors []string `json:"behaviors"`

	// Step 5: budget and schedule
	CampaignType    string     `json:"campaignType"`
	StartTime       *time.Time `json:"startTime"`
	EndTime         *time.Time `json:"endTime"`
	TotalBudget     Money      `json:"totalBudget"`
	DailyBudget     Money      `json:"dailyBudget"`
	BiddingStrategy string     `json:"biddingStrategy"`
	ClickBid        Money      `json:"clickBid"`
	// WeeklySchedule is Monday-first.
	WeeklySchedule []bool `json:"weeklySchedule"`

	Status CampaignStatus `json:"status"`
}

type Campaign struct {
	ID int64 `json:"id"`
	CampaignDraft
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Normalize applies the create-time defaults: draft status and empty, never
// nil, list fields.
func (d *CampaignDraft) Normalize() {
	if d.Status == "" {
		d.Status = CampaignStatusDraft
	}
	d.Placements = nonNilStrings(d.Placements)
	d.DeviceTypes = nonNilStrings(d.DeviceTypes)
	d.Interests = nonNilStrings(d.Interests)
	d.Behaviors = nonNilStrings(d.Behaviors)
	if d.WeeklySchedule == nil {
		d.WeeklySchedule = []bool{}
	}
}

// Clone returns a deep copy so stores can hand out records without sharing
// slices or pointers with their internal state.
func (c *Campaign) Clone() *Campaign {
	out := *c
	out.Placements = append([]string{}, c.Placements...)
	out.DeviceTypes = append([]string{}, c.DeviceTypes...)
	out.Interests = append([]string{}, c.Interests...)
	out.Behaviors = append([]string{}, c.Behaviors...)
	out.WeeklySchedule = append([]bool{}, c.WeeklySchedule...)
	out.ProductID = clonePtr(c.ProductID)
	out.OriginalPrice = clonePtr(c.OriginalPrice)
	out.CurrentPrice = clonePtr(c.CurrentPrice)
	out.FullReductionThreshold = clonePtr(c.FullReductionThreshold)
	out.FullReductionAmount = clonePtr(c.FullReductionAmount)
	out.StartTime = clonePtr(c.StartTime)
	out.EndTime = clonePtr(c.EndTime)
	return &out
}

// Nullable is a patch value for a column that may be cleared. Set reports
// whether the field was present in the request; a nil Value clears it.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// CampaignPatch is a partial update. Nil pointers and unset Nullables leave
// the stored value untouched.
type CampaignPatch struct {
	Name               *string
	MarketingGoal      *string
	OptimizationTarget *string
	Priority           *string
	PromotionScenario  *string
	Placements         *[]string
	DeviceTypes        *[]string

	ProductID              Nullable[int64]
	OriginalPrice          Nullable[Money]
	CurrentPrice           Nullable[Money]
	HasTimeLimitedDiscount *bool
	DiscountPercentage     *int
	HasFullReduction       *bool
	FullReductionThreshold Nullable[Money]
	FullReductionAmount    Nullable[Money]

	AgeRange  *string
	Gender    *string
	Location  *string
	Interests *[]string
	Behaviors *[]string

	CampaignType    *string
	StartTime       Nullable[time.Time]
	EndTime         Nullable[time.Time]
	TotalBudget     *Money
	DailyBudget     *Money
	BiddingStrategy *string
	ClickBid        *Money
	WeeklySchedule  *[]bool

	Status *CampaignStatus
}

// SubmitsCampaign reports whether the patch moves the campaign to submitted.
func (p *CampaignPatch) SubmitsCampaign() bool {
	return p.Status != nil && *p.Status == CampaignStatusSubmitted
}

// ApplyTo merges the patch onto c. It does not touch ID or timestamps.
func (p *CampaignPatch) ApplyTo(c *Campaign) {
	setIf(&c.Name, p.Name)
	setIf(&c.MarketingGoal, p.MarketingGoal)
	setIf(&c.OptimizationTarget, p.OptimizationTarget)
	setIf(&c.Priority, p.Priority)
	setIf(&c.PromotionScenario, p.PromotionScenario)
	setListIf(&c.Placements, p.Placements)
	setListIf(&c.DeviceTypes, p.DeviceTypes)

	setNullable(&c.ProductID, p.ProductID)
	setNullable(&c.OriginalPrice, p.OriginalPrice)
	setNullable(&c.CurrentPrice, p.CurrentPrice)
	setIf(&c.HasTimeLimitedDiscount, p.HasTimeLimitedDiscount)
	setIf(&c.DiscountPercentage, p.DiscountPercentage)
	setIf(&c.HasFullReduction, p.HasFullReduction)
	setNullable(&c.FullReductionThreshold, p.FullReductionThreshold)
	setNullable(&c.FullReductionAmount, p.FullReductionAmount)

	setIf(&c.AgeRange, p.AgeRange)
	setIf(&c.Gender, p.Gender)
	setIf(&c.Location, p.Location)
	setListIf(&c.Interests, p.Interests)
	setListIf(&c.Behaviors, p.Behaviors)

	setIf(&c.CampaignType, p.CampaignType)
	setNullable(&c.StartTime, p.StartTime)
	setNullable(&c.EndTime, p.EndTime)
	setIf(&c.TotalBudget, p.TotalBudget)
	setIf(&c.DailyBudget, p.DailyBudget)
	setIf(&c.BiddingStrategy, p.BiddingStrategy)
	setIf(&c.ClickBid, p.ClickBid)
	setListIf(&c.WeeklySchedule, p.WeeklySchedule)

	// An empty status keeps whatever the record already had.
	if p.Status != nil && *p.Status != "" {
		c.Status = *p.Status
	}
	if c.Status == "" {
		c.Status = CampaignStatusDraft
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setListIf[T any](dst *[]T, v *[]T) {
	if v == nil {
		return
	}
	if *v == nil {
		*dst = []T{}
		return
	}
	*dst = append([]T{}, (*v)...)
}

func setNullable[T any](dst **T, v Nullable[T]) {
	if v.Set {
		*dst = clonePtr(v.Value)
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
