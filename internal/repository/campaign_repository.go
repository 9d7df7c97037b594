package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jenny-yujl/marketingTrain/internal/db"
	"github.com/jenny-yujl/marketingTrain/internal/interfaces"
	"github.com/jenny-yujl/marketingTrain/internal/models"
)

// campaignColumns lists the writable columns in bind order.
var campaignColumns = []string{
	"name", "marketing_goal", "optimization_target", "priority",
	"promotion_scenario", "placements", "device_types",
	"product_id", "original_price", "current_price",
	"has_time_limited_discount", "discount_percentage", "has_full_reduction",
	"full_reduction_threshold", "full_reduction_amount",
	"age_range", "gender", "location", "interests", "behaviors",
	"campaign_type", "start_time", "end_time", "total_budget", "daily_budget",
	"bidding_strategy", "click_bid", "weekly_schedule", "status",
}

var campaignSelect = "SELECT id, " + strings.Join(campaignColumns, ", ") +
	", created_at, updated_at FROM campaigns"

type campaignRepository struct {
	db  *db.Database
	now func() time.Time
}

func newCampaignRepository(database *db.Database, now func() time.Time) *campaignRepository {
	return &campaignRepository{db: database, now: now}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// campaignArgs encodes the writable columns in campaignColumns order.
func campaignArgs(c *models.Campaign) ([]any, error) {
	placements, err := encodeList(c.Placements)
	if err != nil {
		return nil, err
	}
	deviceTypes, err := encodeList(c.DeviceTypes)
	if err != nil {
		return nil, err
	}
	interests, err := encodeList(c.Interests)
	if err != nil {
		return nil, err
	}
	behaviors, err := encodeList(c.Behaviors)
	if err != nil {
		return nil, err
	}
	schedule, err := encodeList(c.WeeklySchedule)
	if err != nil {
		return nil, err
	}

	return []any{
		c.Name, c.MarketingGoal, c.OptimizationTarget, c.Priority,
		c.PromotionScenario, placements, deviceTypes,
		nullableID(c.ProductID), nullableMoney(c.OriginalPrice), nullableMoney(c.CurrentPrice),
		encodeFlag(c.HasTimeLimitedDiscount), int64(c.DiscountPercentage), encodeFlag(c.HasFullReduction),
		nullableMoney(c.FullReductionThreshold), nullableMoney(c.FullReductionAmount),
		c.AgeRange, c.Gender, c.Location, interests, behaviors,
		c.CampaignType, nullableTime(c.StartTime), nullableTime(c.EndTime),
		c.TotalBudget.String(), c.DailyBudget.String(),
		c.BiddingStrategy, c.ClickBid.String(), schedule, string(c.Status),
	}, nil
}

func scanCampaign(row rowScanner) (*models.Campaign, error) {
	var (
		c                                                    models.Campaign
		placements, deviceTypes, interests, behaviors, sched string
		productID                                            sql.NullInt64
		originalPrice, currentPrice                          sql.NullString
		threshold, reduction                                 sql.NullString
		timeLimited, fullReduction, discount                 int64
		startTime, endTime                                   sql.NullTime
		totalBudget, dailyBudget, clickBid, status           string
	)
	err := row.Scan(
		&c.ID,
		&c.Name, &c.MarketingGoal, &c.OptimizationTarget, &c.Priority,
		&c.PromotionScenario, &placements, &deviceTypes,
		&productID, &originalPrice, &currentPrice,
		&timeLimited, &discount, &fullReduction,
		&threshold, &reduction,
		&c.AgeRange, &c.Gender, &c.Location, &interests, &behaviors,
		&c.CampaignType, &startTime, &endTime, &totalBudget, &dailyBudget,
		&c.BiddingStrategy, &clickBid, &sched, &status,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if c.Placements, err = decodeList[string]("placements", placements); err != nil {
		return nil, err
	}
	if c.DeviceTypes, err = decodeList[string]("device_types", deviceTypes); err != nil {
		return nil, err
	}
	if c.Interests, err = decodeList[string]("interests", interests); err != nil {
		return nil, err
	}
	if c.Behaviors, err = decodeList[string]("behaviors", behaviors); err != nil {
		return nil, err
	}
	if c.WeeklySchedule, err = decodeList[bool]("weekly_schedule", sched); err != nil {
		return nil, err
	}
	if c.OriginalPrice, err = decodeNullableMoney("original_price", originalPrice); err != nil {
		return nil, err
	}
	if c.CurrentPrice, err = decodeNullableMoney("current_price", currentPrice); err != nil {
		return nil, err
	}
	if c.FullReductionThreshold, err = decodeNullableMoney("full_reduction_threshold", threshold); err != nil {
		return nil, err
	}
	if c.FullReductionAmount, err = decodeNullableMoney("full_reduction_amount", reduction); err != nil {
		return nil, err
	}
	if c.TotalBudget, err = decodeMoney("total_budget", totalBudget); err != nil {
		return nil, err
	}
	if c.DailyBudget, err = decodeMoney("daily_budget", dailyBudget); err != nil {
		return nil, err
	}
	if c.ClickBid, err = decodeMoney("click_bid", clickBid); err != nil {
		return nil, err
	}

	c.ProductID = decodeNullableID(productID)
	c.HasTimeLimitedDiscount = timeLimited != 0
	c.HasFullReduction = fullReduction != 0
	c.DiscountPercentage = int(discount)
	c.StartTime = decodeNullableTime(startTime)
	c.EndTime = decodeNullableTime(endTime)
	c.Status = models.CampaignStatus(status)
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}

func (r *campaignRepository) CreateCampaign(ctx context.Context, draft *models.CampaignDraft) (*models.Campaign, error) {
	now := r.now()
	c := (&models.Campaign{CampaignDraft: *draft, CreatedAt: now, UpdatedAt: now}).Clone()
	c.CampaignDraft.Normalize()

	args, err := campaignArgs(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode campaign: %w", err)
	}
	args = append(args, c.CreatedAt, c.UpdatedAt)

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(args)), ", ")
	query := "INSERT INTO campaigns (" + strings.Join(campaignColumns, ", ") +
		", created_at, updated_at) VALUES (" + placeholders + ") RETURNING id"

	if err := r.db.QueryRowContext(ctx, r.db.Dialect.Rebind(query), args...).Scan(&c.ID); err != nil {
		return nil, fmt.Errorf("failed to insert campaign: %w", err)
	}
	return c, nil
}

func (r *campaignRepository) GetCampaign(ctx context.Context, id int64) (*models.Campaign, error) {
	c, err := scanCampaign(r.db.QueryRowContext(ctx, r.db.Dialect.Rebind(campaignSelect+" WHERE id = ?"), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("campaign %d: %w", id, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get campaign %d: %w", id, err)
	}
	return c, nil
}

func (r *campaignRepository) ListCampaigns(ctx context.Context) ([]*models.Campaign, error) {
	rows, err := r.db.QueryContext(ctx, campaignSelect+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []*models.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

// UpdateCampaign reads, merges and writes inside one transaction. On
// postgres the read takes a row lock so concurrent patches serialize.
func (r *campaignRepository) UpdateCampaign(ctx context.Context, id int64, patch *models.CampaignPatch) (*models.Campaign, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := r.db.Dialect.Rebind(campaignSelect + " WHERE id = ?" + r.db.Dialect.LockClause())
	c, err := scanCampaign(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("campaign %d: %w", id, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load campaign %d: %w", id, err)
	}

	patch.ApplyTo(c)
	c.UpdatedAt = r.now()

	args, err := campaignArgs(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode campaign: %w", err)
	}
	args = append(args, c.UpdatedAt, id)

	sets := make([]string, 0, len(campaignColumns)+1)
	for _, col := range campaignColumns {
		sets = append(sets, col+" = ?")
	}
	sets = append(sets, "updated_at = ?")
	update := "UPDATE campaigns SET " + strings.Join(sets, ", ") + " WHERE id = ?"

	if _, err := tx.ExecContext(ctx, r.db.Dialect.Rebind(update), args...); err != nil {
		return nil, fmt.Errorf("failed to update campaign %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit campaign %d: %w", id, err)
	}
	return c, nil
}

// DeleteCampaign does not inspect rows affected; a missing id is success.
func (r *campaignRepository) DeleteCampaign(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.db.Dialect.Rebind("DELETE FROM campaigns WHERE id = ?"), id); err != nil {
		return fmt.Errorf("failed to delete campaign %d: %w", id, err)
	}
	return nil
}
