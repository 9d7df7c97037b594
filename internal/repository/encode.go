package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jenny-yujl/marketingTrain/internal/models"
)

// List columns hold JSON text so one schema works for every dialect.
func encodeList[T any](v []T) (string, error) {
	if v == nil {
		v = []T{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeList[T any](column, raw string) ([]T, error) {
	out := []T{}
	if raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("column %s holds malformed JSON: %w", column, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func encodeFlag(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func nullableID(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullableMoney(m *models.Money) any {
	if m == nil {
		return nil
	}
	return m.String()
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func decodeMoney(column, raw string) (models.Money, error) {
	m, err := models.ParseMoney(raw)
	if err != nil {
		return models.Money{}, fmt.Errorf("column %s holds invalid amount %q: %w", column, raw, err)
	}
	return m, nil
}

func decodeNullableMoney(column string, ns sql.NullString) (*models.Money, error) {
	if !ns.Valid {
		return nil, nil
	}
	m, err := decodeMoney(column, ns.String)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func decodeNullableTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

func decodeNullableID(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64
	return &v
}
