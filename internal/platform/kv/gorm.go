package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Slot is the GORM model backing one durable key.
type Slot struct {
	Key       string    `gorm:"column:slot_key;type:varchar(255);primaryKey"`
	Value     []byte    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName specifies the table name for the Slot model.
func (Slot) TableName() string {
	return "kv_slots"
}

type gormBackend struct {
	db *gorm.DB
}

// NewGORMBackend migrates the kv_slots table and returns a Backend on top of it.
func NewGORMBackend(db *gorm.DB) (Backend, error) {
	if err := db.AutoMigrate(&Slot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv_slots: %w", err)
	}
	return &gormBackend{db: db}, nil
}

func (r *gormBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var slot Slot
	err := r.db.WithContext(ctx).Where("slot_key = ?", key).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return slot.Value, nil
}

func (r *gormBackend) Set(ctx context.Context, key string, value []byte) error {
	slot := Slot{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
}

func (r *gormBackend) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("slot_key = ?", key).Delete(&Slot{}).Error
}

func (r *gormBackend) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Model(&Slot{}).
		Where("slot_key LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Pluck("slot_key", &keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
