package storage

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one row of the kv_entries table.
type Entry struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string {
	return "kv_entries"
}

// GormKV persists entries in a SQL table. A positive quota caps the size of a single value in bytes.
type GormKV struct {
	db    *gorm.DB
	quota int
}

func NewGormKV(db *gorm.DB, quota int) (*GormKV, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, errors.Wrap(err, "migrate kv_entries")
	}
	return &GormKV{db: db, quota: quota}, nil
}

func (g *GormKV) Get(key string) (string, error) {
	var e Entry
	err := g.db.Where("key = ?", key).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "get %s", key)
	}
	return e.Value, nil
}

func (g *GormKV) Set(key, value string) error {
	if g.quota > 0 && len(value) > g.quota {
		return errors.Wrapf(ErrQuotaExceeded, "set %s (%d of %d bytes)", key, len(value), g.quota)
	}

	e := Entry{Key: key, Value: value, UpdatedAt: time.Now()}
	err := g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	return errors.Wrapf(err, "set %s", key)
}

func (g *GormKV) Remove(key string) error {
	err := g.db.Where("key = ?", key).Delete(&Entry{}).Error
	return errors.Wrapf(err, "remove %s", key)
}
