package postgres

import (
	"context"
	"errors"
	"time"

	storageDatamodel "github.com/frahmantamala/interview-dashboard/internal/core/datamodel/storage"
	"github.com/frahmantamala/interview-dashboard/internal/storage"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StorageRepository struct {
	db *gorm.DB
}

func NewStorageRepository(db *gorm.DB) storage.RepositoryAPI {
	return &StorageRepository{db: db}
}

func (r *StorageRepository) Get(ctx context.Context, scope, key string) (string, bool, error) {
	var entry storageDatamodel.Entry
	err := r.db.WithContext(ctx).
		Where("scope = ? AND key = ?", scope, key).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

func (r *StorageRepository) Set(ctx context.Context, scope, key, value string) error {
	entry := storageDatamodel.Entry{
		Scope:     scope,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (r *StorageRepository) Delete(ctx context.Context, scope, key string) error {
	return r.db.WithContext(ctx).
		Where("scope = ? AND key = ?", scope, key).
		Delete(&storageDatamodel.Entry{}).Error
}
