package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"myground/internal/models"
)

// CreateProperty inserts a new property
func (r *Repository) CreateProperty(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

// GetProperty retrieves a property by ID
func (r *Repository) GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	var property models.Property
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&property).Error; err != nil {
		return nil, translate(err)
	}
	return &property, nil
}

// UpdateProperty saves every column of the property
func (r *Repository) UpdateProperty(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Save(property).Error
}

// DeleteProperty removes a property
func (r *Repository) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Property{}).Error
}

// ListProperties searches properties, newest first
func (r *Repository) ListProperties(
	ctx context.Context,
	filter models.PropertyFilter,
	limit int,
	offset int,
) ([]*models.Property, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Property{}).
		Scopes(propertyFilterScope(filter)).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var properties []*models.Property
	err = r.db.WithContext(ctx).
		Scopes(propertyFilterScope(filter)).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&properties).Error
	if err != nil {
		return nil, 0, err
	}

	return properties, total, nil
}

func propertyFilterScope(filter models.PropertyFilter) func(*gorm.DB) *gorm.DB {
	return func(query *gorm.DB) *gorm.DB {
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.TransactionType != "" {
			query = query.Where("transaction_type = ?", filter.TransactionType)
		}
		if filter.PropertyCategory != "" {
			query = query.Where("property_category = ?", filter.PropertyCategory)
		}
		if filter.PropertySubType != "" {
			query = query.Where("property_sub_type = ?", filter.PropertySubType)
		}
		if filter.City != "" {
			query = query.Where("LOWER(city) = LOWER(?)", filter.City)
		}
		if filter.State != "" {
			query = query.Where("LOWER(state) = LOWER(?)", filter.State)
		}
		if filter.MinPrice != nil {
			query = query.Where("price >= ?", *filter.MinPrice)
		}
		if filter.MaxPrice != nil {
			query = query.Where("price <= ?", *filter.MaxPrice)
		}
		return query
	}
}

// ListPropertiesByOwner retrieves every property of an owner regardless of status
func (r *Repository) ListPropertiesByOwner(ctx context.Context, ownerID uint) ([]*models.Property, error) {
	var properties []*models.Property
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}
