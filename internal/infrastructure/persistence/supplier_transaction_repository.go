package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/freshline/backend/internal/domain/ledger"
	"github.com/freshline/backend/internal/domain/shared"
	"github.com/freshline/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSupplierTransactionRepository implements
// ledger.SupplierTransactionRepository using GORM
type GormSupplierTransactionRepository struct {
	db *gorm.DB
}

// NewGormSupplierTransactionRepository creates a new GormSupplierTransactionRepository
func NewGormSupplierTransactionRepository(db *gorm.DB) *GormSupplierTransactionRepository {
	return &GormSupplierTransactionRepository{db: db}
}

// Create persists a new supplier transaction
func (r *GormSupplierTransactionRepository) Create(ctx context.Context, txn *ledger.SupplierTransaction) error {
	model := models.SupplierTransactionModelFromDomain(txn)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds a supplier transaction by its ID
func (r *GormSupplierTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.SupplierTransaction, error) {
	var model models.SupplierTransactionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds supplier transactions matching the filter. A zero
// PageSize returns the full history, which the ledger summary relies on.
func (r *GormSupplierTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.SupplierTransaction, error) {
	var transactionModels []models.SupplierTransactionModel
	query := r.db.WithContext(ctx).Model(&models.SupplierTransactionModel{})

	for key, value := range filter.Filters {
		switch key {
		case "type", "spender":
			query = query.Where(fmt.Sprintf("%s = ?", key), value)
		case "start_date":
			query = query.Where("date >= ?", value)
		case "end_date":
			query = query.Where("date < ?", value)
		}
	}

	orderBy := ValidateSortField(filter.OrderBy, SupplierTransactionSortFields, "date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&transactionModels).Error; err != nil {
		return nil, err
	}

	txns := make([]ledger.SupplierTransaction, len(transactionModels))
	for i := range transactionModels {
		txns[i] = *transactionModels[i].ToDomain()
	}
	return txns, nil
}

// Save updates an existing supplier transaction
func (r *GormSupplierTransactionRepository) Save(ctx context.Context, txn *ledger.SupplierTransaction) error {
	model := models.SupplierTransactionModelFromDomain(txn)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
