// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/money-saver/backend/internal/application/adapter"
	"github.com/money-saver/backend/internal/domain/entity"
	domainerror "github.com/money-saver/backend/internal/domain/error"
	"github.com/money-saver/backend/internal/integration/persistence/model"
)

// savingPlanRepository implements the adapter.SavingPlanRepository interface.
type savingPlanRepository struct {
	db *gorm.DB
}

// NewSavingPlanRepository creates a new saving plan repository instance.
func NewSavingPlanRepository(db *gorm.DB) adapter.SavingPlanRepository {
	return &savingPlanRepository{
		db: db,
	}
}

// CreateWithWeeklyAmounts persists a plan and its initial installments in one
// transaction. The transaction rolls back as a whole on any failure, so a
// duplicate week number leaves nothing behind.
func (r *savingPlanRepository) CreateWithWeeklyAmounts(ctx context.Context, plan *entity.SavingPlan, amounts []*entity.WeeklyAmount) error {
	return classifyStorageError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.SavingPlanFromEntity(plan)).Error; err != nil {
			return translateWriteError(err)
		}
		for _, amount := range amounts {
			if err := tx.Create(model.WeeklyAmountFromEntity(amount)).Error; err != nil {
				return translateWriteError(err)
			}
		}
		return nil
	}))
}

// FindByID retrieves a plan with its weekly amounts ordered by week number.
func (r *savingPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SavingPlan, error) {
	var planModel model.SavingPlanModel
	result := r.db.WithContext(ctx).
		Preload("WeeklyAmounts", func(db *gorm.DB) *gorm.DB {
			return db.Order("week_number ASC")
		}).
		Where("id = ?", id).
		First(&planModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPlanNotFound
		}
		return nil, classifyStorageError(result.Error)
	}
	return planModel.ToEntity(), nil
}

// FindByUserID retrieves a page of the user's plans, newest first.
func (r *savingPlanRepository) FindByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*entity.SavingPlan, int64, error) {
	var total int64
	result := r.db.WithContext(ctx).
		Model(&model.SavingPlanModel{}).
		Where("user_id = ?", userID).
		Count(&total)
	if result.Error != nil {
		return nil, 0, classifyStorageError(result.Error)
	}

	var planModels []model.SavingPlanModel
	result = r.db.WithContext(ctx).
		Preload("WeeklyAmounts", func(db *gorm.DB) *gorm.DB {
			return db.Order("week_number ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&planModels)
	if result.Error != nil {
		return nil, 0, classifyStorageError(result.Error)
	}

	plans := make([]*entity.SavingPlan, len(planModels))
	for i := range planModels {
		plans[i] = planModels[i].ToEntity()
	}
	return plans, total, nil
}

// FindActiveByUserID retrieves all of the user's active plans with their
// weekly amounts, newest first.
func (r *savingPlanRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.SavingPlan, error) {
	var planModels []model.SavingPlanModel
	result := r.db.WithContext(ctx).
		Preload("WeeklyAmounts", func(db *gorm.DB) *gorm.DB {
			return db.Order("week_number ASC")
		}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&planModels)
	if result.Error != nil {
		return nil, classifyStorageError(result.Error)
	}

	plans := make([]*entity.SavingPlan, len(planModels))
	for i := range planModels {
		plans[i] = planModels[i].ToEntity()
	}
	return plans, nil
}

// Update saves changes to a plan's own fields.
func (r *savingPlanRepository) Update(ctx context.Context, plan *entity.SavingPlan) error {
	planModel := model.SavingPlanFromEntity(plan)
	result := r.db.WithContext(ctx).Save(planModel)
	if result.Error != nil {
		return translateWriteError(result.Error)
	}
	return nil
}

// SoftDelete soft-deletes a plan and all its weekly amounts atomically.
func (r *savingPlanRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return classifyStorageError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.SavingPlanModel{}, "id = ?", id)
		if result.Error != nil {
			return classifyStorageError(result.Error)
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrPlanNotFound
		}
		if err := tx.Where("saving_plan_id = ?", id).Delete(&model.WeeklyAmountModel{}).Error; err != nil {
			return classifyStorageError(err)
		}
		return nil
	}))
}

// AppendWeeklyAmounts appends installments to an existing plan atomically.
func (r *savingPlanRepository) AppendWeeklyAmounts(ctx context.Context, planID uuid.UUID, amounts []*entity.WeeklyAmount) error {
	return classifyStorageError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, amount := range amounts {
			if err := tx.Create(model.WeeklyAmountFromEntity(amount)).Error; err != nil {
				return translateWriteError(err)
			}
		}
		return recalculatePlanTotals(tx, planID)
	}))
}

// FindWeeklyAmount retrieves one installment of the given plan.
func (r *savingPlanRepository) FindWeeklyAmount(ctx context.Context, planID, weekID uuid.UUID) (*entity.WeeklyAmount, error) {
	var amountModel model.WeeklyAmountModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND saving_plan_id = ?", weekID, planID).
		First(&amountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrWeeklyAmountNotFound
		}
		return nil, classifyStorageError(result.Error)
	}
	return amountModel.ToEntity(), nil
}

// UpdateWeeklyAmount saves changes to an installment. When recalculate is
// true the plan's saved total and display week indexes are recomputed inside
// the same transaction, so readers never see a half-applied toggle.
func (r *savingPlanRepository) UpdateWeeklyAmount(ctx context.Context, amount *entity.WeeklyAmount, recalculate bool) error {
	return classifyStorageError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model.WeeklyAmountFromEntity(amount)).Error; err != nil {
			return translateWriteError(err)
		}
		if !recalculate {
			return nil
		}
		return recalculatePlanTotals(tx, amount.SavingPlanID)
	}))
}

// recalculatePlanTotals recomputes the plan's denormalized saved total from
// its completed installments and reassigns display week indexes by completion
// order. Incomplete installments carry a NULL index.
func recalculatePlanTotals(tx *gorm.DB, planID uuid.UUID) error {
	var total decimal.Decimal
	err := tx.Model(&model.WeeklyAmountModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("saving_plan_id = ? AND completed = ?", planID, true).
		Scan(&total).Error
	if err != nil {
		return err
	}

	err = tx.Model(&model.SavingPlanModel{}).
		Where("id = ?", planID).
		Update("total_saved_amount", total).Error
	if err != nil {
		return err
	}

	var completed []model.WeeklyAmountModel
	err = tx.Where("saving_plan_id = ? AND completed = ?", planID, true).
		Order("completed_at ASC, week_number ASC").
		Find(&completed).Error
	if err != nil {
		return err
	}

	for i := range completed {
		index := i + 1
		err = tx.Model(&model.WeeklyAmountModel{}).
			Where("id = ?", completed[i].ID).
			Update("week_index", index).Error
		if err != nil {
			return err
		}
	}

	return tx.Model(&model.WeeklyAmountModel{}).
		Where("saving_plan_id = ? AND completed = ?", planID, false).
		Update("week_index", nil).Error
}
