package savings

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/money-saver/backend/internal/domain/entity"
	domainerror "github.com/money-saver/backend/internal/domain/error"
)

// fixedClock returns a constant time so tests can assert timestamps.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// fakePlanRepo is an in-memory SavingPlanRepository. Error fields inject
// failures; findErrs is consumed one entry per FindByID call, so a single
// transient error followed by nil exercises the retry path.
type fakePlanRepo struct {
	mu      sync.Mutex
	plans   map[uuid.UUID]*entity.SavingPlan
	amounts map[uuid.UUID][]*entity.WeeklyAmount
	order   []uuid.UUID

	findErrs   []error
	createErrs []error
	updateErr  error
	appendErr  error

	softDeleteCalls int
	lastRecalculate bool
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{
		plans:   make(map[uuid.UUID]*entity.SavingPlan),
		amounts: make(map[uuid.UUID][]*entity.WeeklyAmount),
	}
}

func (r *fakePlanRepo) seed(plan *entity.SavingPlan, amounts ...*entity.WeeklyAmount) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[plan.ID] = plan
	r.amounts[plan.ID] = amounts
	r.order = append(r.order, plan.ID)
}

func (r *fakePlanRepo) CreateWithWeeklyAmounts(ctx context.Context, plan *entity.SavingPlan, amounts []*entity.WeeklyAmount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		if err != nil {
			return err
		}
	}
	r.plans[plan.ID] = plan
	r.amounts[plan.ID] = amounts
	r.order = append(r.order, plan.ID)
	return nil
}

func (r *fakePlanRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.SavingPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.findErrs) > 0 {
		err := r.findErrs[0]
		r.findErrs = r.findErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	plan, ok := r.plans[id]
	if !ok {
		return nil, domainerror.ErrPlanNotFound
	}
	plan.WeeklyAmounts = r.amounts[id]
	return plan, nil
}

func (r *fakePlanRepo) FindByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*entity.SavingPlan, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var owned []*entity.SavingPlan
	for _, id := range r.order {
		if plan, ok := r.plans[id]; ok && plan.UserID == userID {
			owned = append(owned, plan)
		}
	}
	total := int64(len(owned))
	if offset >= len(owned) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], total, nil
}

func (r *fakePlanRepo) FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.SavingPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var active []*entity.SavingPlan
	for _, id := range r.order {
		if plan, ok := r.plans[id]; ok && plan.UserID == userID && plan.IsActive {
			plan.WeeklyAmounts = r.amounts[id]
			active = append(active, plan)
		}
	}
	return active, nil
}

func (r *fakePlanRepo) Update(ctx context.Context, plan *entity.SavingPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.plans[plan.ID]; !ok {
		return domainerror.ErrPlanNotFound
	}
	r.plans[plan.ID] = plan
	return nil
}

func (r *fakePlanRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.softDeleteCalls++
	if _, ok := r.plans[id]; !ok {
		return domainerror.ErrPlanNotFound
	}
	delete(r.plans, id)
	delete(r.amounts, id)
	return nil
}

func (r *fakePlanRepo) AppendWeeklyAmounts(ctx context.Context, planID uuid.UUID, amounts []*entity.WeeklyAmount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	if _, ok := r.plans[planID]; !ok {
		return domainerror.ErrPlanNotFound
	}
	r.amounts[planID] = append(r.amounts[planID], amounts...)
	return nil
}

func (r *fakePlanRepo) FindWeeklyAmount(ctx context.Context, planID, weekID uuid.UUID) (*entity.WeeklyAmount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, amount := range r.amounts[planID] {
		if amount.ID == weekID {
			return amount, nil
		}
	}
	return nil, domainerror.ErrWeeklyAmountNotFound
}

func (r *fakePlanRepo) UpdateWeeklyAmount(ctx context.Context, amount *entity.WeeklyAmount, recalculate bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastRecalculate = recalculate
	for i, existing := range r.amounts[amount.SavingPlanID] {
		if existing.ID == amount.ID {
			r.amounts[amount.SavingPlanID][i] = amount
			return nil
		}
	}
	return domainerror.ErrWeeklyAmountNotFound
}
