package user

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/money-saver/backend/internal/application/adapter"
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

// fakeUserRepo is an in-memory UserRepository keyed by ID and email.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domainerror.ErrEmailAlreadyExists
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domainerror.ErrUserNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domainerror.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) UpdateLastReminderSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return domainerror.ErrUserNotFound
	}
	user.LastReminderSent = &sentAt
	return nil
}

func (r *fakeUserRepo) FindReminderEligible(ctx context.Context, cutoff time.Time) ([]*entity.User, error) {
	return nil, nil
}

func assertUserCode(t *testing.T, err error, code domainerror.UserErrorCode) {
	t.Helper()
	var userErr *domainerror.UserError
	if !errors.As(err, &userErr) {
		t.Fatalf("expected a user error, got %v", err)
	}
	if userErr.Code != code {
		t.Errorf("expected code %s, got %s", code, userErr.Code)
	}
}

func TestSyncUserUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	clock := fixedClock{now: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)}

	claims := func(id uuid.UUID) adapter.IdentityClaims {
		return adapter.IdentityClaims{
			UserID:   id,
			Email:    "ada@example.com",
			Name:     "Ada",
			Provider: "google",
		}
	}

	t.Run("first sync creates the user", func(t *testing.T) {
		repo := newFakeUserRepo()
		uc := NewSyncUserUseCase(repo, clock)
		id := uuid.New()

		output, err := uc.Execute(ctx, SyncUserInput{Claims: claims(id)})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !output.Created {
			t.Error("expected created to be true on first sync")
		}
		if output.User.ID != id {
			t.Errorf("expected id %s, got %s", id, output.User.ID)
		}
		if !output.User.EmailNotifications {
			t.Error("expected notifications enabled by default")
		}
	})

	t.Run("subsequent sync refreshes email and name", func(t *testing.T) {
		repo := newFakeUserRepo()
		uc := NewSyncUserUseCase(repo, clock)
		id := uuid.New()

		if _, err := uc.Execute(ctx, SyncUserInput{Claims: claims(id)}); err != nil {
			t.Fatalf("expected first sync to succeed, got %v", err)
		}

		updated := claims(id)
		updated.Email = "ada.lovelace@example.com"
		updated.Name = "Ada Lovelace"
		output, err := uc.Execute(ctx, SyncUserInput{Claims: updated})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.Created {
			t.Error("expected created to be false on a repeat sync")
		}
		if output.User.Email != "ada.lovelace@example.com" {
			t.Errorf("expected refreshed email, got %s", output.User.Email)
		}
		if output.User.Name != "Ada Lovelace" {
			t.Errorf("expected refreshed name, got %s", output.User.Name)
		}
		if !output.User.UpdatedAt.Equal(clock.now) {
			t.Errorf("expected updated at %s, got %s", clock.now, output.User.UpdatedAt)
		}
	})

	t.Run("empty name claim keeps the stored name", func(t *testing.T) {
		repo := newFakeUserRepo()
		uc := NewSyncUserUseCase(repo, clock)
		id := uuid.New()

		if _, err := uc.Execute(ctx, SyncUserInput{Claims: claims(id)}); err != nil {
			t.Fatalf("expected first sync to succeed, got %v", err)
		}

		updated := claims(id)
		updated.Name = ""
		output, err := uc.Execute(ctx, SyncUserInput{Claims: updated})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.User.Name != "Ada" {
			t.Errorf("expected stored name to survive, got %s", output.User.Name)
		}
	})

	t.Run("sync reactivates a deactivated user", func(t *testing.T) {
		repo := newFakeUserRepo()
		uc := NewSyncUserUseCase(repo, clock)
		id := uuid.New()

		if _, err := uc.Execute(ctx, SyncUserInput{Claims: claims(id)}); err != nil {
			t.Fatalf("expected first sync to succeed, got %v", err)
		}
		repo.users[id].IsActive = false

		output, err := uc.Execute(ctx, SyncUserInput{Claims: claims(id)})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !output.User.IsActive {
			t.Error("expected the user to be reactivated")
		}
	})

	t.Run("email linked to another subject is a conflict", func(t *testing.T) {
		repo := newFakeUserRepo()
		uc := NewSyncUserUseCase(repo, clock)

		if _, err := uc.Execute(ctx, SyncUserInput{Claims: claims(uuid.New())}); err != nil {
			t.Fatalf("expected first sync to succeed, got %v", err)
		}

		_, err := uc.Execute(ctx, SyncUserInput{Claims: claims(uuid.New())})
		assertUserCode(t, err, domainerror.ErrCodeEmailAlreadyExists)
	})
}

func TestGetProfileUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stored profile", func(t *testing.T) {
		repo := newFakeUserRepo()
		stored := entity.NewUser(uuid.New(), "ada@example.com", "Ada", "google")
		repo.users[stored.ID] = stored
		uc := NewGetProfileUseCase(repo)

		output, err := uc.Execute(ctx, GetProfileInput{UserID: stored.ID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.User.Email != "ada@example.com" {
			t.Errorf("expected stored email, got %s", output.User.Email)
		}
	})

	t.Run("unknown user yields not found", func(t *testing.T) {
		repo := newFakeUserRepo()
		uc := NewGetProfileUseCase(repo)

		_, err := uc.Execute(ctx, GetProfileInput{UserID: uuid.New()})
		assertUserCode(t, err, domainerror.ErrCodeUserNotFound)
	})
}

func TestUpdatePreferencesUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	clock := fixedClock{now: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)}

	t.Run("disables email notifications", func(t *testing.T) {
		repo := newFakeUserRepo()
		stored := entity.NewUser(uuid.New(), "ada@example.com", "Ada", "google")
		repo.users[stored.ID] = stored
		uc := NewUpdatePreferencesUseCase(repo, clock)

		off := false
		output, err := uc.Execute(ctx, UpdatePreferencesInput{UserID: stored.ID, EmailNotifications: &off})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.User.EmailNotifications {
			t.Error("expected notifications disabled")
		}
	})

	t.Run("empty name patch is ignored", func(t *testing.T) {
		repo := newFakeUserRepo()
		stored := entity.NewUser(uuid.New(), "ada@example.com", "Ada", "google")
		repo.users[stored.ID] = stored
		uc := NewUpdatePreferencesUseCase(repo, clock)

		empty := ""
		output, err := uc.Execute(ctx, UpdatePreferencesInput{UserID: stored.ID, Name: &empty})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.User.Name != "Ada" {
			t.Errorf("expected name unchanged, got %s", output.User.Name)
		}
	})

	t.Run("unknown user yields not found", func(t *testing.T) {
		repo := newFakeUserRepo()
		uc := NewUpdatePreferencesUseCase(repo, clock)

		on := true
		_, err := uc.Execute(ctx, UpdatePreferencesInput{UserID: uuid.New(), EmailNotifications: &on})
		assertUserCode(t, err, domainerror.ErrCodeUserNotFound)
	})
}
