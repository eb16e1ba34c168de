//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/money-saver/backend/internal/application/adapter"
	"github.com/money-saver/backend/internal/application/usecase/reminder"
	"github.com/money-saver/backend/internal/application/usecase/savings"
	"github.com/money-saver/backend/internal/application/usecase/user"
	"github.com/money-saver/backend/internal/infra/server/router"
	"github.com/money-saver/backend/internal/integration/adapters"
	"github.com/money-saver/backend/internal/integration/email"
	"github.com/money-saver/backend/internal/integration/entrypoint/controller"
	"github.com/money-saver/backend/internal/integration/entrypoint/middleware"
	"github.com/money-saver/backend/internal/integration/persistence"
	"github.com/money-saver/backend/internal/integration/persistence/model"
	"github.com/money-saver/backend/internal/integration/scheduler"
	"github.com/money-saver/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// planStartDate anchors seeded plans far enough in the past that schedule
// statistics are stable regardless of when the suite runs.
var planStartDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// testContext holds the state for a single scenario.
type testContext struct {
	db     *mock.Db
	server *httptest.Server
	mailer *email.MockEmailSender

	headers     map[string]string
	accessToken string
	response    *response

	userIDs       map[string]uuid.UUID
	currentUserID uuid.UUID
	planID        uuid.UUID
	weekID        uuid.UUID
}

type response struct {
	status int
	raw    []byte
	body   any
}

// InitializeTestSuite sets up resources shared by all scenarios.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		_ = os.Setenv("ENV", "test")
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		db: mock.NewDb(map[string]any{
			"users":          &model.UserModel{},
			"saving_plans":   &model.SavingPlanModel{},
			"weekly_amounts": &model.WeeklyAmountModel{},
			"reminder_logs":  &model.ReminderLogModel{},
		}),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		if err := test.reset(); err != nil {
			return ctx, err
		}
		test.startServer()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if test.server != nil {
			test.server.Close()
			test.server = nil
		}
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Auth setup steps
	ctx.Given(`^I am authenticated as "([^"]*)"$`, test.iAmAuthenticatedAs)
	ctx.Given(`^I am not authenticated$`, test.iAmNotAuthenticated)
	ctx.Given(`^I use the access token "([^"]*)"$`, test.iUseTheAccessToken)
	ctx.Given(`^my account is synced$`, test.myAccountIsSynced)

	// Plan setup steps
	ctx.Given(`^I have a saving plan named "([^"]*)" targeting "([^"]*)" over (\d+) weeks$`, test.iHaveASavingPlan)
	ctx.Given(`^the plan has an? (completed )?installment of "([^"]*)" for week (\d+)$`, test.thePlanHasAnInstallment)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database and mail assertion steps
	ctx.Then(`^the db should contain (\d+) rows in the "([^"]*)" table$`, test.theDbShouldContainRowsInTheTable)
	ctx.Then(`^(\d+) reminder emails? should have been sent$`, test.reminderEmailsShouldHaveBeenSent)
}

func (t *testContext) reset() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.response = nil
	t.userIDs = make(map[string]uuid.UUID)
	t.currentUserID = uuid.Nil
	t.planID = uuid.Nil
	t.weekID = uuid.Nil
	return t.db.Reset()
}

// startServer wires the full application against the shared test database
// and exposes it over an httptest server.
func (t *testContext) startServer() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := adapter.SystemClock{}

	userRepo := persistence.NewUserRepository(t.db.DbConn)
	planRepo := persistence.NewSavingPlanRepository(t.db.DbConn)
	logRepo := persistence.NewReminderLogRepository(t.db.DbConn)

	t.mailer = email.NewMockEmailSender()
	emailService, err := email.NewService(t.mailer)
	if err != nil {
		panic("failed to build email service: " + err.Error())
	}

	runCycle := reminder.NewRunCycleUseCase(
		userRepo,
		planRepo,
		logRepo,
		emailService,
		nil, // static fallback tip
		adapters.NewInProcessCycleLock(),
		clock,
		logger,
	)
	sched := scheduler.New(scheduler.DefaultConfig(), runCycle, logger)

	healthController := controller.NewHealthController(func() bool { return true })
	userController := controller.NewUserController(
		user.NewSyncUserUseCase(userRepo, clock),
		user.NewGetProfileUseCase(userRepo),
		user.NewUpdatePreferencesUseCase(userRepo, clock),
	)
	savingsController := controller.NewSavingsController(
		savings.NewCreatePlanUseCase(planRepo, clock),
		savings.NewListPlansUseCase(planRepo),
		savings.NewGetPlanUseCase(planRepo),
		savings.NewUpdatePlanUseCase(planRepo, clock),
		savings.NewDeletePlanUseCase(planRepo),
		savings.NewAddWeeklyAmountsUseCase(planRepo, clock),
		savings.NewUpdateWeeklyAmountUseCase(planRepo, clock),
		savings.NewGetPlanStatsUseCase(planRepo, clock),
		savings.NewGetUserStatsUseCase(planRepo),
	)
	adminController := controller.NewAdminController(sched)

	authMiddleware := middleware.NewAuthMiddleware(adapters.NewTokenVerifier(testJWTSecret))
	syncRateLimiter := middleware.NewRateLimiter(5, time.Minute)

	r := router.NewRouter(
		healthController,
		userController,
		savingsController,
		adminController,
		syncRateLimiter,
		authMiddleware,
	)
	t.server = httptest.NewServer(r.Setup("test"))
}

func (t *testContext) theAPIServerIsRunning() error {
	if t.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

// iAmAuthenticatedAs signs a real bearer token for the given email. The
// subject UUID is stable per email within a scenario so re-authenticating
// as the same address keeps the same identity.
func (t *testContext) iAmAuthenticatedAs(emailAddr string) error {
	userID, ok := t.userIDs[emailAddr]
	if !ok {
		userID = uuid.New()
		t.userIDs[emailAddr] = userID
	}
	t.currentUserID = userID

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":      userID.String(),
		"email":    emailAddr,
		"name":     "Test User",
		"provider": "google",
		"exp":      jwt.NewNumericDate(now.Add(time.Hour)),
		"iat":      jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to sign access token: %w", err)
	}
	t.accessToken = signed
	return nil
}

func (t *testContext) iAmNotAuthenticated() error {
	t.accessToken = ""
	t.headers = make(map[string]string)
	return nil
}

func (t *testContext) iUseTheAccessToken(token string) error {
	t.accessToken = token
	return nil
}

// myAccountIsSynced provisions the account for the current token through the
// sync endpoint, the same way a client would after sign-in.
func (t *testContext) myAccountIsSynced() error {
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/sync", nil); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated && t.response.status != http.StatusOK {
		return fmt.Errorf("expected sync to succeed, got %d: %s", t.response.status, string(t.response.raw))
	}
	return nil
}

func (t *testContext) iHaveASavingPlan(name, target string, weeks int) error {
	start := planStartDate
	end := start.AddDate(0, 0, weeks*7)
	body := fmt.Sprintf(
		`{"name":%q,"target_amount":%s,"number_of_weeks":%d,"start_date":%q,"end_date":%q}`,
		name, target, weeks, start.Format("2006-01-02"), end.Format("2006-01-02"),
	)
	if err := t.executeRequest(http.MethodPost, "/api/v1/savings-plans", []byte(body)); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("expected plan creation to succeed, got %d: %s", t.response.status, string(t.response.raw))
	}
	return nil
}

func (t *testContext) thePlanHasAnInstallment(completed, amount string, week int) error {
	weekStart := planStartDate.AddDate(0, 0, (week-1)*7)
	weekEnd := weekStart.AddDate(0, 0, 7)
	body := fmt.Sprintf(
		`{"weekly_amounts":[{"week_number":%d,"amount":%s,"week_start":%q,"week_end":%q,"completed":%t}]}`,
		week, amount, weekStart.Format("2006-01-02"), weekEnd.Format("2006-01-02"), completed != "",
	)
	path := fmt.Sprintf("/api/v1/savings-plans/%s/weekly-amounts", t.planID)
	if err := t.executeRequest(http.MethodPost, path, []byte(body)); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("expected installment creation to succeed, got %d: %s", t.response.status, string(t.response.raw))
	}
	return nil
}
