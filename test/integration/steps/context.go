// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/pocketwatch/backend/internal/application/session"
	"github.com/pocketwatch/backend/internal/application/usecase/dashboard"
	usecaseidentity "github.com/pocketwatch/backend/internal/application/usecase/identity"
	"github.com/pocketwatch/backend/internal/application/usecase/settings"
	"github.com/pocketwatch/backend/internal/application/usecase/transaction"
	"github.com/pocketwatch/backend/internal/infra/server/router"
	identityprovider "github.com/pocketwatch/backend/internal/integration/identity"
	"github.com/pocketwatch/backend/internal/integration/entrypoint/controller"
	"github.com/pocketwatch/backend/internal/integration/entrypoint/middleware"
	"github.com/pocketwatch/backend/internal/integration/persistence/localstore"
	"github.com/pocketwatch/backend/internal/integration/persistence/remotestore"
	"github.com/pocketwatch/backend/test/integration/mock"
)

const testSessionSecret = "pocketwatch-integration-secret"

// TestContext holds the test state for each scenario.
type TestContext struct {
	server       *httptest.Server
	response     *http.Response
	responseBody []byte

	workDir     string
	db          *mock.Db
	remote      *remotestore.Store
	provider    *identityprovider.TokenProvider
	coordinator *session.Coordinator
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		_ = os.Setenv("ENV", "test")
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc, err := newTestContext()
		if err != nil {
			return ctx, err
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil {
			tc.teardown()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerSessionSteps(ctx)
	registerSeedSteps(ctx)
	registerResponseSteps(ctx)
}

// newTestContext builds the whole application in-process: a file-backed
// local store in a scratch directory, an in-memory database standing in for
// the remote store, and the full HTTP surface on an httptest server.
func newTestContext() (*TestContext, error) {
	workDir, err := os.MkdirTemp("", "pocketwatch-bdd-*")
	if err != nil {
		return nil, err
	}

	tc := &TestContext{workDir: workDir}

	local := localstore.New(filepath.Join(workDir, "pocketwatch.json"))
	tc.db = mock.NewDb()
	tc.remote = remotestore.New(tc.db.DbConn)
	tc.provider = identityprovider.NewTokenProvider(testSessionSecret, filepath.Join(workDir, "session.token"))

	tc.coordinator = session.NewCoordinator(local, tc.remote, tc.provider,
		session.WithStartupWait(200*time.Millisecond),
	)
	tc.coordinator.Start(context.Background())

	listUseCase := transaction.NewListTransactionsUseCase(tc.coordinator)
	createUseCase := transaction.NewCreateTransactionUseCase(tc.coordinator, nil)
	updateUseCase := transaction.NewUpdateTransactionUseCase(tc.coordinator)
	deleteUseCase := transaction.NewDeleteTransactionUseCase(tc.coordinator)

	getSettingsUseCase := settings.NewGetSettingsUseCase(tc.coordinator)
	updateSettingsUseCase := settings.NewUpdateSettingsUseCase(tc.coordinator)

	summaryUseCase := dashboard.NewGetYearSummaryUseCase(tc.coordinator)
	breakdownUseCase := dashboard.NewGetCategoryBreakdownUseCase(tc.coordinator)
	budgetUseCase := dashboard.NewGetBudgetStatusUseCase(tc.coordinator)

	getSessionUseCase := usecaseidentity.NewGetSessionUseCase(tc.coordinator)
	signInUseCase := usecaseidentity.NewSignInUseCase(tc.provider)
	signOutUseCase := usecaseidentity.NewSignOutUseCase(tc.provider)

	r := router.NewRouter(
		controller.NewHealthController(nil),
		controller.NewSessionController(getSessionUseCase, signInUseCase, signOutUseCase),
		controller.NewTransactionController(listUseCase, createUseCase, updateUseCase, deleteUseCase),
		controller.NewSettingsController(getSettingsUseCase, updateSettingsUseCase),
		controller.NewDashboardController(summaryUseCase, breakdownUseCase, budgetUseCase),
		middleware.NewRateLimiter(),
	)
	tc.server = httptest.NewServer(r.Setup("test"))

	return tc, nil
}

func (tc *TestContext) teardown() {
	if tc.server != nil {
		tc.server.Close()
	}
	if tc.coordinator != nil {
		tc.coordinator.Stop()
	}
	if tc.workDir != "" {
		_ = os.RemoveAll(tc.workDir)
	}
}
