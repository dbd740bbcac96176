package remotestore

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pocketwatch/backend/internal/application/adapter"
	"github.com/pocketwatch/backend/internal/domain/entity"
	domainerror "github.com/pocketwatch/backend/internal/domain/error"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbSQL, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	dbSQL.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = dbSQL.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}

	store := New(db)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func testIdentity() *entity.Identity {
	return &entity.Identity{ID: uuid.New(), Email: "user@example.com"}
}

func TestScopeWithoutIdentityShortCircuits(t *testing.T) {
	store := newTestStore(t)
	scoped := store.Scope(nil)
	ctx := context.Background()

	t.Run("list", func(t *testing.T) {
		_, err := scoped.List(ctx)
		if !errors.Is(err, domainerror.ErrNoIdentity) {
			t.Errorf("err = %v, want ErrNoIdentity", err)
		}
	})

	t.Run("create", func(t *testing.T) {
		_, err := scoped.Create(ctx, entity.TransactionDraft{
			Title:  "Rent",
			Amount: decimal.NewFromInt(1200),
			Type:   entity.TransactionTypeExpense,
		})
		if !errors.Is(err, domainerror.ErrNoIdentity) {
			t.Errorf("err = %v, want ErrNoIdentity", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := scoped.Delete(ctx, "some-id"); !errors.Is(err, domainerror.ErrNoIdentity) {
			t.Errorf("err = %v, want ErrNoIdentity", err)
		}
	})

	t.Run("settings", func(t *testing.T) {
		if _, err := scoped.ReadSettings(ctx); !errors.Is(err, domainerror.ErrNoIdentity) {
			t.Errorf("err = %v, want ErrNoIdentity", err)
		}
	})
}

func TestCreateNormalizesFieldNames(t *testing.T) {
	store := newTestStore(t)
	scoped := store.Scope(testIdentity())
	ctx := context.Background()

	created, err := scoped.Create(ctx, entity.TransactionDraft{
		Title:    "Rent",
		Amount:   decimal.NewFromInt(1200),
		Type:     entity.TransactionTypeExpense,
		Category: entity.CategoryOther,
		Comment:  "march payment", // stored as notes
		Date:     "2024-03-01",    // stored as tx_date
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.ID == "" {
		t.Error("expected a store-generated id")
	}
	if _, err := uuid.Parse(created.ID); err != nil {
		t.Errorf("id %q is not a UUID", created.ID)
	}
	if created.Comment != "march payment" {
		t.Errorf("comment = %q, want normalized round-trip", created.Comment)
	}
	if created.Date != "2024-03-01" {
		t.Errorf("date = %q, want normalized round-trip", created.Date)
	}
	if created.CreatedAt.Month() != time.March || created.CreatedAt.Day() != 1 {
		t.Errorf("createdAt = %v, want March 1 noon anchor", created.CreatedAt)
	}
}

func TestListIsIdentityScopedAndNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := store.Scope(testIdentity())
	bob := store.Scope(testIdentity())

	for _, spec := range []struct {
		store adapter.TransactionStore
		title string
		date  string
	}{
		{alice, "older", "2024-01-10"},
		{alice, "newer", "2024-05-10"},
		{bob, "not alices", "2024-03-03"},
	} {
		if _, err := spec.store.Create(ctx, entity.TransactionDraft{
			Title:  spec.title,
			Amount: decimal.NewFromInt(10),
			Type:   entity.TransactionTypeExpense,
			Date:   spec.date,
		}); err != nil {
			t.Fatalf("Create %q: %v", spec.title, err)
		}
	}

	listed, err := alice.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 rows for alice, got %d", len(listed))
	}
	if listed[0].Title != "newer" || listed[1].Title != "older" {
		t.Errorf("order = %q, %q; want newest-first", listed[0].Title, listed[1].Title)
	}
}

func TestUpdateMergesAndNormalizes(t *testing.T) {
	store := newTestStore(t)
	scoped := store.Scope(testIdentity())
	ctx := context.Background()

	created, _ := scoped.Create(ctx, entity.TransactionDraft{
		Title:    "Groceries",
		Amount:   decimal.NewFromInt(100),
		Type:     entity.TransactionTypeExpense,
		Category: entity.CategoryFood,
		Comment:  "weekly",
		Date:     "2024-02-10",
	})

	amount := decimal.NewFromInt(50)
	comment := "biweekly"
	updated, err := scoped.Update(ctx, created.ID, adapter.TransactionPatch{
		Amount:  &amount,
		Comment: &comment,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if !updated.Amount.Equal(amount) {
		t.Errorf("amount = %s, want 50", updated.Amount)
	}
	// The comment patch travels through the notes column and back.
	if updated.Comment != "biweekly" {
		t.Errorf("comment = %q, want normalized patch", updated.Comment)
	}
	if updated.Title != "Groceries" || updated.Category != entity.CategoryFood || updated.Date != "2024-02-10" {
		t.Errorf("update clobbered unrelated fields: %+v", updated)
	}
}

func TestUpdateDateRecomputesCreatedAt(t *testing.T) {
	store := newTestStore(t)
	scoped := store.Scope(testIdentity())
	ctx := context.Background()

	created, _ := scoped.Create(ctx, entity.TransactionDraft{
		Title:  "Rent",
		Amount: decimal.NewFromInt(1200),
		Type:   entity.TransactionTypeExpense,
		Date:   "2024-03-01",
	})

	date := "2024-04-02"
	updated, err := scoped.Update(ctx, created.ID, adapter.TransactionPatch{Date: &date})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.CreatedAt.Month() != time.April || updated.CreatedAt.Day() != 2 {
		t.Errorf("createdAt = %v, want April 2", updated.CreatedAt)
	}
}

func TestUpdateNotFound(t *testing.T) {
	store := newTestStore(t)
	scoped := store.Scope(testIdentity())

	title := "nope"
	_, err := scoped.Update(context.Background(), uuid.NewString(), adapter.TransactionPatch{Title: &title})
	if !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("err = %v, want ErrTransactionNotFound", err)
	}
}

func TestUpdateCannotTouchOtherIdentity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := store.Scope(testIdentity())
	bob := store.Scope(testIdentity())

	created, _ := alice.Create(ctx, entity.TransactionDraft{
		Title:  "Alices rent",
		Amount: decimal.NewFromInt(1200),
		Type:   entity.TransactionTypeExpense,
	})

	title := "hijacked"
	_, err := bob.Update(ctx, created.ID, adapter.TransactionPatch{Title: &title})
	if !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("err = %v, want ErrTransactionNotFound for foreign row", err)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	store := newTestStore(t)
	scoped := store.Scope(testIdentity())
	ctx := context.Background()

	created, _ := scoped.Create(ctx, entity.TransactionDraft{
		Title:  "Snack",
		Amount: decimal.NewFromInt(3),
		Type:   entity.TransactionTypeExpense,
	})

	if err := scoped.Delete(ctx, created.ID); err != nil {
		t.Fatalf("first Delete: %v", err)
	}
	if err := scoped.Delete(ctx, created.ID); err != nil {
		t.Errorf("second Delete: %v", err)
	}

	listed, _ := scoped.List(ctx)
	if len(listed) != 0 {
		t.Errorf("expected empty list after delete, got %d", len(listed))
	}
}

func TestSettingsUpsertRoundTrip(t *testing.T) {
	store := newTestStore(t)
	scoped := store.Scope(testIdentity())
	ctx := context.Background()

	t.Run("missing row resolves to defaults", func(t *testing.T) {
		settings, err := scoped.ReadSettings(ctx)
		if err != nil {
			t.Fatalf("ReadSettings: %v", err)
		}
		if !settings.MonthlyBudget.Equal(decimal.NewFromInt(3000)) || !settings.SavingsGoal.Equal(decimal.NewFromInt(5000)) {
			t.Errorf("expected defaults, got %+v", settings)
		}
	})

	t.Run("first write inserts", func(t *testing.T) {
		budget := decimal.NewFromInt(2000)
		updated, err := scoped.WriteSettings(ctx, adapter.SettingsPatch{MonthlyBudget: &budget})
		if err != nil {
			t.Fatalf("WriteSettings: %v", err)
		}
		if !updated.MonthlyBudget.Equal(budget) {
			t.Errorf("monthlyBudget = %s, want 2000", updated.MonthlyBudget)
		}
		if !updated.SavingsGoal.Equal(decimal.NewFromInt(5000)) {
			t.Errorf("savingsGoal = %s, want preserved default", updated.SavingsGoal)
		}
	})

	t.Run("second write upserts the same row", func(t *testing.T) {
		goal := decimal.NewFromInt(8000)
		updated, err := scoped.WriteSettings(ctx, adapter.SettingsPatch{SavingsGoal: &goal})
		if err != nil {
			t.Fatalf("WriteSettings: %v", err)
		}
		if !updated.MonthlyBudget.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("monthlyBudget = %s, want previous 2000", updated.MonthlyBudget)
		}
		if !updated.SavingsGoal.Equal(goal) {
			t.Errorf("savingsGoal = %s, want 8000", updated.SavingsGoal)
		}
	})
}
