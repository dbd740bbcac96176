package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pocketwatch/backend/internal/application/adapter"
	"github.com/pocketwatch/backend/internal/application/session"
	"github.com/pocketwatch/backend/internal/domain/entity"
	domainerror "github.com/pocketwatch/backend/internal/domain/error"
)

type fakeGateway struct {
	createdDraft *entity.TransactionDraft
	updatedID    string
	updatedPatch *adapter.TransactionPatch
	deletedID    string
	refreshed    bool
	view         []*entity.Transaction
	result       session.MutationResult
}

func (g *fakeGateway) Transactions() []*entity.Transaction { return g.view }
func (g *fakeGateway) Refresh(context.Context)             { g.refreshed = true }

func (g *fakeGateway) Create(_ context.Context, draft entity.TransactionDraft) session.MutationResult {
	g.createdDraft = &draft
	return g.result
}

func (g *fakeGateway) Update(_ context.Context, id string, patch adapter.TransactionPatch) session.MutationResult {
	g.updatedID = id
	g.updatedPatch = &patch
	return g.result
}

func (g *fakeGateway) Delete(_ context.Context, id string) session.MutationResult {
	g.deletedID = id
	return g.result
}

type fakeSuggester struct {
	available bool
	category  entity.Category
	err       error
	called    bool
}

func (s *fakeSuggester) IsAvailable() bool { return s.available }

func (s *fakeSuggester) Suggest(context.Context, string) (entity.Category, error) {
	s.called = true
	return s.category, s.err
}

func amountPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func persistedResult(txn *entity.Transaction) session.MutationResult {
	return session.MutationResult{Outcome: session.OutcomePersisted, Transaction: txn}
}

func TestCreateTransactionValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateTransactionInput
		wantErr error
	}{
		{
			name:    "empty title",
			input:   CreateTransactionInput{Title: "   ", Amount: amountPtr(10), Type: entity.TransactionTypeExpense},
			wantErr: domainerror.ErrEmptyTitle,
		},
		{
			name:    "missing amount",
			input:   CreateTransactionInput{Title: "Coffee", Type: entity.TransactionTypeExpense},
			wantErr: domainerror.ErrMissingAmount,
		},
		{
			name:    "negative amount",
			input:   CreateTransactionInput{Title: "Coffee", Amount: amountPtr(-5), Type: entity.TransactionTypeExpense},
			wantErr: domainerror.ErrNegativeAmount,
		},
		{
			name:    "invalid type",
			input:   CreateTransactionInput{Title: "Coffee", Amount: amountPtr(5), Type: "transfer"},
			wantErr: domainerror.ErrInvalidTransactionType,
		},
		{
			name: "invalid category",
			input: CreateTransactionInput{
				Title: "Coffee", Amount: amountPtr(5),
				Type: entity.TransactionTypeExpense, Category: "Gadgets",
			},
			wantErr: domainerror.ErrInvalidCategory,
		},
		{
			name: "malformed date",
			input: CreateTransactionInput{
				Title: "Coffee", Amount: amountPtr(5),
				Type: entity.TransactionTypeExpense, Date: "03/01/2024",
			},
			wantErr: domainerror.ErrInvalidTransactionDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := &fakeGateway{}
			uc := NewCreateTransactionUseCase(gateway, nil)

			_, err := uc.Execute(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if gateway.createdDraft != nil {
				t.Error("gateway must not be reached on validation failure")
			}
		})
	}
}

func TestCreateTransactionClassifiesWhenCategoryOmitted(t *testing.T) {
	gateway := &fakeGateway{result: persistedResult(&entity.Transaction{ID: "1"})}
	uc := NewCreateTransactionUseCase(gateway, nil)

	output, err := uc.Execute(context.Background(), CreateTransactionInput{
		Title:  "  Starbucks Coffee  ",
		Amount: amountPtr(6),
		Type:   entity.TransactionTypeExpense,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if output.Outcome != session.OutcomePersisted {
		t.Errorf("outcome = %q, want persisted", output.Outcome)
	}
	if gateway.createdDraft.Title != "Starbucks Coffee" {
		t.Errorf("title = %q, want trimmed", gateway.createdDraft.Title)
	}
	if gateway.createdDraft.Category != entity.CategoryFood {
		t.Errorf("category = %q, want Food from the keyword classifier", gateway.createdDraft.Category)
	}
}

func TestCreateTransactionConsultsSuggesterOnFallthrough(t *testing.T) {
	gateway := &fakeGateway{result: persistedResult(&entity.Transaction{ID: "1"})}
	suggester := &fakeSuggester{available: true, category: entity.CategoryHealth}
	uc := NewCreateTransactionUseCase(gateway, suggester)

	_, err := uc.Execute(context.Background(), CreateTransactionInput{
		Title:  "Dr. Alvarez copay",
		Amount: amountPtr(40),
		Type:   entity.TransactionTypeExpense,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !suggester.called {
		t.Fatal("suggester not consulted on classifier fallthrough")
	}
	if gateway.createdDraft.Category != entity.CategoryHealth {
		t.Errorf("category = %q, want the suggester's pick", gateway.createdDraft.Category)
	}
}

func TestCreateTransactionAbsorbsSuggesterFailure(t *testing.T) {
	gateway := &fakeGateway{result: persistedResult(&entity.Transaction{ID: "1"})}
	suggester := &fakeSuggester{available: true, err: errors.New("quota exceeded")}
	uc := NewCreateTransactionUseCase(gateway, suggester)

	_, err := uc.Execute(context.Background(), CreateTransactionInput{
		Title:  "Dr. Alvarez copay",
		Amount: amountPtr(40),
		Type:   entity.TransactionTypeExpense,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if gateway.createdDraft.Category != entity.CategoryOther {
		t.Errorf("category = %q, want Other when the suggester fails", gateway.createdDraft.Category)
	}
}

func TestCreateTransactionSkipsClassifierWhenCategoryGiven(t *testing.T) {
	gateway := &fakeGateway{result: persistedResult(&entity.Transaction{ID: "1"})}
	suggester := &fakeSuggester{available: true, category: entity.CategoryFood}
	uc := NewCreateTransactionUseCase(gateway, suggester)

	_, err := uc.Execute(context.Background(), CreateTransactionInput{
		Title:    "Starbucks Coffee",
		Amount:   amountPtr(6),
		Type:     entity.TransactionTypeExpense,
		Category: entity.CategoryEntertainment,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if suggester.called {
		t.Error("suggester must not run when the caller chose a category")
	}
	if gateway.createdDraft.Category != entity.CategoryEntertainment {
		t.Errorf("category = %q, caller's choice must win", gateway.createdDraft.Category)
	}
}

func TestUpdateTransactionValidatesPresentFieldsOnly(t *testing.T) {
	gateway := &fakeGateway{result: persistedResult(&entity.Transaction{ID: "1"})}
	uc := NewUpdateTransactionUseCase(gateway)

	comment := "split with roommate"
	output, err := uc.Execute(context.Background(), UpdateTransactionInput{
		ID:      "1",
		Comment: &comment,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if output.Outcome != session.OutcomePersisted {
		t.Errorf("outcome = %q, want persisted", output.Outcome)
	}
	if gateway.updatedPatch.Comment == nil || *gateway.updatedPatch.Comment != comment {
		t.Errorf("patch comment = %v, want %q", gateway.updatedPatch.Comment, comment)
	}
	if gateway.updatedPatch.Title != nil {
		t.Error("absent fields must stay nil in the patch")
	}
}

func TestUpdateTransactionRejectsBadPatchValues(t *testing.T) {
	badTitle := " "
	badType := entity.TransactionType("transfer")
	badDate := "yesterday"

	tests := []struct {
		name    string
		input   UpdateTransactionInput
		wantErr error
	}{
		{"blank title", UpdateTransactionInput{ID: "1", Title: &badTitle}, domainerror.ErrEmptyTitle},
		{"negative amount", UpdateTransactionInput{ID: "1", Amount: amountPtr(-1)}, domainerror.ErrNegativeAmount},
		{"bad type", UpdateTransactionInput{ID: "1", Type: &badType}, domainerror.ErrInvalidTransactionType},
		{"bad date", UpdateTransactionInput{ID: "1", Date: &badDate}, domainerror.ErrInvalidTransactionDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := &fakeGateway{}
			uc := NewUpdateTransactionUseCase(gateway)

			_, err := uc.Execute(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if gateway.updatedPatch != nil {
				t.Error("gateway must not be reached on validation failure")
			}
		})
	}
}

func TestUpdateTransactionNotFound(t *testing.T) {
	gateway := &fakeGateway{result: session.MutationResult{
		Outcome: session.OutcomeFailed,
		Err:     domainerror.ErrTransactionNotFound,
	}}
	uc := NewUpdateTransactionUseCase(gateway)

	title := "Rent"
	_, err := uc.Execute(context.Background(), UpdateTransactionInput{ID: "missing", Title: &title})
	if !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("err = %v, want ErrTransactionNotFound", err)
	}

	var txnErr *domainerror.TransactionError
	if !errors.As(err, &txnErr) || txnErr.Code != domainerror.ErrCodeTransactionNotFound {
		t.Errorf("expected coded transaction error, got %v", err)
	}
}

func TestDeleteTransactionReportsOutcome(t *testing.T) {
	gateway := &fakeGateway{result: session.MutationResult{Outcome: session.OutcomeCacheOnly}}
	uc := NewDeleteTransactionUseCase(gateway)

	output, err := uc.Execute(context.Background(), DeleteTransactionInput{ID: "1"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if output.Outcome != session.OutcomeCacheOnly {
		t.Errorf("outcome = %q, want cache_only", output.Outcome)
	}
	if gateway.deletedID != "1" {
		t.Errorf("deleted id = %q", gateway.deletedID)
	}
}

func TestListTransactionsRefreshFlag(t *testing.T) {
	gateway := &fakeGateway{view: []*entity.Transaction{{ID: "1"}}}
	uc := NewListTransactionsUseCase(gateway)

	output, err := uc.Execute(context.Background(), ListTransactionsInput{Refresh: true})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !gateway.refreshed {
		t.Error("refresh flag must trigger a reload")
	}
	if len(output.Transactions) != 1 {
		t.Errorf("got %d transactions, want 1", len(output.Transactions))
	}
}
