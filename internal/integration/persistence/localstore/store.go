// Package localstore implements the transaction store over a single JSON
// document on the local device. It is synchronous and never surfaces a
// persistence failure: a missing, corrupt or unwritable document degrades to
// the default document and is only logged.
package localstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketwatch/backend/internal/application/adapter"
	"github.com/pocketwatch/backend/internal/domain/entity"
	domainerror "github.com/pocketwatch/backend/internal/domain/error"
)

// DocumentKey is the conceptual key of the persisted document, kept for
// compatibility with data written by earlier clients.
const DocumentKey = "pocketwatch_data"

// document is the on-disk shape: {transactions: [...], settings: {...}}.
type document struct {
	Transactions []*transactionRecord `json:"transactions"`
	Settings     *settingsRecord      `json:"settings"`
}

type transactionRecord struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"type"`
	Category  string          `json:"category"`
	Comment   string          `json:"comment,omitempty"`
	Date      string          `json:"date,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type settingsRecord struct {
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
	SavingsGoal   decimal.Decimal `json:"savingsGoal"`
}

// Store is the local document store. All methods are safe for concurrent use
// within the process; cross-process writers are last-writer-wins.
type Store struct {
	mu     sync.Mutex
	path   string
	lastID int64
	now    func() time.Time
}

// New creates a local store persisting to the given file path.
func New(path string) *Store {
	return &Store{
		path: path,
		now:  time.Now,
	}
}

var _ adapter.TransactionStore = (*Store)(nil)

// defaultDocument returns an empty transaction list with default settings.
func defaultDocument() *document {
	defaults := entity.DefaultSettings()
	return &document{
		Transactions: []*transactionRecord{},
		Settings: &settingsRecord{
			MonthlyBudget: defaults.MonthlyBudget,
			SavingsGoal:   defaults.SavingsGoal,
		},
	}
}

// load reads the persisted document, degrading to the default document when
// the file is absent, unreadable or corrupt.
func (s *Store) load() *document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Local document unreadable, using defaults",
				"path", s.path,
				"error", err,
			)
		}
		return defaultDocument()
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Warn("Local document corrupt, using defaults",
			"path", s.path,
			"error", err,
		)
		return defaultDocument()
	}

	if doc.Transactions == nil {
		doc.Transactions = []*transactionRecord{}
	}
	if doc.Settings == nil {
		doc.Settings = defaultDocument().Settings
	}
	return &doc
}

// save persists the document. Failures are logged, never propagated: the
// caller already holds the updated in-memory state and availability wins
// over strict durability feedback here.
func (s *Store) save(doc *document) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		slog.Error("Failed to encode local document", "error", err)
		return
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		slog.Error("Failed to create local store directory", "path", s.path, "error", err)
		return
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		slog.Error("Failed to write local document", "path", s.path, "error", err)
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		slog.Error("Failed to replace local document", "path", s.path, "error", err)
	}
}

// nextID generates a millisecond-timestamp id, bumped when two creates land
// on the same millisecond.
func (s *Store) nextID() string {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

// List returns all transactions, newest-first by insertion order.
func (s *Store) List(_ context.Context) ([]*entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	transactions := make([]*entity.Transaction, len(doc.Transactions))
	for i, rec := range doc.Transactions {
		transactions[i] = rec.toEntity()
	}
	return transactions, nil
}

// Create assigns a generated id, resolves the effective date-time from the
// supplied calendar date (local noon) or now, prepends the record and
// persists.
func (s *Store) Create(_ context.Context, draft entity.TransactionDraft) (*entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()

	rec := &transactionRecord{
		ID:        s.nextID(),
		Title:     draft.Title,
		Amount:    draft.Amount,
		Type:      string(draft.Type),
		Category:  string(draft.Category),
		Comment:   draft.Comment,
		Date:      draft.Date,
		CreatedAt: entity.ResolveCreatedAt(draft.Date, s.now()),
	}

	doc.Transactions = append([]*transactionRecord{rec}, doc.Transactions...)
	s.save(doc)

	return rec.toEntity(), nil
}

// Update merges the patch into the record with the given id and persists only
// on success. A patched date recomputes the effective date-time.
func (s *Store) Update(_ context.Context, id string, patch adapter.TransactionPatch) (*entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	for _, rec := range doc.Transactions {
		if rec.ID != id {
			continue
		}

		if patch.Title != nil {
			rec.Title = *patch.Title
		}
		if patch.Amount != nil {
			rec.Amount = *patch.Amount
		}
		if patch.Type != nil {
			rec.Type = string(*patch.Type)
		}
		if patch.Category != nil {
			rec.Category = string(*patch.Category)
		}
		if patch.Comment != nil {
			rec.Comment = *patch.Comment
		}
		if patch.Date != nil {
			rec.Date = *patch.Date
			rec.CreatedAt = entity.ResolveCreatedAt(*patch.Date, s.now())
		}

		s.save(doc)
		return rec.toEntity(), nil
	}

	return nil, domainerror.ErrTransactionNotFound
}

// Delete removes the record with the given id and persists. Deleting an
// absent id is a no-op.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	kept := doc.Transactions[:0]
	for _, rec := range doc.Transactions {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	doc.Transactions = kept
	s.save(doc)
	return nil
}

// ReadSettings returns the persisted settings, falling back to defaults.
func (s *Store) ReadSettings(_ context.Context) (*entity.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	return &entity.Settings{
		MonthlyBudget: doc.Settings.MonthlyBudget,
		SavingsGoal:   doc.Settings.SavingsGoal,
	}, nil
}

// WriteSettings merges the patch into the persisted settings.
func (s *Store) WriteSettings(_ context.Context, patch adapter.SettingsPatch) (*entity.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	if patch.MonthlyBudget != nil {
		doc.Settings.MonthlyBudget = *patch.MonthlyBudget
	}
	if patch.SavingsGoal != nil {
		doc.Settings.SavingsGoal = *patch.SavingsGoal
	}
	s.save(doc)

	return &entity.Settings{
		MonthlyBudget: doc.Settings.MonthlyBudget,
		SavingsGoal:   doc.Settings.SavingsGoal,
	}, nil
}

func (r *transactionRecord) toEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:        r.ID,
		Title:     r.Title,
		Amount:    r.Amount,
		Type:      entity.TransactionType(r.Type),
		Category:  entity.Category(r.Category),
		Comment:   r.Comment,
		Date:      r.Date,
		CreatedAt: r.CreatedAt,
	}
}
