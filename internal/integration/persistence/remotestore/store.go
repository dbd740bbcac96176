// Package remotestore implements the transaction store over the remote
// authenticated database. Every operation is scoped to one identity; a store
// scoped to no identity short-circuits without touching the database.
package remotestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pocketwatch/backend/internal/application/adapter"
	"github.com/pocketwatch/backend/internal/domain/entity"
	domainerror "github.com/pocketwatch/backend/internal/domain/error"
	"github.com/pocketwatch/backend/internal/integration/persistence/remotestore/model"
)

const (
	// maxRetries bounds the exponential backoff on transient database errors.
	maxRetries = 3
	// initialRetryInterval is the first backoff delay.
	initialRetryInterval = 100 * time.Millisecond
)

// Store is the unscoped remote store; Scope binds it to one identity.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// New creates a remote store over the given database connection.
func New(db *gorm.DB) *Store {
	return &Store{
		db:  db,
		now: time.Now,
	}
}

// Migrate creates or updates the remote schema.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&model.TransactionModel{}, &model.SettingsModel{}); err != nil {
		return fmt.Errorf("failed to migrate remote schema: %w", err)
	}
	return nil
}

// Scope returns a TransactionStore bound to the given identity. A nil
// identity yields a store whose every operation fails the ErrNoIdentity
// precondition without network access.
func (s *Store) Scope(identity *entity.Identity) adapter.TransactionStore {
	scoped := &scopedStore{db: s.db, now: s.now}
	if identity != nil {
		scoped.userID = identity.ID
	}
	return scoped
}

// scopedStore is the per-identity view of the remote store.
type scopedStore struct {
	db     *gorm.DB
	userID uuid.UUID
	now    func() time.Time
}

var _ adapter.TransactionStore = (*scopedStore)(nil)

// guard enforces the identity precondition shared by every operation.
func (s *scopedStore) guard() error {
	if s.userID == uuid.Nil {
		return domainerror.NewStoreError(
			domainerror.ErrCodeNoIdentity,
			"remote operation requires an identity",
			domainerror.ErrNoIdentity,
		)
	}
	return nil
}

// retry runs op under bounded exponential backoff. Domain errors and
// not-found results are permanent; only infrastructure errors are retried.
func (s *scopedStore) retry(ctx context.Context, op func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = initialRetryInterval

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) ||
			errors.Is(err, domainerror.ErrTransactionNotFound) ||
			errors.Is(err, context.Canceled) ||
			errors.Is(err, context.DeadlineExceeded) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(policy, maxRetries), ctx))
}

// List fetches all records owned by the identity, newest-first by recorded
// creation time.
func (s *scopedStore) List(ctx context.Context) ([]*entity.Transaction, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	var rows []model.TransactionModel
	err := s.retry(ctx, func() error {
		rows = rows[:0]
		return s.db.WithContext(ctx).
			Where("user_id = ?", s.userID).
			Order("created_at DESC").
			Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list remote transactions: %w", err)
	}

	transactions := make([]*entity.Transaction, len(rows))
	for i := range rows {
		transactions[i] = rows[i].ToEntity()
	}
	return transactions, nil
}

// Create inserts a new row tagged with the identity and returns the
// normalized stored record.
func (s *scopedStore) Create(ctx context.Context, draft entity.TransactionDraft) (*entity.Transaction, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	row := model.TransactionFromDraft(s.userID, draft, s.now())
	err := s.retry(ctx, func() error {
		return s.db.WithContext(ctx).Create(row).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create remote transaction: %w", err)
	}
	return row.ToEntity(), nil
}

// Update merges the patch into the identity's row with the given id. Patch
// fields pass through the same name normalization as create and list.
func (s *scopedStore) Update(ctx context.Context, id string, patch adapter.TransactionPatch) (*entity.Transaction, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	var row model.TransactionModel
	err := s.retry(ctx, func() error {
		err := s.db.WithContext(ctx).
			Where("id = ? AND user_id = ?", id, s.userID).
			First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return backoff.Permanent(domainerror.ErrTransactionNotFound)
		}
		if err != nil {
			return err
		}

		if patch.Title != nil {
			row.Title = *patch.Title
		}
		if patch.Amount != nil {
			row.Amount = *patch.Amount
		}
		if patch.Type != nil {
			row.Type = string(*patch.Type)
		}
		if patch.Category != nil {
			row.Category = string(*patch.Category)
		}
		if patch.Comment != nil {
			row.Notes = *patch.Comment
		}
		if patch.Date != nil {
			row.TxDate = *patch.Date
			row.CreatedAt = entity.ResolveCreatedAt(*patch.Date, s.now())
		}

		return s.db.WithContext(ctx).Save(&row).Error
	})
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to update remote transaction: %w", err)
	}
	return row.ToEntity(), nil
}

// Delete removes the identity's row with the given id. An absent id is a
// no-op.
func (s *scopedStore) Delete(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}

	err := s.retry(ctx, func() error {
		return s.db.WithContext(ctx).
			Where("id = ? AND user_id = ?", id, s.userID).
			Delete(&model.TransactionModel{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete remote transaction: %w", err)
	}
	return nil
}

// ReadSettings returns the identity's settings row, or the defaults when no
// row exists yet.
func (s *scopedStore) ReadSettings(ctx context.Context) (*entity.Settings, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	var row model.SettingsModel
	err := s.retry(ctx, func() error {
		return s.db.WithContext(ctx).
			Where("user_id = ?", s.userID).
			First(&row).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read remote settings: %w", err)
	}
	return row.ToEntity(), nil
}

// WriteSettings merges the patch into the identity's settings and upserts the
// single row keyed by user id.
func (s *scopedStore) WriteSettings(ctx context.Context, patch adapter.SettingsPatch) (*entity.Settings, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	current, err := s.ReadSettings(ctx)
	if err != nil {
		return nil, err
	}
	if patch.MonthlyBudget != nil {
		current.MonthlyBudget = *patch.MonthlyBudget
	}
	if patch.SavingsGoal != nil {
		current.SavingsGoal = *patch.SavingsGoal
	}

	row := model.SettingsFromEntity(s.userID, current)
	err = s.retry(ctx, func() error {
		return s.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"monthly_budget", "savings_goal"}),
			}).
			Create(row).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write remote settings: %w", err)
	}
	return row.ToEntity(), nil
}
