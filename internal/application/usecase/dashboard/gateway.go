// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"

	"github.com/pocketwatch/backend/internal/domain/entity"
)

// Gateway is the session-aware read surface the dashboard use cases run
// against. *session.Coordinator satisfies it.
type Gateway interface {
	Transactions() []*entity.Transaction
	ReadSettings(ctx context.Context) *entity.Settings
}
