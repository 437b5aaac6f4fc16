package database

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/amirulz/cinema-live/internal/model"
	"github.com/amirulz/cinema-live/internal/repository"
)

// demoAccounts are the fixed logins of the demo. All three share the
// same password; this is a showcase, not a production credential store.
var demoAccounts = []struct {
	Email string
	Name  string
	Role  string
}{
	{"customer@demo.com", "Customer User", model.RoleCustomer},
	{"staff@demo.com", "Staff User", model.RoleStaff},
	{"admin@demo.com", "Admin User", model.RoleAdmin},
}

const demoPassword = "password123"

// SeedDemoAccounts inserts the demo accounts unless they already exist.
// Seeding failures are logged per account and do not abort startup; a
// half-seeded database just means fewer working logins.
func SeedDemoAccounts(ctx context.Context, db *sql.DB, cost int, log *zap.Logger) {
	users := repository.NewUserRepo(db)
	for _, acc := range demoAccounts {
		_, err := users.GetByEmail(ctx, acc.Email)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			log.Warn("seed: lookup failed", zap.String("email", acc.Email), zap.Error(err))
			continue
		}
		if _, err := users.Create(ctx, acc.Email, acc.Name, demoPassword, acc.Role, cost); err != nil {
			log.Warn("seed: create failed", zap.String("email", acc.Email), zap.Error(err))
		}
	}
}
