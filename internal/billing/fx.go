package billing

import (
	"github.com/adsretail/billdesk/internal/billing/domain"
	"github.com/adsretail/billdesk/internal/billing/repository"
	"github.com/adsretail/billdesk/internal/billing/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("billing",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Invoke(EnsureSchema),
)

// EnsureSchema creates the bill tables if missing. Idempotent; run once at
// startup rather than inlined into write paths.
func EnsureSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Bill{},
		&domain.BillItem{},
	)
}
