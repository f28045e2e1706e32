package pdf

import (
	"github.com/adsretail/billdesk/internal/billing/domain"
	"github.com/adsretail/billdesk/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("providers.pdf",
	fx.Provide(provideRenderer),
)

func provideRenderer(cfg config.Config, log *zap.Logger) domain.Renderer {
	return NewInvoiceRenderer(cfg.TemplatePath, cfg.CurrencyPrefix, log)
}
