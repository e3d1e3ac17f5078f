package bootstrap

import (
	"clinic-booking-api/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.VoucherConfig { return cfg.Voucher },
		func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
	),
)
