package components

import (
	"clinic-booking-api/internal/handler"
	"clinic-booking-api/internal/handler/api"
	"clinic-booking-api/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewVoucherHandler,
		api.NewBookingHandler,
		api.NewCatalogHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
