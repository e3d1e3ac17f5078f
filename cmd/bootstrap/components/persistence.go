package components

import (
	"clinic-booking-api/internal/infra/readstore"
	"clinic-booking-api/internal/infra/repository"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	readstoreModule,
	repositoryModule,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		readstore.NewVoucherReadStore,
		readstore.NewBookingReadStore,
		readstore.NewCatalogReadStore,
		readstore.NewUserReadStore,
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		repository.NewVoucherRepository,
		repository.NewBookingRepository,
	),
)
