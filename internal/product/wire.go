//go:build wireinject
// +build wireinject

package product

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/catalog-service/internal/config"
	httpDelivery "github.com/tair/catalog-service/internal/product/delivery/http"
	"github.com/tair/catalog-service/internal/product/enrichment"
)

// InitializeApp assembles the catalog over the given stores.
func InitializeApp(
	stores Stores,
	endpoints map[string]config.EndpointConfig,
	enrichCfg enrichment.Config,
	reg prometheus.Registerer,
) (*App, error) {
	wire.Build(
		StoreSet,
		ClientSet,
		EnrichmentSet,
		CommandSet,
		QuerySet,
		httpDelivery.NewMetrics,
		httpDelivery.NewProductHandler,
		wire.Struct(new(App), "*"),
	)
	return nil, nil
}
