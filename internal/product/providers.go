package product

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/catalog-service/internal/product/client"
	httpDelivery "github.com/tair/catalog-service/internal/product/delivery/http"
	"github.com/tair/catalog-service/internal/product/domain"
	"github.com/tair/catalog-service/internal/product/enrichment"
	"github.com/tair/catalog-service/internal/product/repository"
	"github.com/tair/catalog-service/internal/product/usecase/command"
	"github.com/tair/catalog-service/internal/product/usecase/query"
)

// Stores is the persistence a catalog instance runs on.
type Stores struct {
	Products   domain.ProductRepository
	Categories domain.CategoryRepository
	Reviews    domain.ReviewRepository
	Keywords   domain.KeywordHistory
}

// NewGormStores wraps the postgres stores in tracing decorators. Keyword
// history is kept only when a Redis client is given.
func NewGormStores(db *gorm.DB, redisClient *redis.Client, recentKeywords int) Stores {
	return Stores{
		Products:   repository.NewTracingProductRepository(repository.NewGormProductRepository(db)),
		Categories: repository.NewTracingCategoryRepository(repository.NewGormCategoryRepository(db)),
		Reviews:    repository.NewTracingReviewRepository(repository.NewGormReviewRepository(db)),
		Keywords:   keywordHistory(redisClient, recentKeywords),
	}
}

func NewMemoryStores(redisClient *redis.Client, recentKeywords int, categories ...domain.Category) Stores {
	return Stores{
		Products:   repository.NewMemoryProductRepository(),
		Categories: repository.NewMemoryCategoryRepository(categories...),
		Reviews:    repository.NewMemoryReviewRepository(),
		Keywords:   keywordHistory(redisClient, recentKeywords),
	}
}

func keywordHistory(redisClient *redis.Client, max int) domain.KeywordHistory {
	if redisClient == nil {
		return nil
	}
	return repository.NewRedisKeywordHistory(redisClient, max)
}

// App is the assembled catalog: the HTTP surface plus the sales recorder
// driven by purchase events.
type App struct {
	Handler    *httpDelivery.ProductHandler
	RecordSale *command.RecordSaleHandler
}

// Wire sets
var StoreSet = wire.NewSet(
	wire.FieldsOf(new(Stores), "Products", "Categories", "Reviews", "Keywords"),
)

var ClientSet = wire.NewSet(
	client.NewRemoteClient,
	client.NewUserClient,
	client.NewInquiryClient,
	client.NewDeliveryClient,
	wire.Bind(new(domain.IdentityLookup), new(*client.UserClient)),
	wire.Bind(new(domain.InquirySubmitter), new(*client.InquiryClient)),
	wire.Bind(new(domain.SellerAddressLister), new(*client.DeliveryClient)),
)

var EnrichmentSet = wire.NewSet(
	enrichment.NewEnricher,
	wire.Bind(new(query.ProductEnricher), new(*enrichment.Enricher)),
)

var CommandSet = wire.NewSet(
	command.NewReviewStatsWriter,
	command.NewCreateProductHandler,
	command.NewEditProductHandler,
	command.NewDeleteProductHandler,
	command.NewSetInventoryHandler,
	command.NewChangeStatusHandler,
	command.NewSubmitInquiryHandler,
	command.NewCreateReviewHandler,
	command.NewUpdateReviewHandler,
	command.NewDeleteReviewHandler,
	command.NewRecordSaleHandler,
	wire.Struct(new(httpDelivery.Commands), "*"),
)

var QuerySet = wire.NewSet(
	query.NewSearchProductsHandler,
	query.NewListProductsHandler,
	query.NewProductsByCategoryHandler,
	query.NewPendingProductsHandler,
	query.NewGetProductForBuyerHandler,
	query.NewGetProductForSellerHandler,
	query.NewProductsByIDsHandler,
	query.NewCartItemHandler,
	query.NewProductIDsOfHandler,
	query.NewGetInventoryHandler,
	query.NewCategoryHierarchyHandler,
	query.NewSearchByKeywordHandler,
	query.NewSearchMineHandler,
	query.NewAutocompleteHandler,
	query.NewFilterProductsHandler,
	query.NewRecentKeywordsHandler,
	query.NewReviewsByProductHandler,
	query.NewReviewsByUserHandler,
	query.NewReviewedOrderItemsHandler,
	query.NewReviewSummaryHandler,
	query.NewSellerAddressesHandler,
	wire.Struct(new(httpDelivery.Queries), "*"),
)
