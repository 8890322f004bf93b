package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/vibemarket/goapi/base/ctx"
	"github.com/vibemarket/goapi/base/database/mongoclient"
	"github.com/vibemarket/goapi/base/database/redisclient"
	"github.com/vibemarket/goapi/base/log"
	"github.com/vibemarket/goapi/base/metrics"
	bValidator "github.com/vibemarket/goapi/base/validator"
	"github.com/vibemarket/goapi/domain"
	"github.com/vibemarket/goapi/domain/listing"
	mmiddleware "github.com/vibemarket/goapi/middleware"
	"github.com/vibemarket/goapi/service/cache"
	"github.com/vibemarket/goapi/service/cache/provider"
	"github.com/vibemarket/goapi/service/cache/provider/compound"
	"github.com/vibemarket/goapi/service/cache/provider/primitive"
	cacheprovider "github.com/vibemarket/goapi/service/cache/provider/redis"
	"github.com/vibemarket/goapi/service/chain"
	"github.com/vibemarket/goapi/service/chain/contract"
	"github.com/vibemarket/goapi/service/indexer"
	"github.com/vibemarket/goapi/service/query"
	"github.com/vibemarket/goapi/service/redis"
	card_usecase "github.com/vibemarket/goapi/stores/card/usecase"
	hc_delivery "github.com/vibemarket/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/vibemarket/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/vibemarket/goapi/stores/healthcheck/usecase"
	inventory_delivery "github.com/vibemarket/goapi/stores/inventory/delivery/http"
	inventory_usecase "github.com/vibemarket/goapi/stores/inventory/usecase"
	listing_delivery "github.com/vibemarket/goapi/stores/listing/delivery/http"
	listing_repository "github.com/vibemarket/goapi/stores/listing/repository"
	listing_usecase "github.com/vibemarket/goapi/stores/listing/usecase"
	sync_delivery "github.com/vibemarket/goapi/stores/sync/delivery/http"
	sync_usecase "github.com/vibemarket/goapi/stores/sync/usecase"
	webhook_delivery "github.com/vibemarket/goapi/stores/webhook/delivery/http"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "path to config file")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	mmiddleware.SetupCache(redisCache)

	// init chain service
	networks := viper.Sub("networks")
	keys := networks.AllSettings()
	rpcs := make(map[int32]string)
	archiveRpcs := make(map[int32]string)
	for k := range keys {
		chainId := networks.GetInt32(fmt.Sprintf("%s.chainId", k))
		rpcs[chainId] = networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
		archiveRpcs[chainId] = networks.GetString(fmt.Sprintf("%s.archiveRpcUrl", k))
	}
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls:        rpcs,
		ArchiveRpcUrls: archiveRpcs,
	})
	if err != nil {
		context.WithField("err", err).Warn("chainService started with error")
	}
	marketplaceChainId := domain.ChainId(viper.GetInt32("marketplace.chainId"))
	marketplaceAddress := domain.Address(viper.GetString("marketplace.address")).ToLower()
	erc721Service := contract.NewErc721(chainService)
	marketplaceService := contract.NewMarketplace(chainService, marketplaceChainId, marketplaceAddress)

	// init indexer client
	httpTimeout := viper.GetDuration("http.timeout")
	indexerClient := indexer.NewClient(&indexer.ClientCfg{
		HttpClient: http.Client{},
		BaseUrl:    viper.GetString("indexer.baseUrl"),
		Timeout:    httpTimeout,
		ApiKeys:    viper.GetStringSlice("indexer.apiKeys"),
	})

	// construct repository, usecase and delivery
	var mongoClient *mongoclient.Client
	var listingRepo listing.Repo
	switch backend := viper.GetString("listings.backend"); backend {
	case "mongo":
		context.Info("init mongo")
		uri := viper.GetString("mongo.uri")
		authDBName := viper.GetString("mongo.authDBName")
		dbName := viper.GetString("mongo.dbName")
		enableSSL := viper.GetBool("mongo.enableSSL")
		checkIndex := viper.GetBool("mongo.checkIndex")
		mongoClient = mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
		q := query.New(mongoClient, checkIndex)
		listingRepo = listing_repository.NewMongoRepo(q)
	case "file":
		listingRepo = listing_repository.NewFileRepo(viper.GetString("listings.filePath"))
	default:
		context.WithField("backend", backend).Panic(domain.ErrUnsupportedBackend)
	}

	latestCache := cache.New(cache.ServiceConfig{
		Ttl: viper.GetDuration("listings.latestCacheDuration"),
		Pfx: "listings",
		Cache: compound.NewCompound([]provider.Provider{
			primitive.NewPrimitive("listings", 16),
			cacheprovider.NewRedis(redisCache),
		}),
	})

	resolver := card_usecase.New(indexerClient)
	listingUC := listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
		Repo:     listingRepo,
		Resolver: resolver,
		Erc721:   erc721Service,
		ChainId:  marketplaceChainId,
		Cache:    latestCache,
	})
	inventoryUC := inventory_usecase.New(indexerClient)
	syncUC := sync_usecase.New(&sync_usecase.SyncUseCaseCfg{
		ListingUC:   listingUC,
		Marketplace: marketplaceService,
		Chain:       chainService,
		ChainId:     marketplaceChainId,
		OwnedRefetch: func(c ctx.Ctx, owner domain.Address) (int, error) {
			items, err := inventoryUC.OwnedCards(c, owner)
			return len(items), err
		},
		VerifyDelay:  viper.GetDuration("marketplace.verifyDelay"),
		RefreshDelay: viper.GetDuration("marketplace.refreshDelay"),
	})
	hc := hc_usecase.New(hc_repo.New(mongoClient, redisCache))

	hc_delivery.New(e, hc)
	listing_delivery.New(e, listingUC)
	inventory_delivery.New(e, inventoryUC, viper.GetDuration("inventory.cacheDuration"))
	sync_delivery.New(e, syncUC)
	webhook_delivery.New(e, listingUC, marketplaceService)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
