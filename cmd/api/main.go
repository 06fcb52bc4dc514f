package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/roadtrippi/roadtrippi-backend/internal/config"
	"github.com/roadtrippi/roadtrippi-backend/internal/logging"
	"github.com/roadtrippi/roadtrippi-backend/internal/repository/postgres"
	"github.com/roadtrippi/roadtrippi-backend/internal/service"
	transport "github.com/roadtrippi/roadtrippi-backend/internal/transport/http"
	"github.com/roadtrippi/roadtrippi-backend/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr, logging.DefaultWriterConfig())
		if err != nil {
			log.Printf("logstash writer disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer db.Close()

	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.ElasticsearchAddresses,
		Username:  cfg.ElasticsearchUsername,
		Password:  cfg.ElasticsearchPassword,
	})
	if err != nil {
		log.Printf("elasticsearch client disabled: %v", err)
		esClient = nil
	}

	attractionRepo := postgres.NewAttractionRepo(db)
	checkInRepo := postgres.NewCheckInRepo(db)
	listRepo := postgres.NewListRepo(db)
	followRepo := postgres.NewFollowRepo(db)
	likeRepo := postgres.NewLikeRepo(db)
	checkInCommentRepo := postgres.NewCheckInCommentRepo(db)
	listCommentRepo := postgres.NewListCommentRepo(db)
	userRepo := postgres.NewUserRepo(db)
	viewStatsRepo := postgres.NewViewStatsRepo(db)

	jwtManager := util.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)

	authService := service.NewAuthService(userRepo, jwtManager)
	attractionService := service.NewAttractionService(attractionRepo)
	checkInService := service.NewCheckInService(checkInRepo, attractionRepo)
	listService := service.NewListService(listRepo, attractionRepo)
	followService := service.NewFollowService(followRepo, userRepo)
	likeService := service.NewLikeService(likeRepo, checkInRepo, listRepo)
	commentService := service.NewCommentService(checkInCommentRepo, listCommentRepo, checkInRepo, listRepo)
	inboxService := service.NewInboxService(checkInRepo, listRepo, likeRepo, checkInCommentRepo, listCommentRepo, followRepo)
	viewStatsService := service.NewViewStatsService(viewStatsRepo, esClient, service.ViewStatsConfig{
		LogIndex: cfg.RequestLogIndex,
		CacheTTL: cfg.ViewStatsCacheTTL,
	})

	e := transport.NewRouter(cfg.AllowOrigins)

	transport.RegisterAuth(e, authService)
	transport.RegisterAttractions(e, attractionService, viewStatsService)
	transport.RegisterCheckIns(e, authService, checkInService)
	transport.RegisterLists(e, authService, listService)
	transport.RegisterFollows(e, authService, followService)
	transport.RegisterLikes(e, authService, likeService)
	transport.RegisterComments(e, authService, commentService)
	transport.RegisterInbox(e, authService, inboxService)
	transport.RegisterSwagger(e)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go viewStatsService.RunRollup(ctx, cfg.ViewStatsRollupInterval)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
