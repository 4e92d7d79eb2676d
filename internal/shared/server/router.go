package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"retrofit-backend/internal/assumptions"
	"retrofit-backend/internal/cards"
	"retrofit-backend/internal/catalog"
	"retrofit-backend/internal/classify"
	"retrofit-backend/internal/incentives"
	"retrofit-backend/internal/recommendations"
	"retrofit-backend/internal/services/health"
	"retrofit-backend/internal/shared/config"
	"retrofit-backend/internal/shared/metrics"
	"retrofit-backend/internal/shared/server/middleware"
	"retrofit-backend/internal/shared/server/respond"
	"retrofit-backend/internal/shared/storage/db"
	"retrofit-backend/internal/snapshots"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
// Without a reachable database every repo falls back to its in-memory
// implementation, which keeps local development and tests database-free.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var snapshotRepo snapshots.Repo
	var catalogRepo catalog.Repo
	var assumptionRepo assumptions.Repo
	var incentiveRepo incentives.Repo
	var recRepo recommendations.Repo
	if sqlDB != nil {
		snapshotRepo = &snapshots.PGRepo{DB: sqlDB}
		catalogRepo = &catalog.PGRepo{DB: sqlDB}
		assumptionRepo = &assumptions.PGRepo{DB: sqlDB}
		incentiveRepo = &incentives.PGRepo{DB: sqlDB}
		recRepo = &recommendations.PGRepo{DB: sqlDB}
	} else {
		snapshotRepo = snapshots.NewMemoryRepo()
		catalogRepo = catalog.NewMemoryRepo()
		assumptionRepo = assumptions.NewMemoryRepo()
		incentiveRepo = incentives.NewMemoryRepo()
		recRepo = recommendations.NewMemoryRepo()
	}

	classifier := classify.NewClassifier(catalogRepo)
	persister := recommendations.NewPersister(snapshotRepo, recRepo)
	assembler := cards.NewAssembler(recRepo, catalogRepo, assumptionRepo, incentives.NewResolver(incentiveRepo))

	snapshotHandler := snapshots.NewHandler(snapshotRepo)
	recHandler := recommendations.NewHandler(classifier, persister)
	cardHandler := cards.NewHandler(assembler, snapshotRepo)

	healthSvc := health.NewService()

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	snapshotHandler.RegisterRoutes(api)
	recHandler.RegisterRoutes(api)
	cardHandler.RegisterRoutes(api)

	r.GET("/metrics", metrics.Handler())

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
