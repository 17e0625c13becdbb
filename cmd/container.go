package main

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/hirematch/internal/metrics"
	"github.com/Abraxas-365/hirematch/pkg/config"
	"github.com/Abraxas-365/hirematch/pkg/fsx"
	"github.com/Abraxas-365/hirematch/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/hirematch/pkg/iam/auth"
	"github.com/Abraxas-365/hirematch/pkg/logx"
	"github.com/Abraxas-365/hirematch/recruitment/application"
	"github.com/Abraxas-365/hirematch/recruitment/application/applicationapi"
	"github.com/Abraxas-365/hirematch/recruitment/application/applicationinfra"
	"github.com/Abraxas-365/hirematch/recruitment/application/applicationsrv"
	"github.com/Abraxas-365/hirematch/recruitment/candidate/candidateapi"
	"github.com/Abraxas-365/hirematch/recruitment/candidate/candidateinfra"
	"github.com/Abraxas-365/hirematch/recruitment/candidate/candidatesrv"
	"github.com/Abraxas-365/hirematch/recruitment/job/jobapi"
	"github.com/Abraxas-365/hirematch/recruitment/job/jobinfra"
	"github.com/Abraxas-365/hirematch/recruitment/job/jobsrv"
	"github.com/Abraxas-365/hirematch/recruitment/savedsearch/savedsearchapi"
	"github.com/Abraxas-365/hirematch/recruitment/savedsearch/savedsearchinfra"
	"github.com/Abraxas-365/hirematch/recruitment/savedsearch/savedsearchsrv"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client
	Metrics    *metrics.Collector

	// Core IAM Services
	TokenService auth.TokenService

	// Recruitment Services
	JobService         *jobsrv.JobService
	CandidateService   *candidatesrv.CandidateService
	ApplicationService *applicationsrv.ApplicationService
	SavedSearchService *savedsearchsrv.SavedSearchService

	// API Handlers
	JobHandlers         *jobapi.Handlers
	CandidateHandlers   *candidateapi.Handlers
	ApplicationHandlers *applicationapi.Handlers
	SavedSearchHandlers *savedsearchapi.Handlers

	// Middleware
	UnifiedAuthMiddleware *auth.UnifiedAuthMiddleware
}

// NewContainer initializes the dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg, Metrics: metrics.Default()}
	if err := c.initInfrastructure(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.initServices()
	return c, nil
}

// Close releases the connections
func (c *Container) Close() {
	if c.DB != nil {
		_ = c.DB.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.Config

	// 1. Database Connection
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	c.DB = db

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := c.Redis.Ping(ctx).Err(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. Object Storage
	switch cfg.Storage.Driver {
	case "memory":
		logx.Warn("using in-memory storage, uploaded resumes are lost on restart")
		c.FileSystem = fsx.NewMemFileSystem()
	default:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Storage.Region))
		if err != nil {
			return fmt.Errorf("unable to load AWS SDK config: %w", err)
		}
		c.S3Client = s3.NewFromConfig(awsCfg)
		c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, cfg.Storage.Bucket, cfg.Storage.Prefix)
	}

	return nil
}

func (c *Container) initServices() {
	cfg := c.Config

	// --- Repositories ---
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)
	candidateRepo := candidateinfra.NewPostgresCandidateRepository(c.DB)
	applicationRepo := applicationinfra.NewPostgresApplicationRepository(c.DB)
	savedSearchRepo := savedsearchinfra.NewPostgresSavedSearchRepository(c.DB)

	// --- Messaging ---
	events := applicationinfra.NewRedisEventPublisher(c.Redis, cfg.Redis.Channel)
	notifier := savedsearchinfra.NewBreakerNotifier(
		savedsearchinfra.NewRedisNotifier(c.Redis, cfg.Redis.Queue),
		savedsearchinfra.BreakerSettings{
			Name:        "saved-search-notifier",
			MaxFailures: cfg.Notifier.MaxFailures,
			OpenTimeout: cfg.Notifier.OpenTimeout,
		},
	)

	// --- Token Service ---
	c.TokenService = auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)

	// --- Domain Services ---
	policy := application.PolicyFor(cfg.Pipeline.ForwardOnly)
	logx.Infof("application pipeline policy: %s", policy.Name())

	c.JobService = jobsrv.NewJobService(jobRepo, candidateRepo, applicationRepo, c.Metrics)
	c.CandidateService = candidatesrv.NewCandidateService(candidateRepo)
	c.ApplicationService = applicationsrv.NewApplicationService(
		applicationRepo,
		jobRepo,
		c.FileSystem,
		events,
		policy,
		c.Metrics,
		cfg.Storage.MaxUpload,
	)
	c.SavedSearchService = savedsearchsrv.NewSavedSearchService(
		savedSearchRepo,
		candidateRepo,
		notifier,
		c.Metrics,
	)

	// --- Handlers ---
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.CandidateHandlers = candidateapi.NewHandlers(c.CandidateService)
	c.ApplicationHandlers = applicationapi.NewHandlers(c.ApplicationService)
	c.SavedSearchHandlers = savedsearchapi.NewHandlers(c.SavedSearchService)

	// --- Middleware ---
	c.UnifiedAuthMiddleware = auth.NewUnifiedAuthMiddleware(c.TokenService)
}
