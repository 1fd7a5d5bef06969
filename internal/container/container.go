package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/growth-partner/config"
	"github.com/oksasatya/growth-partner/pkg/helpers"
)

// app-level container to share constructed components across packages.
// Optional infrastructure (GCS, RabbitMQ, Elasticsearch) stays nil when it is
// not configured; the router checks before wiring it.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	db          *sqlx.DB
	redisClient *redis.Client
	gcsClient   *storage.Client
	rabbitPub   *helpers.RabbitPublisher
	esClient    *elasticsearch.Client
)

func SetConfig(c *config.Config)              { cfg = c }
func GetConfig() *config.Config               { return cfg }
func SetLogger(l *logrus.Logger)              { logger = l }
func GetLogger() *logrus.Logger               { return logger }
func SetPGPool(p *pgxpool.Pool)               { pgPool = p }
func GetPGPool() *pgxpool.Pool                { return pgPool }
func SetDB(d *sqlx.DB)                        { db = d }
func GetDB() *sqlx.DB                         { return db }
func SetRedis(r *redis.Client)                { redisClient = r }
func GetRedis() *redis.Client                 { return redisClient }
func SetGCS(s *storage.Client)                { gcsClient = s }
func GetGCS() *storage.Client                 { return gcsClient }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
