package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/recipe-app-api/config"
	"github.com/oksasatya/recipe-app-api/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client
	esClient    *elasticsearch.Client
	rabbitPub   *helpers.RabbitPublisher
	resetTokens *helpers.ResetTokenManager
)

func SetConfig(c *config.Config) { cfg = c }

func GetConfig() *config.Config { return cfg }

func SetLogger(l *logrus.Logger) { logger = l }

func GetLogger() *logrus.Logger { return logger }

func SetPGPool(p *pgxpool.Pool) { pgPool = p }

func GetPGPool() *pgxpool.Pool { return pgPool }

func SetRedis(r *redis.Client) { redisClient = r }

func GetRedis() *redis.Client { return redisClient }

func SetGCS(s *storage.Client) { gcsClient = s }

func GetGCS() *storage.Client { return gcsClient }

func SetES(c *elasticsearch.Client) { esClient = c }

func GetES() *elasticsearch.Client { return esClient }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }

func GetRabbitPub() *helpers.RabbitPublisher { return rabbitPub }

func SetResetTokens(m *helpers.ResetTokenManager) { resetTokens = m }

func GetResetTokens() *helpers.ResetTokenManager { return resetTokens }
