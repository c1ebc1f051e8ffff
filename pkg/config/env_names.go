package config

// EnvPrefix namespaces every environment variable consumed by the API.
const EnvPrefix = "LUCKBANK"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "LUCKBANK_APP_ENV"
	EnvAppPort  = "LUCKBANK_APP_PORT"
	EnvLogLevel = "LUCKBANK_LOG_LEVEL"

	EnvMongoURL      = "LUCKBANK_MONGO_URL"
	EnvMongoDatabase = "LUCKBANK_MONGO_DATABASE"
	EnvMongoTLS      = "LUCKBANK_MONGO_TLS"
	EnvMongoCAFile   = "LUCKBANK_MONGO_CA_FILE"

	EnvRedisURL = "LUCKBANK_REDIS_URL"

	EnvJWTSecret        = "LUCKBANK_JWT_SECRET"
	EnvJWTIssuer        = "LUCKBANK_JWT_ISSUER"
	EnvAccessTokenMins  = "LUCKBANK_ACCESS_TOKEN_EXPIRES_IN"
	EnvRefreshTokenMins = "LUCKBANK_REFRESH_TOKEN_EXPIRES_IN"
)
