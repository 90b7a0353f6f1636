package config

const EnvPrefix = "BREWCART"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv          = "BREWCART_APP_ENV"
	EnvPort            = "BREWCART_APP_PORT"
	EnvLogLevel        = "BREWCART_LOG_LEVEL"
	EnvStorageDriver   = "BREWCART_STORAGE_DRIVER"
	EnvStorageStateTTL = "BREWCART_STORAGE_STATE_TTL"
	EnvDBDSN           = "BREWCART_DB_DSN"
	EnvDBHost          = "BREWCART_DB_HOST"
	EnvDBUser          = "BREWCART_DB_USER"
	EnvDBPassword      = "BREWCART_DB_PASSWORD"
	EnvDBName          = "BREWCART_DB_NAME"
	EnvRedisURL        = "BREWCART_REDIS_URL"
	EnvRedisAddr       = "BREWCART_REDIS_ADDR"
	EnvCatalogSource   = "BREWCART_CATALOG_SOURCE"
	EnvCatalogTimeout  = "BREWCART_CATALOG_TIMEOUT"
	EnvCurrency        = "BREWCART_CURRENCY"
	EnvMaintenanceTick = "BREWCART_MAINTENANCE_INTERVAL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
