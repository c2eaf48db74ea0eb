package config

const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	StorageBackendFile   = "file"
	StorageBackendMemory = "memory"
	StorageBackendRedis  = "redis"
	StorageBackendSQL    = "sql"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv         = "STOREFRONT_APP_ENV"
	EnvLogLevel       = "STOREFRONT_LOG_LEVEL"
	EnvStorageBackend = "STOREFRONT_STORAGE_BACKEND"
	EnvStorageFile    = "STOREFRONT_STORAGE_FILE"
	EnvDBDSN          = "STOREFRONT_DB_DSN"
	EnvDBDriver       = "STOREFRONT_DB_DRIVER"
	EnvDBHost         = "STOREFRONT_DB_HOST"
	EnvDBPort         = "STOREFRONT_DB_PORT"
	EnvDBUser         = "STOREFRONT_DB_USER"
	EnvDBPassword     = "STOREFRONT_DB_PASSWORD"
	EnvDBName         = "STOREFRONT_DB_NAME"
	EnvRedisURL       = "STOREFRONT_REDIS_URL"
	EnvRedisAddr      = "STOREFRONT_REDIS_ADDR"
	EnvWhatsAppPhone  = "STOREFRONT_WHATSAPP_PHONE"
	EnvLanguage       = "STOREFRONT_LANGUAGE"
)

var postgresPartEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
