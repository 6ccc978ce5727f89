package config

const (
	EnvPrefix = "LAVKA"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv        = "LAVKA_APP_ENV"
	EnvPort          = "LAVKA_APP_PORT"
	EnvLogLevel      = "LAVKA_LOG_LEVEL"
	EnvStorageDriver = "LAVKA_STORAGE_DRIVER"

	EnvDBDSN  = "LAVKA_DB_DSN"
	EnvDBHost = "LAVKA_DB_HOST"
	EnvDBUser = "LAVKA_DB_USER"
	EnvDBName = "LAVKA_DB_NAME"

	EnvRedisURL  = "LAVKA_REDIS_URL"
	EnvRedisAddr = "LAVKA_REDIS_ADDR"

	EnvCheckoutFreeShippingThreshold = "LAVKA_CHECKOUT_FREE_SHIPPING_THRESHOLD"
	EnvCheckoutDeliveryFee           = "LAVKA_CHECKOUT_DELIVERY_FEE"
	EnvCheckoutProcessingDelay       = "LAVKA_CHECKOUT_PROCESSING_DELAY"

	EnvAdminIDs = "LAVKA_ADMIN_IDS"
)

var postgresPartEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
