package config

// EnvPrefix is the envconfig prefix shared by every STOCKLINE_* variable.
const EnvPrefix = "stockline"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "STOCKLINE_DB_DSN"
	EnvDBHost = "STOCKLINE_DB_HOST"
	EnvDBUser = "STOCKLINE_DB_USER"
	EnvDBName = "STOCKLINE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
