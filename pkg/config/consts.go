package config

// EnvPrefix is handed to envconfig; explicit envconfig tags below carry the
// full variable names, so the prefix only matters for untagged fields.
const EnvPrefix = "feastly"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "FEASTLY_DB_DSN"
	EnvDBHost = "FEASTLY_DB_HOST"
	EnvDBUser = "FEASTLY_DB_USER"
	EnvDBName = "FEASTLY_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
