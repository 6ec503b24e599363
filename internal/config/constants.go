package config

// Environment variable names
const (
	EnvSlintFile      = "QUICKFINDR_SLINT_FILE"
	EnvFavoritesFile  = "QUICKFINDR_FAVORITES_FILE"
	EnvPrunePrefixes  = "QUICKFINDR_PRUNE_PREFIXES"
	EnvRecentLimit    = "QUICKFINDR_RECENT_LIMIT"
	EnvBackup         = "QUICKFINDR_BACKUP"
	EnvLogLevel       = "LOG_LEVEL"
	EnvLogFormat      = "LOG_FORMAT"
	EnvEnvironment    = "ENVIRONMENT"
	EnvServiceVersion = "VERSION"
)

// Defaults for the one machine these repairs were written against
const (
	DefaultSlintFile     = `c:\Users\dimfo\Documents\Projects\quick-findr\ui\app_window.slint`
	DefaultPrunePrefixes = "/test/path"
	DefaultRecentLimit   = 10
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultEnvironment   = "dev"
	DefaultVersion       = "dev"
)
