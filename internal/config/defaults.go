package config

const (
	defaultMappingFile    = "cloudinary_event_mapping.json"
	defaultSiteDir        = "."
	defaultCloudName      = "du0lumtob"
	defaultFolderPrefix   = "archived-events"
	defaultAPIBaseURL     = "https://api.cloudinary.com"
	defaultPageSize       = 500
	defaultRequestTimeout = 15
	defaultRetryAttempts  = 4
	defaultSiteTitle      = "Events Gallery"
	defaultSiteSubtitle   = "Sanskriti & Sanskar - Celebrating Indian Culture in the Netherlands"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			MappingFile: defaultMappingFile,
			SiteDir:     defaultSiteDir,
		},
		Cloudinary: Cloudinary{
			CloudName:      defaultCloudName,
			FolderPrefix:   defaultFolderPrefix,
			BaseURL:        defaultAPIBaseURL,
			PageSize:       defaultPageSize,
			RequestTimeout: defaultRequestTimeout,
			RetryAttempts:  defaultRetryAttempts,
		},
		Site: Site{
			Title:    defaultSiteTitle,
			Subtitle: defaultSiteSubtitle,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
