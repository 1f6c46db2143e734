package greatschools

const Version = "0.1.0"

const (
	DefaultHostname       = "api.greatschools.org"
	DefaultTimeoutSeconds = 180
	DefaultUserAgent      = "Mozilla/5.0 (compatible; greatschools/" + Version + ";)"
)
