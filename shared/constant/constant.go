package constant

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyRequestID contextKey = "request_id"
)

const (
	LogFieldRequestID = "request_id"
	LogFieldGuildID   = "guild_id"
	LogFieldPerson    = "person"
	LogFieldTimezone  = "timezone"
	LogFieldPath      = "path"
	LogFieldChannelID = "channel_id"
)

const (
	RequestParamGuildID = "guildID"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelDiscordScopeName    = "discord"
	OtelS3ScopeName         = "s3"
)

const (
	RequestHeaderContentType  = "Content-Type"
	RequestHeaderUserAgent    = "User-Agent"
	RequestHeaderRateLimit    = "X-RateLimit-Limit"
	RequestHeaderRateLimitRem = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWin = "X-RateLimit-Window"
	RequestHeaderRetryAfter   = "Retry-After"
	RequestHeaderRequestID    = "X-Request-ID"
	RequestHeaderForwardedFor = "X-Forwarded-For"
	RequestHeaderRealIP       = "X-Real-IP"
	RequestHeaderAPIKey       = "X-API-Key"
)

const (
	ContentTypeJSON = "application/json"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Empty = ""
)
