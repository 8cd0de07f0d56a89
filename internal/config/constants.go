package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout for health checks
const DBPingTimeout = 5 * time.Second

// Background job intervals
const CleanupJobInterval = 5 * time.Minute

// Invite assets expire on their own as a backstop for blobs orphaned
// between unhost and the deferred asset deletion.
const InviteAssetTTL = 7 * 24 * time.Hour

// Store operation bounds
const (
	StoreOpTimeout = 5 * time.Second
	CASMaxRetries  = 5
	ScanBatchSize  = 100
)

// Deferred job queue sizing
const (
	JobQueueCapacity = 256
	JobWorkerCount   = 4
	JobMaxAttempts   = 3
	JobRetryBackoff  = 2 * time.Second
	JobTimeout       = 30 * time.Second
)
