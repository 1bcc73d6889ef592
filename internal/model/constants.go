package model

import "time"

const DefaultTimeout = 500 * time.Millisecond
const DefaultLockTimeout = 2 * time.Second
const DefaultLockAttempts = 3
const DefaultWorkerCountMultiplier = 8
const DefaultSweepInFlight = 64

const HeaderContentType = "Content-Type"

type ContextKey string

const (
	KeyContextLogger   ContextKey = "logger"
	KeyContextTenantID ContextKey = "tenant_id"
)

const KeyLoggerError = "error"

// DefaultRetryBackoff is the first pause before retrying a busy account;
// later pauses grow linearly.
const DefaultRetryBackoff = 50 * time.Millisecond

const DefaultShutdownTimeout = 10 * time.Second
