package fetchable

import (
	"sync"
	"time"
)

// globalDefaults holds the default configuration applied to new clients.
var globalDefaults = &clientDefaults{
	timeout:     30 * time.Second,
	maxAttempts: 1,
	retryDelay:  100 * time.Millisecond,
}

// clientDefaults contains default configuration that can be applied to clients.
type clientDefaults struct {
	mu sync.RWMutex

	timeout     time.Duration
	headers     map[string]string
	success     func(status int) bool
	maxAttempts int
	retryDelay  time.Duration
	logger      Logger
}

// defaultSuccess is the success predicate used when none is configured:
// the conventional 2xx range.
func defaultSuccess(status int) bool {
	return status >= 200 && status < 300
}

// SetDefaults configures global defaults for all subsequently created clients.
func SetDefaults(opts ...Option) {
	globalDefaults.mu.Lock()
	defer globalDefaults.mu.Unlock()

	tempOpts := options{
		timeout:     globalDefaults.timeout,
		headers:     globalDefaults.headers,
		success:     globalDefaults.success,
		maxAttempts: globalDefaults.maxAttempts,
		retryDelay:  globalDefaults.retryDelay,
		logger:      globalDefaults.logger,
	}

	for _, opt := range opts {
		opt(&tempOpts)
	}

	globalDefaults.timeout = tempOpts.timeout
	globalDefaults.headers = tempOpts.headers
	globalDefaults.success = tempOpts.success
	if tempOpts.maxAttempts > 0 {
		globalDefaults.maxAttempts = tempOpts.maxAttempts
	}
	globalDefaults.retryDelay = tempOpts.retryDelay
	globalDefaults.logger = tempOpts.logger
}

// ResetDefaults resets all global defaults to their initial values.
func ResetDefaults() {
	globalDefaults.mu.Lock()
	defer globalDefaults.mu.Unlock()

	globalDefaults.timeout = 30 * time.Second
	globalDefaults.headers = nil
	globalDefaults.success = nil
	globalDefaults.maxAttempts = 1
	globalDefaults.retryDelay = 100 * time.Millisecond
	globalDefaults.logger = nil
}

// getDefaults returns a copy of the current global defaults.
func getDefaults() options {
	globalDefaults.mu.RLock()
	defer globalDefaults.mu.RUnlock()

	headers := make(map[string]string, len(globalDefaults.headers))
	for k, v := range globalDefaults.headers {
		headers[k] = v
	}

	return options{
		timeout:     globalDefaults.timeout,
		headers:     headers,
		success:     globalDefaults.success,
		maxAttempts: globalDefaults.maxAttempts,
		retryDelay:  globalDefaults.retryDelay,
		logger:      globalDefaults.logger,
	}
}
