// Package errors - hook and scrubbing support
package errors

import (
	"regexp"
	"sync"
	"sync/atomic"
)

// ErrorHook is called for every error built while at least one hook is registered
type ErrorHook func(ee *EnhancedError)

var (
	hooksMu        sync.RWMutex
	errorHooks     []ErrorHook
	hasActiveHooks atomic.Bool
)

// AddErrorHook registers a hook that observes built errors.
// Hooks run synchronously inside Build and must not block.
func AddErrorHook(hook ErrorHook) {
	if hook == nil {
		return
	}
	hooksMu.Lock()
	defer hooksMu.Unlock()
	errorHooks = append(errorHooks, hook)
	hasActiveHooks.Store(true)
}

// ClearErrorHooks removes all registered hooks
func ClearErrorHooks() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	errorHooks = nil
	hasActiveHooks.Store(false)
}

func runHooks(ee *EnhancedError) {
	hooksMu.RLock()
	hooks := errorHooks
	hooksMu.RUnlock()

	for _, hook := range hooks {
		hook(ee)
	}
}

// Precompiled scrubbing patterns
var (
	urlQueryRegex = regexp.MustCompile(`(https?://[^?\s"]+)\?[^\s"]*`)
	secretRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)appid[=:][^&\s"]+`),
		regexp.MustCompile(`(?i)api[_-]?key[=:][^&\s"]+`),
		regexp.MustCompile(`(?i)token[=:][^&\s"]+`),
		regexp.MustCompile(`[0-9a-fA-F]{32,}`),
	}
)

// ScrubMessage removes query strings and credential-looking values from a message
// before it leaves the process (log files, hook consumers).
func ScrubMessage(message string) string {
	scrubbed := urlQueryRegex.ReplaceAllString(message, "$1?[REDACTED]")
	for _, re := range secretRegexes {
		scrubbed = re.ReplaceAllString(scrubbed, "[API_KEY_REDACTED]")
	}
	return scrubbed
}
