// Package ui provides styled console output for the Milo backend:
// colorized status badges for key rotation, cache hits and lifecycle events.
package ui

import (
	"fmt"
	"time"

	"github.com/fatih/color"
)

var (
	successBadge = color.New(color.BgGreen, color.FgBlack, color.Bold)
	warningBadge = color.New(color.FgYellow, color.Bold)
	errorBadge   = color.New(color.BgRed, color.FgWhite, color.Bold)
	infoBadge    = color.New(color.FgCyan, color.Bold)

	successText = color.New(color.FgGreen, color.Bold)
	warningText = color.New(color.FgYellow)
	mutedText   = color.New(color.FgHiBlack)
	accentText  = color.New(color.FgMagenta, color.Bold)
	neonBlue    = color.New(color.FgHiCyan, color.Bold)
)

// PrintSwitching logs a key failover with warning styling.
// Format: ⚠️ [SWITCHING] fromKey → toKey
func PrintSwitching(fromKey, toKey string) {
	fmt.Print("⚠️  ")
	warningBadge.Print("[SWITCHING]")
	fmt.Print(" ")
	mutedText.Print(maskKeyShort(fromKey))
	warningText.Print(" → ")
	accentText.Println(maskKeyShort(toKey))
}

// PrintCacheHit logs an intent-cache hit with lightning styling.
func PrintCacheHit(cacheKey string, latency time.Duration) {
	neonBlue.Print("⚡ CACHE HIT ")
	fmt.Print("| key:")
	mutedText.Print(maskKeyShort(cacheKey))
	fmt.Print(" | ")
	successText.Printf("%dms\n", latency.Milliseconds())
}

// PrintStartupInfo prints styled server startup information.
func PrintStartupInfo(host string, port int, provider string, keys int) {
	fmt.Println()
	infoBadge.Print("[MILO]")
	fmt.Print(" Server starting on ")
	neonBlue.Printf("http://%s:%d\n", host, port)

	infoBadge.Print("[MILO]")
	fmt.Print(" Provider: ")
	accentText.Print(provider)
	fmt.Print(" | API keys: ")
	if keys > 0 {
		successText.Printf("%d\n", keys)
	} else {
		errorBadge.Printf(" %d \n", keys)
	}
	fmt.Println()
}

// PrintShutdown prints a styled shutdown message.
func PrintShutdown() {
	fmt.Println()
	warningBadge.Print("[SHUTDOWN]")
	warningText.Println(" Graceful shutdown initiated...")
}

// PrintGoodbye prints a styled goodbye message.
func PrintGoodbye() {
	successBadge.Print(" OK ")
	fmt.Print(" ")
	successText.Println("Server stopped. Goodbye! 👋")
}

// maskKeyShort returns a short masked version of an API key or digest.
// Format: xxxx...xxxx
func maskKeyShort(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "***"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
