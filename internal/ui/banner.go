// Package ui provides styled console output for the Milo backend.
package ui

import (
	"fmt"

	"github.com/fatih/color"
)

// PrintBanner displays the startup banner.
func PrintBanner() {
	cyan := color.New(color.FgCyan, color.Bold)
	magenta := color.New(color.FgMagenta, color.Bold)
	dim := color.New(color.FgHiBlack)

	fmt.Println()
	cyan.Println("╔══════════════════════════════════════════════╗")
	cyan.Print("║  ")
	magenta.Print("MILO")
	fmt.Print(" · Sui wallet assistant backend")
	dim.Print("  v1.0.0")
	cyan.Println("  ║")
	cyan.Println("╚══════════════════════════════════════════════╝")
	fmt.Println()
}
