package main

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/width"
)

// ── Startup display helpers ────────────────────────────────────────

var numbers = message.NewPrinter(language.English)

func printBanner(mode string, seed uint64) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              spacesim  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      pooled objects · fixed-rate tick     \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mmode:\033[0m %s \033[90m(seed: %d)\033[0m\n\n", mode, seed)
}

// displayWidth counts terminal columns; East Asian wide runes take two.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func sectionLine(title string) string {
	lineLen := 46 - displayWidth(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	return fmt.Sprintf("  \033[33m── %s %s\033[0m", title, strings.Repeat("─", lineLen))
}

func printSection(title string) {
	fmt.Println(sectionLine(title))
}

func statLine(label string, count int) string {
	numStr := numbers.Sprintf("%d", count)
	dotsLen := 42 - displayWidth(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	return fmt.Sprintf("  %s \033[90m%s\033[0m \033[32m%s\033[0m", label, strings.Repeat("·", dotsLen), numStr)
}

func printStat(label string, count int) {
	fmt.Println(statLine(label, count))
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}
