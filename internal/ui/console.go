// Package ui renders the miner's console output: banner, search info,
// in-place progress line and result blocks. Everything here is
// cosmetic; nothing returns an error into the search.
package ui

import (
	"fmt"
	"time"

	"github.com/wenakita/saltmine/pkg/miner"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
	ColorPurple = "\033[35m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"
)

var spinners = []string{"◐", "◓", "◑", "◒"}

// PrintBanner shows the startup header.
func PrintBanner(version string) {
	fmt.Println()
	fmt.Printf("%s%s", ColorCyan, ColorBold)
	fmt.Println("  ╔══════════════════════════════════════════════╗")
	fmt.Println("  ║   saltmine - vanity address search engine    ║")
	fmt.Printf("  ║%s   CREATE2 salts · keypairs · v%-7s%s        ║\n", ColorYellow, version, ColorCyan+ColorBold)
	fmt.Println("  ╚══════════════════════════════════════════════╝")
	fmt.Print(ColorReset)
	fmt.Println()
}

// PrintSearchInfo displays the target pattern, pool size and expected
// number of attempts before the search starts.
func PrintSearchInfo(target string, workers int, difficulty uint64) {
	fmt.Printf("    %s🔍 SEARCHING%s %s%s%s │ %d workers %s(1/%s expected)%s\n\n",
		ColorGreen+ColorBold, ColorReset,
		ColorCyan+ColorBold, target, ColorReset,
		workers,
		ColorDim, FormatNumber(difficulty), ColorReset)
}

// PrintProgress rewrites the current line with a throughput snapshot.
func PrintProgress(st miner.Stats, frame int) {
	spinner := spinners[frame%len(spinners)]
	fmt.Printf("\r    %s%s%s %s%s%s │ %s%s attempts%s │ %s",
		ColorCyan, spinner, ColorReset,
		ColorGreen+ColorBold, FormatHashRate(st.Rate), ColorReset,
		ColorYellow, FormatNumber(st.Attempts), ColorReset,
		FormatDuration(st.Elapsed))
}

// ClearLine erases the in-place progress line.
func ClearLine() {
	fmt.Print("\r                                                                                \r")
}

// PrintResultHeader shows the success banner.
func PrintResultHeader() {
	fmt.Printf("\n\n    %s%s✨ MATCH FOUND%s\n\n", ColorGreen, ColorBold, ColorReset)
}

// PrintField shows one labelled result value.
func PrintField(label, value string) {
	fmt.Printf("    %s%-14s%s %s%s%s\n", ColorCyan+ColorBold, label, ColorReset, ColorGreen+ColorBold, value, ColorReset)
}

// PrintSecret shows one labelled sensitive value.
func PrintSecret(label, value string) {
	fmt.Printf("    %s%-14s%s %s%s%s\n", ColorPurple+ColorBold, label, ColorReset, ColorYellow, value, ColorReset)
}

// PrintSecretWarning reminds the operator to protect key material.
func PrintSecretWarning() {
	fmt.Printf("    %s%s⚠  KEEP YOUR PRIVATE KEY SECRET!%s\n", ColorRed, ColorBold, ColorReset)
}

// PrintRunStats shows the closing attempt/time/rate summary.
func PrintRunStats(attempts uint64, elapsed time.Duration) {
	var rate float64
	if s := elapsed.Seconds(); s > 0 {
		rate = float64(attempts) / s
	}
	fmt.Printf("\n    %s⏱  %s%s   %s│%s   📊 %s%s attempts%s   %s│%s   %s%s%s\n\n",
		ColorCyan, ColorReset+ColorBold, FormatDuration(elapsed),
		ColorDim, ColorReset,
		ColorBold, FormatNumber(attempts), ColorReset,
		ColorDim, ColorReset,
		ColorBold, FormatHashRate(rate), ColorReset)
}

// PrintCancelled shows the interrupted-run summary.
func PrintCancelled(attempts uint64, elapsed time.Duration) {
	fmt.Printf("\n\n    %s⚠ Cancelled%s │ %s attempts │ %s\n",
		ColorYellow+ColorBold, ColorReset,
		FormatNumber(attempts),
		FormatDuration(elapsed))
}

// PrintExhausted shows the clean no-match outcome.
func PrintExhausted(attempts uint64, elapsed time.Duration) {
	fmt.Printf("\n\n    %s∅ Keyspace exhausted, no match%s │ %s attempts │ %s\n",
		ColorRed+ColorBold, ColorReset,
		FormatNumber(attempts),
		FormatDuration(elapsed))
}

// FormatHashRate formats a rate nicely.
func FormatHashRate(rate float64) string {
	if rate >= 1000000 {
		return fmt.Sprintf("%.1fM/s", rate/1000000)
	}
	if rate >= 1000 {
		return fmt.Sprintf("%.1fK/s", rate/1000)
	}
	return fmt.Sprintf("%.0f/s", rate)
}

// FormatNumber adds commas to large numbers.
func FormatNumber(n uint64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	s := fmt.Sprintf("%d", n)
	result := make([]byte, 0, len(s)+(len(s)-1)/3)
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

// FormatDuration formats a duration in a human-readable way.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}
