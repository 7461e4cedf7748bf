package commands

import (
	"encoding/json"
	"fmt"
	"os"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

// printHeader prints a section header
func printHeader(title string) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  %s\n", title)
	fmt.Println("───────────────────────────────────────────────────────────")
}

// printFooter closes a section
func printFooter() {
	fmt.Println("═══════════════════════════════════════════════════════════")
}

// printRow prints an aligned label/value row
func printRow(label string, format string, args ...interface{}) {
	fmt.Printf("  %-22s : ", label)
	fmt.Printf(format+"\n", args...)
}

// pct formats a fraction as a percentage string
func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// money formats a currency amount
func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// printJSON dumps a value as indented JSON to stdout
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
