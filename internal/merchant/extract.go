package merchant

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Alert holds what could be read from a transaction alert without asking
// the categorization agent.
type Alert struct {
	Vendor    string          // Raw vendor as written in the alert, not normalized
	Amount    decimal.Decimal // Spent amount, only valid if HasAmount is true
	HasAmount bool
}

var (
	amountPattern = regexp.MustCompile(`(?i)(?:SGD|USD|EUR|GBP|MYR|AUD|S\$|US\$|A\$|\$|€|£)\s?([0-9]{1,3}(?:,[0-9]{3})+(?:\.[0-9]{1,2})?|[0-9]+(?:\.[0-9]{1,2})?)`)

	// Labelled lines like "Merchant: NTUC FAIRPRICE" are the most reliable source
	labelPattern = regexp.MustCompile(`(?im)^\s*(?:merchant|payee|to)\s*:\s*(.+?)\s*$`)

	atPattern = regexp.MustCompile(`(?i)\bat\s+`)
	toPattern = regexp.MustCompile(`(?i)\bto\s+`)

	// Marks where a vendor name following "at" or "to" ends
	endPattern = regexp.MustCompile(`(?i)\s+(?:on|using|for|at|via)\s+|\.\s|\.$|,|\n|\(`)
)

// Extract reads the vendor and amount from the subject and body of a bank
// transaction alert. Fields that cannot be found are left empty.
func Extract(subject, body string) Alert {
	var alert Alert

	for _, text := range []string{subject, body} {
		if m := amountPattern.FindStringSubmatch(text); m != nil {
			amount, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
			if err == nil {
				alert.Amount = amount
				alert.HasAmount = true
				break
			}
		}
	}

	if m := labelPattern.FindStringSubmatch(body); m != nil {
		alert.Vendor = cleanVendor(m[1])
		return alert
	}

	for _, pattern := range []*regexp.Regexp{atPattern, toPattern} {
		for _, text := range []string{subject, body} {
			if v := firstVendor(pattern, text); v != "" {
				alert.Vendor = v
				return alert
			}
		}
	}

	return alert
}

// firstVendor returns the first text following the pattern that looks like a
// merchant name. Times ("at 14:23") and amounts ("to SGD 20") are skipped.
func firstVendor(pattern *regexp.Regexp, text string) string {
	for _, loc := range pattern.FindAllStringIndex(text, -1) {
		rest := text[loc[1]:]
		if end := endPattern.FindStringIndex(rest); end != nil {
			rest = rest[:end[0]]
		}

		candidate := cleanVendor(rest)
		if candidate == "" {
			continue
		}

		if candidate[0] >= '0' && candidate[0] <= '9' {
			continue
		}

		if amountPattern.MatchString(candidate) {
			continue
		}

		return candidate
	}

	return ""
}

func cleanVendor(s string) string {
	return strings.Trim(strings.TrimSpace(s), ".,;:")
}
