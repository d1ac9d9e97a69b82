package ocr

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	amountRE  = regexp.MustCompile(`\d{1,3}(?:[.,]\d{3})+(?:[.,]\d{2})?|\d+[.,]\d{2}|\d{3,9}`)
	decimalRE = regexp.MustCompile(`[.,]\d{2}$`)
	keywordRE = regexp.MustCompile(`(?i)r\$|\$|total|valor|amount|pago`)
)

// maxPlausible guards against document ids and barcodes read as money.
const maxPlausible = 100_000_000

// ParseAmount normalizes a money-like token into a float: a trailing
// separator followed by exactly two digits is the decimal mark, every other
// separator is digit grouping. "1.234,56" and "1,234.56" both come out as
// 1234.56.
func ParseAmount(token string) (float64, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false
	}
	var intPart, decPart string
	if decimalRE.MatchString(token) {
		intPart = token[:len(token)-3]
		decPart = token[len(token)-2:]
	} else {
		intPart = token
	}
	digits := onlyDigits(intPart)
	if digits == "" {
		return 0, false
	}
	whole, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	if decPart != "" {
		frac, err := strconv.ParseFloat(decPart, 64)
		if err != nil {
			return 0, false
		}
		whole += frac / 100
	}
	return whole, true
}

// BestAmount picks the most likely amount in an OCR text dump. Candidates on
// lines carrying a currency marker or payment keyword win over bare numbers;
// ties go to the largest value.
func BestAmount(text string) (float64, string, bool) {
	var bestAny, bestKeyword float64
	var rawAny, rawKeyword string
	for _, line := range strings.Split(text, "\n") {
		hasKeyword := keywordRE.MatchString(line)
		for _, token := range amountRE.FindAllString(line, -1) {
			v, ok := ParseAmount(token)
			if !ok || v <= 0 || v >= maxPlausible {
				continue
			}
			if v > bestAny {
				bestAny, rawAny = v, token
			}
			if hasKeyword && v > bestKeyword {
				bestKeyword, rawKeyword = v, token
			}
		}
	}
	if bestKeyword > 0 {
		return bestKeyword, rawKeyword, true
	}
	if bestAny > 0 {
		return bestAny, rawAny, true
	}
	return 0, "", false
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
