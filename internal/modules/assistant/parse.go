package assistant

import (
	"strings"

	"github.com/shopspring/decimal"
)

const tokenPunctuation = ".,;:!?()\"[]{}"

// fields are the literal values pulled out of a query.
type fields struct {
	maxPrice  *decimal.Decimal
	size      string
	promoCode string
}

func extractFields(text string) fields {
	lower := strings.ToLower(text)
	return fields{
		maxPrice:  parsePriceCeiling(lower),
		size:      parseSize(lower),
		promoCode: parsePromoCode(text),
	}
}

// parsePriceCeiling reads the amount after the first "under" that is
// followed by a number, e.g. "under $40" -> 40.
func parsePriceCeiling(lower string) *decimal.Decimal {
	words := strings.Fields(lower)
	for i, w := range words {
		if trimToken(w) != "under" || i+1 >= len(words) {
			continue
		}
		raw := strings.TrimPrefix(trimToken(words[i+1]), "$")
		if d, err := decimal.NewFromString(raw); err == nil {
			return &d
		}
	}
	return nil
}

// parseSize returns the token after the first "size", e.g. "size S." -> "s".
func parseSize(lower string) string {
	words := strings.Fields(lower)
	for i, w := range words {
		if trimToken(w) == "size" && i+1 < len(words) {
			return trimToken(words[i+1])
		}
	}
	return ""
}

// parsePromoCode returns the text between the first two single quotes.
// Case is preserved.
func parsePromoCode(text string) string {
	parts := strings.SplitN(text, "'", 3)
	if len(parts) < 3 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func trimToken(w string) string {
	return strings.Trim(w, tokenPunctuation)
}
