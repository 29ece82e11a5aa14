package deck

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ContentSeparator joins side values when a tile renders more than one side.
const ContentSeparator = "\n"

// Compose renders the content for a tile showing the given sides of a card.
//
// The result is NFC normalized so that content written to storage compares
// byte-for-byte with content composed from the same deck later - combining
// characters in authored deck text must not make a restored grid diverge
// from a freshly generated one.
func Compose(c Card, sides []string) string {
	values := make([]string, len(sides))
	for i, side := range sides {
		values[i] = c.Side(side)
	}
	return norm.NFC.String(strings.Join(values, ContentSeparator))
}
