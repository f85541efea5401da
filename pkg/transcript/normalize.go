package transcript

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var punctuationFolds = strings.NewReplacer(
	"‘", "'", "’", "'",
	"“", `"`, "”", `"`,
	"–", "-", "—", "-",
)

// Normalize prepares text for case-insensitive keyword matching
func Normalize(text string) string {
	folded := cases.Fold().String(norm.NFKC.String(text))
	return punctuationFolds.Replace(folded)
}

// Fingerprint identifies a transcript independently of casing and whitespace
func Fingerprint(text string) string {
	canonical := strings.Join(strings.Fields(Normalize(text)), " ")
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
