package ddl

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/flext/flext-db-oracle/internal/dberr"
)

// EscapeIdentifier upper-cases an identifier and wraps it in double
// quotes, matching Oracle's unquoted-identifier storage convention.
// Embedded double quotes are doubled. Empty input is rejected.
func EscapeIdentifier(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", dberr.Validation("identifier must not be empty")
	}
	upper := strings.ToUpper(trimmed)
	return `"` + strings.ReplaceAll(upper, `"`, `""`) + `"`, nil
}

// escapeLiteral doubles single quotes for use inside a SQL string
// literal (comments, default values sourced from metadata).
func escapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// NormalizeSQL collapses all runs of whitespace to single spaces so
// textually different spellings of the same statement compare equal.
func NormalizeSQL(stmt string) string {
	return strings.Join(strings.Fields(stmt), " ")
}

// QueryHash returns the hex SHA-256 of the whitespace-normalized
// statement. Stable across reformatting of the same SQL.
func QueryHash(stmt string) string {
	sum := sha256.Sum256([]byte(NormalizeSQL(stmt)))
	return hex.EncodeToString(sum[:])
}
