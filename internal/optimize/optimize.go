// Package optimize performs heuristic static analysis of SQL
// statements. It never talks to the database: findings are textual
// hints, not execution-plan facts.
package optimize

import (
	"regexp"
	"strings"

	"github.com/flext/flext-db-oracle/internal/dberr"
	"github.com/flext/flext-db-oracle/internal/ddl"
)

// Severity ranks a finding.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Finding is one suggestion produced by Analyze.
type Finding struct {
	Severity Severity `yaml:"severity" json:"severity"`
	Rule     string   `yaml:"rule" json:"rule"`
	Message  string   `yaml:"message" json:"message"`
}

// Report is the outcome of analyzing one statement.
type Report struct {
	Statement string    `yaml:"statement" json:"statement"`
	Hash      string    `yaml:"hash" json:"hash"`
	Findings  []Finding `yaml:"findings" json:"findings"`
}

var leadingWildcard = regexp.MustCompile(`(?i)LIKE\s+'%`)

// Analyze inspects a statement and returns its findings together with
// the whitespace-stable statement hash.
func Analyze(stmt string) (*Report, error) {
	normalized := ddl.NormalizeSQL(stmt)
	if normalized == "" {
		return nil, dberr.Validation("statement must not be empty")
	}

	report := &Report{
		Statement: normalized,
		Hash:      ddl.QueryHash(stmt),
	}
	upper := strings.ToUpper(normalized)

	if strings.HasPrefix(upper, "SELECT *") || strings.Contains(upper, "SELECT * FROM") {
		report.add(SeverityWarning, "select-star",
			"SELECT * fetches every column; name the columns you need")
	}

	if (strings.HasPrefix(upper, "UPDATE ") || strings.HasPrefix(upper, "DELETE ")) &&
		!strings.Contains(upper, " WHERE ") {
		report.add(SeverityWarning, "unbounded-dml",
			"UPDATE/DELETE without WHERE touches every row in the table")
	}

	if strings.HasPrefix(upper, "SELECT") && !strings.Contains(upper, " WHERE ") &&
		!strings.Contains(upper, " ROWNUM") && !strings.Contains(upper, " FETCH FIRST") {
		report.add(SeverityInfo, "full-scan",
			"no WHERE clause or row limit; the statement scans the full table")
	}

	if leadingWildcard.MatchString(normalized) {
		report.add(SeverityWarning, "leading-wildcard",
			"LIKE with a leading % defeats index range scans")
	}

	if strings.Contains(upper, "NVL(") && strings.Contains(upper, " WHERE ") {
		report.add(SeverityInfo, "function-predicate",
			"functions like NVL in predicates can disable index use; consider function-based indexes")
	}

	if strings.Contains(upper, " OR ") {
		report.add(SeverityInfo, "or-predicate",
			"OR chains may prevent index merging; consider UNION ALL for selective branches")
	}

	return report, nil
}

func (r *Report) add(sev Severity, rule, msg string) {
	r.Findings = append(r.Findings, Finding{Severity: sev, Rule: rule, Message: msg})
}
