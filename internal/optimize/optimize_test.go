package optimize

import "testing"

func hasRule(r *Report, rule string) bool {
	for _, f := range r.Findings {
		if f.Rule == rule {
			return true
		}
	}
	return false
}

func TestAnalyze_Empty(t *testing.T) {
	if _, err := Analyze("   "); err == nil {
		t.Fatal("expected error for blank statement")
	}
}

func TestAnalyze_SelectStar(t *testing.T) {
	r, err := Analyze("SELECT * FROM employees WHERE id = 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hasRule(r, "select-star") {
		t.Errorf("expected select-star finding, got %+v", r.Findings)
	}
	if hasRule(r, "full-scan") {
		t.Error("statement has a WHERE clause; no full-scan finding expected")
	}
}

func TestAnalyze_UnboundedDML(t *testing.T) {
	r, _ := Analyze("DELETE FROM audit_log")
	if !hasRule(r, "unbounded-dml") {
		t.Errorf("expected unbounded-dml finding, got %+v", r.Findings)
	}

	r, _ = Analyze("DELETE FROM audit_log WHERE created < SYSDATE - 30")
	if hasRule(r, "unbounded-dml") {
		t.Error("bounded delete should not be flagged")
	}
}

func TestAnalyze_FullScan(t *testing.T) {
	r, _ := Analyze("SELECT id FROM employees")
	if !hasRule(r, "full-scan") {
		t.Errorf("expected full-scan finding, got %+v", r.Findings)
	}

	r, _ = Analyze("SELECT id FROM employees FETCH FIRST 10 ROWS ONLY")
	if hasRule(r, "full-scan") {
		t.Error("row-limited select should not be flagged")
	}
}

func TestAnalyze_LeadingWildcard(t *testing.T) {
	r, _ := Analyze("SELECT id FROM t WHERE name LIKE '%smith'")
	if !hasRule(r, "leading-wildcard") {
		t.Errorf("expected leading-wildcard finding, got %+v", r.Findings)
	}

	r, _ = Analyze("SELECT id FROM t WHERE name LIKE 'smith%'")
	if hasRule(r, "leading-wildcard") {
		t.Error("trailing wildcard should not be flagged")
	}
}

func TestAnalyze_HashStable(t *testing.T) {
	a, _ := Analyze("SELECT   *   FROM users")
	b, _ := Analyze("SELECT * FROM users")
	if a.Hash != b.Hash {
		t.Errorf("whitespace variants should share a hash: %s vs %s", a.Hash, b.Hash)
	}
	if a.Statement != "SELECT * FROM users" {
		t.Errorf("statement should be normalized, got %q", a.Statement)
	}
}
