package postgres

import (
	"strings"
	"testing"

	"marketplace-service/internal/core/domain"
)

func TestQueryBuilderNumbering(t *testing.T) {
	qb := newQueryBuilder()

	if got := qb.nextArgID(); got != 1 {
		t.Fatalf("first arg id = %d, want 1", got)
	}

	qb.bind("a.owner = $%d", "0xabc")
	qb.static("a.disabled = FALSE")
	qb.bind("a.token_id = $%d", "42")

	if got := qb.nextArgID(); got != 3 {
		t.Fatalf("next arg id after two binds = %d, want 3", got)
	}

	want := "WHERE a.owner = $1 AND a.disabled = FALSE AND a.token_id = $2"
	if got := qb.where(); got != want {
		t.Fatalf("where = %q, want %q", got, want)
	}
	if len(qb.args) != 2 || qb.args[0] != "0xabc" || qb.args[1] != "42" {
		t.Fatalf("args = %v", qb.args)
	}
}

func TestQueryBuilderEmptyWhere(t *testing.T) {
	qb := newQueryBuilder()
	if got := qb.where(); got != "" {
		t.Fatalf("empty builder must produce no WHERE, got %q", got)
	}
}

func TestWhereIsActive(t *testing.T) {
	qb := newQueryBuilder()
	qb.whereIsActive("pub")

	got := qb.where()
	if !strings.Contains(got, "pub.tx_status = 'confirmed'") {
		t.Fatalf("missing tx_status predicate: %q", got)
	}
	if !strings.Contains(got, "pub.is_latest = TRUE") {
		t.Fatalf("missing is_latest predicate: %q", got)
	}
	if len(qb.args) != 0 {
		t.Fatalf("active predicate must not bind args, got %v", qb.args)
	}
}

func TestWhereHasStatus(t *testing.T) {
	t.Run("nil status adds nothing", func(t *testing.T) {
		qb := newQueryBuilder()
		qb.whereHasStatus("pub", nil)
		if got := qb.where(); got != "" {
			t.Fatalf("where = %q, want empty", got)
		}
	})

	t.Run("status binds a parameter", func(t *testing.T) {
		qb := newQueryBuilder()
		status := domain.PublicationOpen
		qb.whereHasStatus("pub", &status)

		if got := qb.where(); got != "WHERE pub.status = $1" {
			t.Fatalf("where = %q", got)
		}
		if len(qb.args) != 1 || qb.args[0] != "open" {
			t.Fatalf("args = %v", qb.args)
		}
	})
}

func TestLatestPublicationJSON(t *testing.T) {
	got := latestPublicationJSON("a")
	if !strings.Contains(got, "row_to_json(pub.*)") {
		t.Fatalf("subquery must produce json: %q", got)
	}
	if !strings.Contains(got, "pub.asset_id = a.id") {
		t.Fatalf("subquery must correlate with asset alias: %q", got)
	}
	if !strings.Contains(got, "pub.is_latest = TRUE") {
		t.Fatalf("subquery must take the latest publication only: %q", got)
	}
}

func TestPrefixColumns(t *testing.T) {
	got := prefixColumns("a", []string{"id", "x", "y"})
	if got != "a.id, a.x, a.y" {
		t.Fatalf("prefixed = %q", got)
	}
}
