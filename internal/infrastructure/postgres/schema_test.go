package postgres

import (
	"os"
	"regexp"
	"strings"
	"testing"
)

// The repositories hand-write their column lists, so the migration and the
// Go side can silently drift apart. These tests pin them together.

func loadSchema(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile("../../../db/migrations/0001_init.up.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	return string(b)
}

func tableBlock(t *testing.T, schema, table string) string {
	t.Helper()
	marker := "CREATE TABLE IF NOT EXISTS " + table + " ("
	start := strings.Index(schema, marker)
	if start < 0 {
		t.Fatalf("table %q not declared in migration", table)
	}
	rest := schema[start:]
	end := strings.Index(rest, "\n);")
	if end < 0 {
		t.Fatalf("table %q block not terminated", table)
	}
	return rest[:end]
}

func splitColumns(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func requireColumns(t *testing.T, block, table string, cols []string) {
	t.Helper()
	for _, col := range cols {
		re := regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(col) + `\s`)
		if !re.MatchString(block) {
			t.Errorf("column %q referenced by the repository is missing from table %s", col, table)
		}
	}
}

func TestUsersSchemaMatchesRepository(t *testing.T) {
	block := tableBlock(t, loadSchema(t), "users")
	requireColumns(t, block, "users", splitColumns(userColumns))
}

func TestProfilesSchemaMatchesRepository(t *testing.T) {
	block := tableBlock(t, loadSchema(t), "profiles")
	requireColumns(t, block, "profiles", splitColumns(profileColumns))
}

func TestSchemaDeclaresNamedConstraints(t *testing.T) {
	schema := loadSchema(t)
	constraints := []string{
		"users_email_key",
		ProfileSlugConstraint,
		"profiles_user_id_key",
		"chapters_slug_key",
		"articles_slug_key",
		"events_slug_key",
		"subscriptions_email_key",
	}
	for _, c := range constraints {
		if !strings.Contains(schema, "CONSTRAINT "+c+" UNIQUE") {
			t.Errorf("unique constraint %q the code keys on is not declared in the migration", c)
		}
	}
}
