package postgres

import (
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/chapternet/directory-api/pkg/apperr"
)

// errNotFound carries the not-found kind so it maps straight to a 404 at the
// transport layer.
var errNotFound error = apperr.NotFound("record not found")

// pg error code for unique_violation
const uniqueViolationCode = "23505"

// uniqueViolation reports whether err is a unique-index violation and, if so,
// which constraint was hit. Callers use the constraint name to decide whether
// a duplicate email or a slug race occurred.
func uniqueViolation(err error) (constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// IsNotFound reports whether a repository error means the record is missing.
func IsNotFound(err error) bool { return errors.Is(err, errNotFound) }

// IsUniqueViolation reports whether err is a unique violation on the named
// constraint. An empty constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	name, ok := uniqueViolation(err)
	if !ok {
		return false
	}
	return constraint == "" || name == constraint
}

// jsonb helpers: list-valued columns travel as explicit JSON bytes so pgx
// never guesses between array and json encodings.

func toJSON(v any) []byte {
	if v == nil {
		return []byte("[]")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("[]")
	}
	return b
}

func fromJSON[T any](b []byte) T {
	var out T
	if len(b) == 0 {
		return out
	}
	_ = json.Unmarshal(b, &out)
	return out
}
