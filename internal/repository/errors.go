package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Sentinel errors surfaced by the store for constraint failures.
var (
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// translate maps postgres constraint errors onto the package sentinels.
func translate(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%s: %w: %s", op, ErrUniqueViolation, pqErr.Constraint)
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: %w: %s", op, ErrForeignKeyViolation, pqErr.Constraint)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// setClause accumulates "col = $n" fragments for partial updates.
type setClause struct {
	parts []string
	args  []interface{}
}

func (s *setClause) add(column string, value interface{}) {
	s.args = append(s.args, value)
	s.parts = append(s.parts, fmt.Sprintf("%s = $%d", column, len(s.args)))
}

func (s *setClause) null(column string) {
	s.parts = append(s.parts, column+" = NULL")
}

func (s *setClause) empty() bool {
	return len(s.parts) == 0
}

// query renders the UPDATE statement, binding id as the last placeholder.
func (s *setClause) query(table string, id int64) (string, []interface{}) {
	args := append(s.args, id)
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(s.parts, ", "), len(args))
	return q, args
}
