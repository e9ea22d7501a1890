// Package pgerr translates Postgres driver errors into repository sentinels.
package pgerr

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophforum/internal/common"
	"github.com/dmitrijs2005/gophforum/internal/dbx"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidTextRepr     = "22P02"
)

// Wrap maps err onto common.ErrorNotFound or common.ErrorAlreadyExists
// where it can, and wraps everything else as a db error. Nil stays nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, dbx.ErrNoRowsAffected) {
		return common.ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return common.ErrorAlreadyExists
		case codeForeignKeyViolation, codeInvalidTextRepr:
			return common.ErrorNotFound
		}
	}

	return fmt.Errorf("db error: %w", err)
}
