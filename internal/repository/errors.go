// Package repository defines error types that are reused across
// multiple repositories. These sentinel values allow higher layers
// such as handlers to distinguish between different failure scenarios.
// Each repository additionally defines its own not-found sentinel
// (ErrMemberNotFound, ErrSongNotFound, ...) so that callers can map a
// missing referenced row to an HTTP 404.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrConflict is returned when an insert or update cannot proceed due
// to conflicting state, such as creating a member whose number is
// already taken. Handlers should translate this into an HTTP 409
// response. Inside CSV imports a duplicate is not an error: the
// insert-ignore paths report it as a skipped row instead.
var ErrConflict = errors.New("conflict")

// isDuplicateKey reports whether err is the MySQL duplicate-entry
// error (1062), which the unique keys on members, songs, koubanhyou
// and schedules raise.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
