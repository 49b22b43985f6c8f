package db

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrNoRowsAffected signals a delete/update that matched nothing, e.g.
// removing a like that was never created.
var ErrNoRowsAffected = errors.New("no rows affected")

// IsDupKeyErr reports whether err is a MySQL duplicate-key violation
// (duplicate like, duplicate follow, taken username).
func IsDupKeyErr(err error) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	return strings.Contains(mysqlErr.Error(), "Duplicate")
}
