package utils

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const mysqlDuplicateEntry = 1062

var (
	// Duplicate entry 'a@b.c' for key 'users.idx_users_email'
	mysqlDupKey = regexp.MustCompile(`for key '(?:[^.']+\.)?(?:idx_[a-z0-9]+_)?([^']+)'`)
	// UNIQUE constraint failed: users.email
	sqliteDupKey = regexp.MustCompile(`UNIQUE constraint failed: [^.]+\.(\w+)`)
)

// DuplicateField reports which column a unique-constraint violation hit.
// The column is "" when the driver does not say.
func DuplicateField(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		if myErr.Number != mysqlDuplicateEntry {
			return "", false
		}
		if m := mysqlDupKey.FindStringSubmatch(myErr.Message); m != nil {
			return m[1], true
		}
		return "", true
	}
	if m := sqliteDupKey.FindStringSubmatch(err.Error()); m != nil {
		return m[1], true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}
	return "", false
}

// FormatError renders err as a message safe to show on a form.
func FormatError(err error) string {
	if fields := FieldErrors(err); fields != nil {
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)

		var msgs []string
		for _, name := range names {
			msgs = append(msgs, fields[name]...)
		}
		return strings.Join(msgs, ". ")
	}

	if field, ok := DuplicateField(err); ok {
		if field == "" {
			field = "field"
		}
		return humanize(field) + " already exists"
	}
	return err.Error()
}
