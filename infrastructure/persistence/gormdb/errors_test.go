package gormdb

import (
	"errors"
	"fmt"
	"testing"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyError(t *testing.T) {
	assert.False(t, isDuplicateKeyError(nil))
	assert.True(t, isDuplicateKeyError(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateKeyError(fmt.Errorf("insert: %w", &mysqlDriver.MySQLError{Number: 1062})))
	assert.True(t, isDuplicateKeyError(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isDuplicateKeyError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.False(t, isDuplicateKeyError(&mysqlDriver.MySQLError{Number: 1213}))
	assert.False(t, isDuplicateKeyError(errors.New("connection refused")))
}

func TestIsLockConflict(t *testing.T) {
	assert.False(t, isLockConflict(nil))
	assert.True(t, isLockConflict(&mysqlDriver.MySQLError{Number: 1213}))
	assert.True(t, isLockConflict(&mysqlDriver.MySQLError{Number: 1205}))
	assert.True(t, isLockConflict(&pgconn.PgError{Code: "40001"}))
	assert.True(t, isLockConflict(&pgconn.PgError{Code: "40P01"}))
	assert.True(t, isLockConflict(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.False(t, isLockConflict(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isLockConflict(errors.New("timeout")))
}
