package repository

import (
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestDriverErrorPredicates(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'ana@example.com' for key 'users.email'"}
	fk := &mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row: a foreign key constraint fails"}

	assert.True(t, isDuplicateEntry(dup))
	assert.False(t, isDuplicateEntry(fk))
	assert.False(t, isDuplicateEntry(errors.New("connection reset")))
	assert.False(t, isDuplicateEntry(nil))

	assert.True(t, isFKRestricted(fk))
	assert.False(t, isFKRestricted(dup))
	assert.False(t, isFKRestricted(errors.New("connection reset")))
	assert.False(t, isFKRestricted(nil))
}
