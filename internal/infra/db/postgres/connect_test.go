package postgres

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("x")))
	assert.False(t, isUniqueViolation(nil))
}

func TestStringOrDash(t *testing.T) {
	assert.Equal(t, "-", stringOrDash(" "))
	assert.Equal(t, "a", stringOrDash("a"))
}
