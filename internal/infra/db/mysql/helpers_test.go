package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringOrDash(t *testing.T) {
	assert.Equal(t, "-", stringOrDash(""))
	assert.Equal(t, "-", stringOrDash("  \t"))
	assert.Equal(t, "subject", stringOrDash("subject"))
}

func TestConnect_RequiresParseTime(t *testing.T) {
	_, err := Connect(context.Background(), "u:p@tcp(localhost:3306)/db")
	assert.ErrorContains(t, err, "parseTime")

	_, err = Connect(context.Background(), "::not a dsn")
	assert.Error(t, err)
}
