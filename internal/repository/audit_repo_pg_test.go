package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewAuditRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewAuditRepository(pool)
	assert.NotNil(t, repo)
}
