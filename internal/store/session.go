package store

import (
	"context"
	"fmt"

	"users-api/internal/database"
)

// PostgresSessions 每次 Open 從連線池借出一條連線
type PostgresSessions struct {
	pool database.Pool
}

func NewPostgresSessions(pool database.Pool) *PostgresSessions {
	return &PostgresSessions{pool: pool}
}

func (p *PostgresSessions) Open(ctx context.Context) (Store, func(), error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("acquire connection: %w", err)
	}
	return NewPostgresStore(conn), conn.Release, nil
}

// MemorySessions shares one MemoryStore across requests.
type MemorySessions struct {
	Store *MemoryStore
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{Store: NewMemoryStore()}
}

func (m *MemorySessions) Open(context.Context) (Store, func(), error) {
	return m.Store, func() {}, nil
}
