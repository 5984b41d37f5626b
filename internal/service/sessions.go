package service

import (
	"context"
	"database/sql"
	"fmt"

	"applicantpool/internal/database"
	"applicantpool/internal/repository"
)

// Sessions hands out storage sessions scoped to one request or batch. *sql.DB satisfies it.
type Sessions interface {
	database.TxBeginner
	Conn(ctx context.Context) (*sql.Conn, error)
}

// withConn borrows a dedicated connection for the duration of fn and always returns it.
func withConn(ctx context.Context, db Sessions, fn func(q repository.Querier) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()
	return fn(conn)
}
