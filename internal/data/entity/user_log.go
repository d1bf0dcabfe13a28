package entity

import (
	"github.com/google/uuid"
)

type UserLog struct {
	BaseSimple
	UserID      *uuid.UUID `db:"user_id"`
	Action      string     `db:"action"`
	Description string     `db:"description"`
	IPAddress   *string    `db:"ip_address"`
	UserAgent   *string    `db:"user_agent"`
	UserEmail   *string
}
