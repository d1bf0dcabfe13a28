package response

import (
	"time"

	"pakket-admin/internal/data/entity"
)

type UserLogResponse struct {
	ID          string    `json:"id"`
	UserID      *string   `json:"user_id,omitempty"`
	UserEmail   *string   `json:"user_email,omitempty"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	IPAddress   *string   `json:"ip_address,omitempty"`
	UserAgent   *string   `json:"user_agent,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func UserLogToResponse(l *entity.UserLog) UserLogResponse {
	resp := UserLogResponse{
		ID:          l.ID.String(),
		UserEmail:   l.UserEmail,
		Action:      l.Action,
		Description: l.Description,
		IPAddress:   l.IPAddress,
		UserAgent:   l.UserAgent,
		CreatedAt:   l.CreatedAt,
	}
	if l.UserID != nil {
		id := l.UserID.String()
		resp.UserID = &id
	}
	return resp
}
