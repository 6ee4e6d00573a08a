package waitlist

type JoinRequest struct {
	EventID string `json:"event_id" binding:"required"`
	Name    string `json:"name" binding:"required,max=255"`
	Email   string `json:"email" binding:"required,email"`
	Contact string `json:"contact" binding:"max=50"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=waiting notified registered"`
}

type ListQuery struct {
	Status string `form:"status"`
}
