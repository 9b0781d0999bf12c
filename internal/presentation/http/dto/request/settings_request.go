package request

// UnlockRequest carries a settings-gate password attempt.
type UnlockRequest struct {
	Password string `json:"password"`
}

// AddServiceRequest adds one entry to the predefined service menu.
type AddServiceRequest struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price"`
}
