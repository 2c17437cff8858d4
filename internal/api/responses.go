package api

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

type BookingCreatedResponse struct {
	BookingID int    `json:"booking_id" example:"42"`
	Message   string `json:"message" example:"booking is successful"`
}

type PaginatedResponse struct {
	Count   int         `json:"count"`
	Results interface{} `json:"results"`
}
