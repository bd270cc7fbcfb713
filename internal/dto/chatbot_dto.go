package dto

type ChatbotMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

type ChatbotMessageResponse struct {
	Reply string `json:"reply"`
}
