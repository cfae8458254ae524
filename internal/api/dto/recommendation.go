package dto

// GenerateRecommendationsRequest asks for a fresh rule run over one account
type GenerateRecommendationsRequest struct {
	CloudAccountID string `json:"cloudAccountId" validate:"required,notblank"`
}

// GenerateRecommendationsResponse reports how many recommendations were created
type GenerateRecommendationsResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}
