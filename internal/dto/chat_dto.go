package dto

import "time"

type ChatRequest struct {
	Message   string `json:"message" validate:"required"`
	Partition string `json:"partition" validate:"required"`
	SessionId string `json:"session_id,omitempty"`
}

type SourceDTO struct {
	Source string  `json:"source"`
	Score  float64 `json:"score"`
}

type ChatResponse struct {
	Response  string      `json:"response"`
	Sources   []SourceDTO `json:"sources,omitempty"`
	SessionId string      `json:"session_id"`
}

type ChatTurnDTO struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatHistoryResponse struct {
	SessionId string        `json:"session_id"`
	Turns     []ChatTurnDTO `json:"turns"`
}

type PartitionsResponse struct {
	Role       string   `json:"role"`
	Partitions []string `json:"partitions"`
}
