package fiber

// CreateRunRequest represents run creation payload
// @Description Run creation DTO
type CreateRunRequest struct {
	RunID    string              `json:"run_id" example:"2024-05-01-a"`
	Jiffy    float64             `json:"jiffy" example:"1e-9"`
	Source   string              `json:"source" example:"day1.timetag"`
	Channels []ChannelTicksInput `json:"channels"`
}

type ChannelTicksInput struct {
	Channel int      `json:"channel" example:"0"`
	Ticks   []uint64 `json:"ticks"`
}

type CreateRunResponse struct {
	Status string `json:"status" example:"created"`
	RunID  string `json:"run_id"`
	Events int    `json:"events"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_run"`
	Message string `json:"message" example:"invalid run: jiffy must be a positive number, got 0"`
}
