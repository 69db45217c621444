package model

type SubmitProofRequest struct {
	TaskID string `form:"task_id"`
}

type SubmitProofResponse struct {
	ID        string `json:"id"`
	Url       string `json:"url"`
	FrameType string `json:"frame_type"`
	XPBonus   int64  `json:"xp_bonus"`
}
