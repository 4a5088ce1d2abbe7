package dto

import "storyspark-api/domain"

type CreateClipRequest struct {
	ChildID      string `json:"child_id" binding:"required"`
	CharacterID  string `json:"character_id" binding:"required"`
	ScenarioType string `json:"scenario_type" binding:"required"`
	ParentNote   string `json:"parent_note"`
}

func (r CreateClipRequest) ToDomain() domain.ClipRequest {
	return domain.ClipRequest{
		ChildID:      r.ChildID,
		CharacterID:  r.CharacterID,
		ScenarioType: r.ScenarioType,
		ParentNote:   r.ParentNote,
	}
}

type ApproveClipRequest struct {
	Approved     *bool  `json:"approved" binding:"required"`
	ReviewerNote string `json:"reviewer_note"`
}

type CreateChildRequest struct {
	Name      string   `json:"name" binding:"required"`
	Age       int      `json:"age"`
	Interests []string `json:"interests"`
}
