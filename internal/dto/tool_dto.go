package dto

import "encoding/json"

type ExecuteRequest struct {
	Tool   string          `json:"tool"`
	Params json.RawMessage `json:"params"`
}

type ToolDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Per-tool parameter shapes. lead_id presence is mode-dependent (param in
// bearer mode, session in session mode), so it is checked by the handler
// instead of a validate tag.

type ListLeadsParams struct {
	Query string `json:"query"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=250"`
	Page  int    `json:"page" validate:"omitempty,min=1"`
}

type UpdateLeadParams struct {
	LeadID   int64   `json:"lead_id"`
	Name     *string `json:"name"`
	Price    *int64  `json:"price"`
	StatusID *int64  `json:"status_id"`
}

type AddNotesParams struct {
	LeadID int64  `json:"lead_id"`
	Text   string `json:"text" validate:"required"`
}

type AddTasksParams struct {
	LeadID       int64  `json:"lead_id"`
	Text         string `json:"text" validate:"required"`
	CompleteTill int64  `json:"complete_till" validate:"required"`
	TaskTypeID   int64  `json:"task_type_id"`
}

type ListStagesParams struct {
	PipelineID int64 `json:"pipeline_id" validate:"required"`
}

type StartSessionParams struct {
	LeadID int64  `json:"lead_id"`
	Query  string `json:"query"`
}

// Reshaped catalog outputs (what the tools return, not what Kommo sends).

type StageSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type StageDetail struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Sort  int64  `json:"sort"`
}

type PipelineSummary struct {
	ID     int64          `json:"id"`
	Name   string         `json:"name"`
	IsMain bool           `json:"is_main"`
	Stages []StageSummary `json:"stages"`
}

type SessionStatus struct {
	Active    bool   `json:"active"`
	LeadID    int64  `json:"lead_id,omitempty"`
	LeadName  string `json:"lead_name,omitempty"`
	StartedAt int64  `json:"started_at,omitempty"`
}
