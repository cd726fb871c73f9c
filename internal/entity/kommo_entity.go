package entity

import "encoding/json"

// Kommo wire shapes. Collections come wrapped in an "_embedded" object, and
// leads carry fields this service never interprets, so list endpoints keep
// the raw JSON instead of forcing a schema on it.

type Lead struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	StatusID   int64  `json:"status_id"`
	PipelineID int64  `json:"pipeline_id"`
}

// LeadsPage is the pass-through shape for listing.
type LeadsPage struct {
	Embedded struct {
		Leads []json.RawMessage `json:"leads"`
	} `json:"_embedded"`
}

// LeadLookupPage is the typed shape for session lookups, where only id and
// name matter.
type LeadLookupPage struct {
	Embedded struct {
		Leads []Lead `json:"leads"`
	} `json:"_embedded"`
}

// LeadUpdateRequest omits absent fields so Kommo leaves them untouched.
type LeadUpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	Price    *int64  `json:"price,omitempty"`
	StatusID *int64  `json:"status_id,omitempty"`
}

type NoteParams struct {
	Text string `json:"text"`
}

type NoteCreateRequest struct {
	EntityID int64      `json:"entity_id"`
	NoteType string     `json:"note_type"`
	Params   NoteParams `json:"params"`
}

type NotesPage struct {
	Embedded struct {
		Notes []json.RawMessage `json:"notes"`
	} `json:"_embedded"`
}

type TaskCreateRequest struct {
	TaskTypeID   int64  `json:"task_type_id"`
	Text         string `json:"text"`
	CompleteTill int64  `json:"complete_till"`
	EntityID     int64  `json:"entity_id"`
	EntityType   string `json:"entity_type"`
	RequestID    string `json:"request_id"`
}

type TasksPage struct {
	Embedded struct {
		Tasks []json.RawMessage `json:"tasks"`
	} `json:"_embedded"`
}

type Stage struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Sort  int64  `json:"sort"`
}

type Pipeline struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsMain   bool   `json:"is_main"`
	Embedded struct {
		Statuses []Stage `json:"statuses"`
	} `json:"_embedded"`
}

type PipelinesPage struct {
	Embedded struct {
		Pipelines []Pipeline `json:"pipelines"`
	} `json:"_embedded"`
}

type StagesPage struct {
	Embedded struct {
		Statuses []Stage `json:"statuses"`
	} `json:"_embedded"`
}
