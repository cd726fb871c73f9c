package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kommo-tools-be/internal/dto"
	"kommo-tools-be/internal/entity"
	"kommo-tools-be/internal/pkg/apperr"
	"kommo-tools-be/internal/pkg/logger"
	"kommo-tools-be/internal/pkg/serverutils"
	"kommo-tools-be/internal/repository/memory"
	"kommo-tools-be/pkg/kommo"
	"kommo-tools-be/pkg/store"
)

const (
	defaultLeadLimit = 10
	defaultLeadPage  = 1
	catalogTTL       = 600 * time.Second
)

// ToolResult is the handler-produced half of the HTTP answer. Status zero
// means 200.
type ToolResult struct {
	Status  int
	Message string
	Data    interface{}
}

type toolService struct {
	client      kommo.IClient
	cache       *memory.CatalogCache
	logger      logger.ILogger
	sessionMode bool
}

func newToolService(client kommo.IClient, cache *memory.CatalogCache, log logger.ILogger, sessionMode bool) *toolService {
	return &toolService{
		client:      client,
		cache:       cache,
		logger:      log,
		sessionMode: sessionMode,
	}
}

// decodeParams treats a missing params object as empty, and runs the struct
// validation before any upstream call happens.
func decodeParams(raw json.RawMessage, out interface{}) error {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperr.NewValidation("Parâmetros inválidos.")
	}
	return serverutils.ValidateRequest(out)
}

// resolveLeadID picks the lead the mutation applies to: the session's lead in
// session mode, the explicit parameter otherwise.
func (s *toolService) resolveLeadID(paramID int64, sess store.Session) (int64, error) {
	if s.sessionMode {
		if !sess.Active() {
			return 0, apperr.NewSessionRequired()
		}
		return sess.LeadID, nil
	}
	if paramID == 0 {
		return 0, apperr.NewValidation("lead_id é obrigatório")
	}
	return paramID, nil
}

func (s *toolService) ListLeads(ctx context.Context, raw json.RawMessage, _ store.Session) (*ToolResult, *store.Session, error) {
	var params dto.ListLeadsParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, nil, err
	}
	if params.Limit == 0 {
		params.Limit = defaultLeadLimit
	}
	if params.Page == 0 {
		params.Page = defaultLeadPage
	}

	query := map[string]any{
		"limit": params.Limit,
		"page":  params.Page,
	}
	if params.Query != "" {
		query["query"] = params.Query
	}

	var page entity.LeadsPage
	if err := s.client.Get(ctx, "/leads", query, &page); err != nil {
		return nil, nil, err
	}
	leads := page.Embedded.Leads
	if leads == nil {
		leads = []json.RawMessage{}
	}

	return &ToolResult{
		Message: fmt.Sprintf("Encontrados %d leads", len(leads)),
		Data: map[string]interface{}{
			"total": len(leads),
			"leads": leads,
		},
	}, nil, nil
}

func (s *toolService) UpdateLead(ctx context.Context, raw json.RawMessage, sess store.Session) (*ToolResult, *store.Session, error) {
	var params dto.UpdateLeadParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, nil, err
	}
	leadID, err := s.resolveLeadID(params.LeadID, sess)
	if err != nil {
		return nil, nil, err
	}

	// Absent fields stay absent so Kommo does not overwrite them
	body := entity.LeadUpdateRequest{
		Name:     params.Name,
		Price:    params.Price,
		StatusID: params.StatusID,
	}

	var updated json.RawMessage
	if err := s.client.Patch(ctx, fmt.Sprintf("/leads/%d", leadID), body, &updated); err != nil {
		return nil, nil, err
	}

	return &ToolResult{
		Message: fmt.Sprintf("Lead %d atualizado", leadID),
		Data:    updated,
	}, nil, nil
}

func (s *toolService) AddNotes(ctx context.Context, raw json.RawMessage, sess store.Session) (*ToolResult, *store.Session, error) {
	var params dto.AddNotesParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, nil, err
	}
	leadID, err := s.resolveLeadID(params.LeadID, sess)
	if err != nil {
		return nil, nil, err
	}

	payload := []entity.NoteCreateRequest{{
		EntityID: leadID,
		NoteType: "common",
		Params:   entity.NoteParams{Text: params.Text},
	}}

	var page entity.NotesPage
	if err := s.client.Post(ctx, "/leads/notes", payload, &page); err != nil {
		return nil, nil, err
	}
	notes := page.Embedded.Notes
	if notes == nil {
		notes = []json.RawMessage{}
	}

	return &ToolResult{
		Message: fmt.Sprintf("📝 Nota adicionada ao lead %d", leadID),
		Data:    notes,
	}, nil, nil
}

func (s *toolService) AddTasks(ctx context.Context, raw json.RawMessage, sess store.Session) (*ToolResult, *store.Session, error) {
	var params dto.AddTasksParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, nil, err
	}
	leadID, err := s.resolveLeadID(params.LeadID, sess)
	if err != nil {
		return nil, nil, err
	}
	if params.TaskTypeID == 0 {
		params.TaskTypeID = 1
	}

	payload := []entity.TaskCreateRequest{{
		TaskTypeID:   params.TaskTypeID,
		Text:         params.Text,
		CompleteTill: params.CompleteTill,
		EntityID:     leadID,
		EntityType:   "leads",
		// Unique per call: Kommo uses request_id for idempotency
		RequestID: fmt.Sprintf("task_%s", uuid.NewString()),
	}}

	var page entity.TasksPage
	if err := s.client.Post(ctx, "/tasks", payload, &page); err != nil {
		return nil, nil, err
	}
	tasks := page.Embedded.Tasks
	if tasks == nil {
		tasks = []json.RawMessage{}
	}

	return &ToolResult{
		Message: fmt.Sprintf("📞 Tarefa criada para lead %d", leadID),
		Data:    tasks,
	}, nil, nil
}

func (s *toolService) ListPipelines(ctx context.Context, _ json.RawMessage, _ store.Session) (*ToolResult, *store.Session, error) {
	if cached, found := s.cache.Get("pipelines"); found {
		return &ToolResult{Message: "Pipelines (cache)", Data: cached}, nil, nil
	}

	var page entity.PipelinesPage
	if err := s.client.Get(ctx, "/leads/pipelines", nil, &page); err != nil {
		return nil, nil, err
	}

	formatted := make([]dto.PipelineSummary, 0, len(page.Embedded.Pipelines))
	for _, p := range page.Embedded.Pipelines {
		stages := make([]dto.StageSummary, 0, len(p.Embedded.Statuses))
		for _, st := range p.Embedded.Statuses {
			stages = append(stages, dto.StageSummary{ID: st.ID, Name: st.Name, Color: st.Color})
		}
		formatted = append(formatted, dto.PipelineSummary{
			ID:     p.ID,
			Name:   p.Name,
			IsMain: p.IsMain,
			Stages: stages,
		})
	}

	s.cache.Set("pipelines", formatted, catalogTTL)

	return &ToolResult{
		Message: fmt.Sprintf("%d pipelines", len(formatted)),
		Data:    formatted,
	}, nil, nil
}

func (s *toolService) ListPipelineStages(ctx context.Context, raw json.RawMessage, _ store.Session) (*ToolResult, *store.Session, error) {
	var params dto.ListStagesParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, nil, err
	}

	cacheKey := fmt.Sprintf("stages_%d", params.PipelineID)
	if cached, found := s.cache.Get(cacheKey); found {
		return &ToolResult{Message: "Estágios (cache)", Data: cached}, nil, nil
	}

	var page entity.StagesPage
	endpoint := fmt.Sprintf("/leads/pipelines/%d/statuses", params.PipelineID)
	if err := s.client.Get(ctx, endpoint, nil, &page); err != nil {
		return nil, nil, err
	}

	formatted := make([]dto.StageDetail, 0, len(page.Embedded.Statuses))
	for _, st := range page.Embedded.Statuses {
		formatted = append(formatted, dto.StageDetail{ID: st.ID, Name: st.Name, Color: st.Color, Sort: st.Sort})
	}

	s.cache.Set(cacheKey, formatted, catalogTTL)

	return &ToolResult{
		Message: fmt.Sprintf("%d estágios", len(formatted)),
		Data:    formatted,
	}, nil, nil
}

func (s *toolService) StartSession(ctx context.Context, raw json.RawMessage, _ store.Session) (*ToolResult, *store.Session, error) {
	var params dto.StartSessionParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, nil, err
	}
	if params.LeadID == 0 && params.Query == "" {
		return nil, nil, apperr.NewValidation("lead_id ou query é obrigatório")
	}

	var lead *entity.Lead
	var err error
	if params.LeadID != 0 {
		lead, err = s.lookupLeadByID(ctx, params.LeadID)
	} else {
		lead, err = s.lookupLeadByQuery(ctx, params.Query)
	}
	if err != nil {
		return nil, nil, err
	}

	newSess := &store.Session{
		LeadID:    lead.ID,
		LeadName:  lead.Name,
		StartedAt: time.Now().Unix(),
	}

	s.logger.Info("session", "Session started", map[string]interface{}{"lead_id": lead.ID})

	return &ToolResult{
		Message: fmt.Sprintf("Sessão iniciada para lead %d (%s)", lead.ID, lead.Name),
		Data: dto.SessionStatus{
			Active:    true,
			LeadID:    newSess.LeadID,
			LeadName:  newSess.LeadName,
			StartedAt: newSess.StartedAt,
		},
	}, newSess, nil
}

func (s *toolService) lookupLeadByID(ctx context.Context, leadID int64) (*entity.Lead, error) {
	var page entity.LeadLookupPage
	query := map[string]any{"filter[id]": leadID, "limit": 1}
	if err := s.client.Get(ctx, "/leads", query, &page); err != nil {
		return nil, err
	}
	if len(page.Embedded.Leads) == 0 {
		return nil, apperr.NewNotFoundf("Lead %d não encontrado.", leadID)
	}
	return &page.Embedded.Leads[0], nil
}

func (s *toolService) lookupLeadByQuery(ctx context.Context, text string) (*entity.Lead, error) {
	var page entity.LeadLookupPage
	query := map[string]any{"query": text, "limit": 1}
	if err := s.client.Get(ctx, "/leads", query, &page); err != nil {
		return nil, err
	}
	if len(page.Embedded.Leads) == 0 {
		return nil, apperr.NewNotFoundf("Nenhum lead encontrado para %q.", text)
	}
	return &page.Embedded.Leads[0], nil
}

func (s *toolService) EndSession(_ context.Context, _ json.RawMessage, sess store.Session) (*ToolResult, *store.Session, error) {
	if !sess.Active() {
		return nil, nil, apperr.NewValidation("Nenhuma sessão ativa para encerrar.")
	}

	s.logger.Info("session", "Session ended", map[string]interface{}{"lead_id": sess.LeadID})

	return &ToolResult{
		Message: fmt.Sprintf("Sessão encerrada para lead %d (%s)", sess.LeadID, sess.LeadName),
		Data: map[string]interface{}{
			"lead_id":   sess.LeadID,
			"lead_name": sess.LeadName,
		},
	}, &store.Session{}, nil
}

func (s *toolService) GetSession(_ context.Context, _ json.RawMessage, sess store.Session) (*ToolResult, *store.Session, error) {
	if !sess.Active() {
		return &ToolResult{
			Message: "Nenhuma sessão ativa.",
			Data:    dto.SessionStatus{Active: false},
		}, nil, nil
	}
	return &ToolResult{
		Message: fmt.Sprintf("Sessão ativa: lead %d (%s)", sess.LeadID, sess.LeadName),
		Data: dto.SessionStatus{
			Active:    true,
			LeadID:    sess.LeadID,
			LeadName:  sess.LeadName,
			StartedAt: sess.StartedAt,
		},
	}, nil, nil
}
