package service

import (
	"context"
	"encoding/json"

	"kommo-tools-be/internal/dto"
	"kommo-tools-be/internal/pkg/apperr"
	"kommo-tools-be/internal/pkg/logger"
	"kommo-tools-be/internal/repository/memory"
	"kommo-tools-be/pkg/kommo"
	"kommo-tools-be/pkg/store"
)

// ToolHandler executes one tool. A non-nil returned session tells the caller
// to re-encode it into the response header; nil means unchanged.
type ToolHandler func(ctx context.Context, params json.RawMessage, sess store.Session) (*ToolResult, *store.Session, error)

type ToolDescriptor struct {
	Name        string
	Description string
	Handle      ToolHandler
}

// ToolRegistry is the closed set of tools, built once at startup. It backs
// both the /tools listing and the /execute dispatch.
type ToolRegistry struct {
	order []string
	tools map[string]*ToolDescriptor
}

func NewToolRegistry(client kommo.IClient, cache *memory.CatalogCache, log logger.ILogger, sessionMode bool) *ToolRegistry {
	svc := newToolService(client, cache, log, sessionMode)

	r := &ToolRegistry{tools: make(map[string]*ToolDescriptor)}

	if sessionMode {
		r.register("kommo_start_session", "Inicia uma sessão apontando para um lead (por id ou busca)", svc.StartSession)
		r.register("kommo_get_session", "Mostra a sessão ativa", svc.GetSession)
		r.register("kommo_end_session", "Encerra a sessão ativa", svc.EndSession)
	}

	r.register("kommo_list_leads", "Lista leads do Kommo CRM", svc.ListLeads)
	r.register("kommo_update_lead", "Atualiza um lead específico", svc.UpdateLead)
	r.register("kommo_add_notes", "Adiciona nota a um lead", svc.AddNotes)
	r.register("kommo_add_tasks", "Cria tarefa para um lead", svc.AddTasks)
	r.register("kommo_list_pipelines", "Lista pipelines e estágios do Kommo", svc.ListPipelines)
	r.register("kommo_list_pipeline_stages", "Lista estágios de um pipeline específico", svc.ListPipelineStages)

	return r
}

func (r *ToolRegistry) register(name, description string, handle ToolHandler) {
	r.order = append(r.order, name)
	r.tools[name] = &ToolDescriptor{Name: name, Description: description, Handle: handle}
}

// Names returns tool names in registration order.
func (r *ToolRegistry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Descriptors returns the listing payload (name and description only).
func (r *ToolRegistry) Descriptors() []dto.ToolDescriptor {
	out := make([]dto.ToolDescriptor, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		out = append(out, dto.ToolDescriptor{Name: t.Name, Description: t.Description})
	}
	return out
}

// Execute dispatches by tool name.
func (r *ToolRegistry) Execute(ctx context.Context, name string, params json.RawMessage, sess store.Session) (*ToolResult, *store.Session, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, nil, apperr.NewNotFoundf("Tool %q não encontrada.", name)
	}
	return t.Handle(ctx, params, sess)
}
