package server

import (
	"context"
	"encoding/json"
	"sort"
)

// Provider describes an LLM provider available to the editor's property
// forms.
type Provider struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	ModelCount  int    `json:"modelCount"`
}

// ToolSpec describes a callable tool: name, description and its parameter
// schema.
type ToolSpec struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// ProviderSource supplies the provider, model and tool listings the editor
// shows in its property forms. The graph model never depends on the content
// beyond "string or absent"; implementations may proxy a real inference
// gateway or serve a fixed set.
type ProviderSource interface {
	Providers(ctx context.Context) ([]Provider, error)
	Models(ctx context.Context, provider string) ([]string, error)
	Tools(ctx context.Context) ([]ToolSpec, error)
}

// StaticProviders is a ProviderSource over fixed data.
type StaticProviders struct {
	ProviderModels map[string][]string
	ToolSpecs      []ToolSpec
}

func (s *StaticProviders) Providers(ctx context.Context) ([]Provider, error) {
	providers := []Provider{}
	for name, models := range s.ProviderModels {
		providers = append(providers, Provider{
			Name:        name,
			DisplayName: name,
			ModelCount:  len(models),
		})
	}
	sort.Slice(providers, func(i, j int) bool { return providers[i].Name < providers[j].Name })
	return providers, nil
}

func (s *StaticProviders) Models(ctx context.Context, provider string) ([]string, error) {
	return append([]string(nil), s.ProviderModels[provider]...), nil
}

func (s *StaticProviders) Tools(ctx context.Context) ([]ToolSpec, error) {
	return append([]ToolSpec(nil), s.ToolSpecs...), nil
}
