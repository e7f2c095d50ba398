package deepgram

import (
	"context"
	"encoding/json"
	"net/http"
)

// Status describes the reachability and capabilities of the instance.
type Status struct {
	Connected       bool     `json:"connected"`
	BaseURL         string   `json:"base_url"`
	ModelsAvailable []string `json:"models_available"`
	DefaultLanguage string   `json:"default_language"`
}

// GetStatus probes the instance and reports its available models.
func (p *Provider) GetStatus(ctx context.Context) *Status {
	status := &Status{
		Connected:       p.IsAvailable(ctx),
		BaseURL:         p.cfg.URL,
		DefaultLanguage: p.cfg.DefaultLanguage,
	}
	if status.Connected {
		status.ModelsAvailable = p.listModels(ctx)
	}
	return status
}

// listModels queries /v1/models. An empty list is returned on any failure;
// status reporting must not fail the caller.
func (p *Provider) listModels(ctx context.Context) []string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.URL+"/v1/models", nil)
	if err != nil {
		return nil
	}
	p.setAuth(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var payload []struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil
	}

	seen := make(map[string]bool, len(payload))
	var models []string
	for _, m := range payload {
		if m.Name != "" && !seen[m.Name] {
			seen[m.Name] = true
			models = append(models, m.Name)
		}
	}
	return models
}
