package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"agent-pipeline/internal/domain/entity"
	"agent-pipeline/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePipeline struct {
	gotTopic    string
	gotLanguage string
	err         error
}

func (f *fakePipeline) Execute(ctx context.Context, wf entity.Workflow, topic string) (*entity.PipelineResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.gotTopic = topic
	f.gotLanguage = wf.Steps[len(wf.Steps)-1].Params[entity.ParamLanguage]

	result := &entity.PipelineResult{RunID: "run-1", Workflow: wf.ID, Status: entity.RunStatusCompleted}
	for _, s := range wf.Steps {
		result.Stages = append(result.Stages, entity.StageResult{
			Stage:  s.Stage,
			Agent:  s.Agent,
			Status: entity.StageStatusCompleted,
			Output: "R:" + s.Stage,
		})
	}
	result.Stages[3].Status = entity.StageStatusFailed
	result.Stages[3].Err = fmt.Errorf("wrapped: %w", entity.ErrTransport)
	return result, nil
}

func (f *fakePipeline) Agents() []string {
	return []string{"analyzer", "researcher", "translator", "writer"}
}

func newTestServer(p Pipeline) *httptest.Server {
	s := New(p, logger.NewNop(), Config{DefaultLanguage: "Tamil"})
	return httptest.NewServer(s.Routes())
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&fakePipeline{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAgents(t *testing.T) {
	srv := newTestServer(&fakePipeline{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/agents")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string][]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"analyzer", "researcher", "translator", "writer"}, body["agents"])
}

func TestRunWorkflow(t *testing.T) {
	p := &fakePipeline{}
	srv := newTestServer(p)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/workflows", "application/json", strings.NewReader(`{"topic":"renewable energy"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body runResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, "renewable energy", p.gotTopic)
	assert.Equal(t, "Tamil", p.gotLanguage)
	assert.Equal(t, "run-1", body.RunID)
	assert.False(t, body.Succeeded)
	require.Len(t, body.Stages, 4)
	assert.Equal(t, "research", body.Stages[0].Stage)
	assert.Equal(t, "translated", body.Stages[3].Stage)
	assert.Equal(t, "failed", body.Stages[3].Status)
	assert.Contains(t, body.Stages[3].Error, "wrapped")
}

func TestRunWorkflow_LanguageOverride(t *testing.T) {
	p := &fakePipeline{}
	srv := newTestServer(p)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/workflows", "application/json", strings.NewReader(`{"topic":"x","language":"fr"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "fr", p.gotLanguage)
}

func TestRunWorkflow_BadRequests(t *testing.T) {
	srv := newTestServer(&fakePipeline{})
	defer srv.Close()

	for _, body := range []string{`{`, `{"topic":"   "}`} {
		resp, err := http.Post(srv.URL+"/v1/workflows", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
}

func TestRunWorkflow_StructuralError(t *testing.T) {
	srv := newTestServer(&fakePipeline{err: fmt.Errorf("%w: writer", entity.ErrUnknownAgent)})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/workflows", "application/json", strings.NewReader(`{"topic":"x"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
