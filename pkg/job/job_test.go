package job_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/adaptor"
	"github.com/aretw0/adaptor/internal/testutils"
	"github.com/aretw0/adaptor/pkg/common"
	"github.com/aretw0/adaptor/pkg/domain"
	"github.com/aretw0/adaptor/pkg/job"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const registerJob = `
operations:
  - createPatient:
      params:
        name: Ada
  - create:
      path: encounter
      params:
        patientId: {$data: id}
        tags: [first, {$ref: "$.source"}]
  - post:
      url: notify
      body:
        patient: {$last: "$.id"}
      headers:
        X-Attempt: 1
`

func TestLoad_YAML(t *testing.T) {
	j, err := job.Load(writeFile(t, "register.yaml", registerJob))
	require.NoError(t, err)

	assert.Equal(t, "register", j.Name)
	require.Len(t, j.Steps, 3)
	assert.Equal(t, job.KindCreatePatient, j.Steps[0].Kind)
	assert.Equal(t, job.KindCreate, j.Steps[1].Kind)
	assert.Equal(t, job.KindPost, j.Steps[2].Kind)

	params := j.Steps[1].Create.Params.(map[string]any)
	_, isResolver := params["patientId"].(common.Resolver)
	assert.True(t, isResolver)
	tags := params["tags"].([]any)
	assert.Equal(t, "first", tags[0])
	_, isResolver = tags[1].(common.Resolver)
	assert.True(t, isResolver)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "job.json", `{"name":"j","operations":[{"create":{"path":"patient","params":{"id":{"$data":"id"}}}}]}`)
	j, err := job.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "j", j.Name)
	require.Len(t, j.Steps, 1)
	assert.Equal(t, "patient", j.Steps[0].Create.Path)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"no operations", "operations: []", job.ErrInvalidJob},
		{"unknown kind", "operations:\n  - delete: {path: x}", job.ErrUnknownOperation},
		{"two kinds", "operations:\n  - post: {url: x}\n    create: {path: y}", job.ErrInvalidJob},
		{"unknown arg", "operations:\n  - create: {path: x, extra: 1}", job.ErrInvalidJob},
		{"missing url", "operations:\n  - post: {body: 1}", job.ErrInvalidJob},
		{"missing path", "operations:\n  - create: {params: 1}", job.ErrInvalidJob},
		{"bad placeholder", "operations:\n  - createPatient: {params: {$data: 3}}", job.ErrInvalidJob},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := job.Load(writeFile(t, "job.yaml", tt.content))
			assert.ErrorIs(t, err, tt.target)
		})
	}

	_, err := job.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_StepErrorIndex(t *testing.T) {
	_, err := job.Load(writeFile(t, "job.yaml", "operations:\n  - createPatient: {}\n  - nope: {}"))
	var se *job.StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 1, se.Index)
}

func TestLoadState(t *testing.T) {
	path := writeFile(t, "state.yaml", `
configuration:
  baseUrl: https://x
  username: u
  password: p
  headers:
    X-Api-Key: k
references: [x]
foo: 1
`)
	s, err := job.LoadState(path)
	require.NoError(t, err)

	require.NotNil(t, s.Configuration)
	assert.Equal(t, "https://x", s.Configuration.BaseURL)
	assert.Equal(t, "u", s.Configuration.Username)
	assert.Equal(t, map[string]string{"X-Api-Key": "k"}, s.Configuration.Headers)
	assert.Equal(t, []any{"x"}, s.References)
	assert.Equal(t, float64(1), s.Extras["foo"])
}

func TestBuild_RunsAgainstUpstream(t *testing.T) {
	up := testutils.NewUpstream(t, map[string]testutils.Reply{
		"/patient":   {Status: http.StatusCreated, Body: map[string]any{"id": "p-1"}},
		"/encounter": {Body: map[string]any{"id": "e-1"}},
		"/notify":    {Status: http.StatusAccepted},
	})

	j, err := job.Load(writeFile(t, "register.yaml", registerJob))
	require.NoError(t, err)

	op, err := job.Operation(j, adaptor.New())
	require.NoError(t, err)

	out, err := op(context.Background(), &domain.State{
		Configuration: &domain.Configuration{BaseURL: up.URL},
		Extras:        map[string]any{"source": "import"},
	})
	require.NoError(t, err)

	reqs := up.Requests()
	require.Len(t, reqs, 3)
	assert.Equal(t, map[string]any{"name": "Ada"}, reqs[0].Body)
	assert.Equal(t, map[string]any{"patientId": "p-1", "tags": []any{"first", "import"}}, reqs[1].Body)
	assert.Equal(t, map[string]any{"patient": "p-1"}, reqs[2].Body)
	assert.Equal(t, "1", reqs[2].Header.Get("X-Attempt"))

	assert.Equal(t, map[string]any{"id": "e-1"}, out.Data, "post keeps the last create payload")
	assert.Equal(t, http.StatusAccepted, out.Response.StatusCode)
}

func TestBuild_NilJob(t *testing.T) {
	_, err := job.Build(nil, nil)
	assert.ErrorIs(t, err, job.ErrInvalidJob)
}
