package adaptor_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/adaptor"
	"github.com/aretw0/adaptor/internal/testutils"
	"github.com/aretw0/adaptor/pkg/domain"
	"github.com/aretw0/adaptor/pkg/httpclient"
)

func configured(baseURL string) *adaptor.State {
	return &adaptor.State{
		Configuration: &adaptor.Configuration{
			BaseURL:  baseURL,
			Username: "user",
			Password: "secret",
			Headers:  map[string]string{"X-Api-Key": "k"},
		},
		References: []any{},
	}
}

func TestExecute_SeedsAndMerges(t *testing.T) {
	t.Run("zero operations return the seed", func(t *testing.T) {
		out, err := adaptor.Execute()(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, []any{}, out.References)
		assert.Nil(t, out.Data)
	})

	t.Run("caller keys win", func(t *testing.T) {
		in := &adaptor.State{
			References: []any{"x"},
			Extras:     map[string]any{"foo": 1},
		}
		out, err := adaptor.Execute()(context.Background(), in)
		require.NoError(t, err)

		assert.Equal(t, []any{"x"}, out.References)
		assert.Equal(t, 1, out.Extras["foo"])
		assert.Nil(t, out.Data)
	})

	t.Run("caller data is retained", func(t *testing.T) {
		out, err := adaptor.Execute()(context.Background(), &adaptor.State{Data: "d"})
		require.NoError(t, err)
		assert.Equal(t, "d", out.Data)
		assert.Equal(t, []any{}, out.References, "seed fills omitted references")
	})
}

func TestExecute_OrderAndThreading(t *testing.T) {
	var order []int
	var received []any

	step := func(i int) adaptor.Operation {
		return func(_ context.Context, s *adaptor.State) (*adaptor.State, error) {
			order = append(order, i)
			received = append(received, s.Data)
			return adaptor.ComposeNextState(s, i), nil
		}
	}

	out, err := adaptor.Execute(step(1), step(2), step(3))(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, []any{nil, 1, 2}, received)
	assert.Equal(t, 3, out.Data)
	assert.Equal(t, []any{2, 1, nil}, out.References)
}

func TestExecute_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	called := false

	_, err := adaptor.Execute(
		func(context.Context, *adaptor.State) (*adaptor.State, error) { return nil, boom },
		func(_ context.Context, s *adaptor.State) (*adaptor.State, error) {
			called = true
			return s, nil
		},
	)(context.Background(), nil)

	assert.Same(t, boom, err)
	assert.False(t, called)
}

func TestPost(t *testing.T) {
	up := testutils.NewUpstream(t, map[string]testutils.Reply{
		"/hook": {Status: http.StatusOK, Body: map[string]any{"id": 42}},
	})
	a := adaptor.New()

	in := &adaptor.State{References: []any{"r"}, Data: map[string]any{"token": "abc"}}
	out, err := a.Post(adaptor.PostParams{
		URL:     up.URL + "/hook",
		Body:    map[string]any{"value": adaptor.DataValue("token")},
		Headers: map[string]any{"X-Count": 3},
	})(context.Background(), in)
	require.NoError(t, err)

	require.NotNil(t, out.Response)
	assert.Equal(t, map[string]any{"id": float64(42)}, out.Response.Body)
	assert.Equal(t, in.Data, out.Data, "post leaves data untouched")
	assert.Equal(t, []any{"r"}, out.References)
	assert.Nil(t, in.Response, "input is not mutated")

	got := up.Last(t)
	assert.Equal(t, map[string]any{"value": "abc"}, got.Body)
	assert.Equal(t, "3", got.Header.Get("X-Count"))
	assert.False(t, got.HasAuth)
}

func TestPost_RelativeURL(t *testing.T) {
	up := testutils.NewUpstream(t, map[string]testutils.Reply{
		"/api/hook": {Body: map[string]any{}},
	})

	_, err := adaptor.New().Post(adaptor.PostParams{URL: "hook"})(context.Background(), configured(up.URL+"/api/"))
	require.NoError(t, err)
	assert.Equal(t, "/api/hook", up.Last(t).Path)

	_, err = adaptor.New().Post(adaptor.PostParams{URL: "hook"})(context.Background(), adaptor.NewState())
	assert.ErrorIs(t, err, domain.ErrMissingBaseURL)
}

func TestPost_Failure(t *testing.T) {
	up := testutils.NewUpstream(t, map[string]testutils.Reply{
		"/hook": {Status: http.StatusInternalServerError},
	})

	_, err := adaptor.New().Post(adaptor.PostParams{URL: up.URL + "/hook"})(context.Background(), adaptor.NewState())

	code, ok := httpclient.StatusCode(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, code)
}

func TestCreate(t *testing.T) {
	up := testutils.NewUpstream(t, map[string]testutils.Reply{
		"/patient": {Status: http.StatusCreated, Body: map[string]any{"id": 42}},
	})

	in := configured(up.URL)
	in.Data = "prior"

	out, err := adaptor.New().Create("patient", map[string]any{"name": "Ada"}, nil)(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"id": float64(42)}, out.Data)
	assert.Equal(t, []any{"prior"}, out.References)
	assert.Equal(t, http.StatusCreated, out.Response.StatusCode)
	assert.Same(t, in.Configuration, out.Configuration)

	got := up.Last(t)
	assert.Equal(t, "/patient", got.Path)
	assert.Equal(t, map[string]any{"name": "Ada"}, got.Body)
	assert.Equal(t, "k", got.Header.Get("X-Api-Key"))
	assert.True(t, got.HasAuth)
	assert.Equal(t, "user", got.Username)
	assert.Equal(t, "secret", got.Password)
}

func TestCreate_URLJoin(t *testing.T) {
	up := testutils.NewUpstream(t, map[string]testutils.Reply{
		"/patient": {Status: http.StatusOK},
	})

	a := adaptor.New()
	ctx := context.Background()

	for _, tc := range []struct{ base, path string }{
		{up.URL, "patient"},
		{up.URL + "/", "patient"},
		{up.URL, "/patient"},
	} {
		_, err := a.Create(tc.path, nil, nil)(ctx, configured(tc.base))
		require.NoError(t, err)
	}
	_, err := a.CreatePatient(nil, nil)(ctx, configured(up.URL))
	require.NoError(t, err)

	reqs := up.Requests()
	require.Len(t, reqs, 4)
	for _, r := range reqs {
		assert.Equal(t, "/patient", r.Path)
	}
}

func TestCreate_MissingConfiguration(t *testing.T) {
	_, err := adaptor.New().Create("patient", nil, nil)(context.Background(), adaptor.NewState())
	assert.ErrorIs(t, err, domain.ErrMissingConfiguration)

	_, err = adaptor.New().Create("patient", nil, nil)(context.Background(), configured(""))
	assert.ErrorIs(t, err, domain.ErrMissingBaseURL)
}

func TestCreatePatient_Callback(t *testing.T) {
	up := testutils.NewUpstream(t, map[string]testutils.Reply{
		"/patient": {Body: map[string]any{"id": "p-1"}},
	})

	var seen *adaptor.State
	replaced := &adaptor.State{Data: "from callback", References: []any{}}
	cb := func(_ context.Context, s *adaptor.State) (*adaptor.State, error) {
		seen = s
		return replaced, nil
	}

	out, err := adaptor.New().CreatePatient(map[string]any{}, cb)(context.Background(), configured(up.URL))
	require.NoError(t, err)

	require.NotNil(t, seen)
	assert.Equal(t, map[string]any{"id": "p-1"}, seen.Data)
	assert.NotNil(t, seen.Response)
	assert.Same(t, replaced, out)
}

func TestCreate_DeferredPlaceholders(t *testing.T) {
	up := testutils.NewUpstream(t, map[string]testutils.Reply{
		"/patient":   {Body: map[string]any{"id": "p-7"}},
		"/encounter": {Body: map[string]any{"ok": true}},
	})

	// Built before any patient id exists.
	encounter := adaptor.Create("encounter", map[string]any{
		"patientId": adaptor.LastReferenceValue("$.id"),
		"current":   adaptor.DataValue("id"),
	}, nil)

	op := adaptor.Execute(
		adaptor.CreatePatient(map[string]any{"name": "Ada"}, nil),
		adaptor.AlterState(func(_ context.Context, s *adaptor.State) (*adaptor.State, error) {
			return adaptor.ComposeNextState(s, map[string]any{"id": "d-1"}), nil
		}),
		encounter,
	)

	_, err := op(context.Background(), configured(up.URL))
	require.NoError(t, err)

	reqs := up.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, map[string]any{"patientId": "p-7", "current": "d-1"}, reqs[1].Body)
}

func TestCreatePatient_TypedResolverParams(t *testing.T) {
	up := testutils.NewUpstream(t, map[string]testutils.Reply{
		"/patient": {Body: map[string]any{"id": "p-2"}},
	})

	in := configured(up.URL)
	in.Data = map[string]any{"id": "p-1"}

	_, err := adaptor.New().CreatePatient(map[string]adaptor.Resolver{
		"id":    adaptor.DataValue("id"),
		"fixed": adaptor.Value(5),
	}, nil)(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"id": "p-1", "fixed": float64(5)}, up.Last(t).Body)
}

func TestCreate_NumericPath(t *testing.T) {
	up := testutils.NewUpstream(t, map[string]testutils.Reply{
		"/7": {Body: map[string]any{}},
	})

	in := configured(up.URL)
	in.Data = map[string]any{"id": 7}

	_, err := adaptor.New().Create(adaptor.DataValue("id"), nil, nil)(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "/7", up.Last(t).Path)
}

func TestCreate_TransportErrorStopsChain(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	called := false
	_, err := adaptor.Execute(
		adaptor.New(adaptor.WithTimeout(time.Second)).CreatePatient(nil, nil),
		func(_ context.Context, s *adaptor.State) (*adaptor.State, error) {
			called = true
			return s, nil
		},
	)(context.Background(), configured(base))

	require.Error(t, err)
	assert.False(t, called)
}

func TestNew_Options(t *testing.T) {
	hc := &http.Client{}
	a := adaptor.New(adaptor.WithHTTPClient(hc))
	assert.Same(t, hc, a.Client())

	b := adaptor.New(adaptor.WithHTTPClient(hc), adaptor.WithTimeout(2*time.Second))
	assert.NotSame(t, hc, b.Client())
	assert.Equal(t, 2*time.Second, b.Client().Timeout)
	assert.Zero(t, hc.Timeout, "configured client is not modified")

	assert.Same(t, adaptor.Default(), adaptor.Default())
}

func TestWithSuccessCodes(t *testing.T) {
	up := testutils.NewUpstream(t, map[string]testutils.Reply{
		"/patient": {Status: http.StatusNoContent},
	})

	_, err := adaptor.New().CreatePatient(nil, nil)(context.Background(), configured(up.URL))
	assert.ErrorIs(t, err, httpclient.ErrUnexpectedStatus)

	out, err := adaptor.New(adaptor.WithSuccessCodes(http.StatusNoContent)).
		CreatePatient(nil, nil)(context.Background(), configured(up.URL))
	require.NoError(t, err)
	assert.Nil(t, out.Data)
}
