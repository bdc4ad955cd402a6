package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamClient_CreateTeam_Request(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, CreateTeamPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"team_name": "Foo"}, body)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"t1","team_name":"Foo","extra":true}`))
	}))
	defer srv.Close()

	team, err := NewTeamClient(srv.URL+"/", srv.Client()).CreateTeam(context.Background(), "tok", TeamFormInput{TeamName: "Foo"})
	require.NoError(t, err)
	assert.Equal(t, "t1", team.ID)
	assert.Equal(t, "Foo", team.TeamName)
	assert.JSONEq(t, `{"id":"t1","team_name":"Foo","extra":true}`, string(team.Raw))
}

func TestTeamClient_CreateTeam_BackendErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"string error", http.StatusConflict, `{"error":"Name taken"}`, "Name taken"},
		{"nested error", http.StatusBadRequest, `{"error":{"code":"BAD_REQUEST","message":"bad name"}}`, "bad name"},
		{"no error field", http.StatusInternalServerError, `{}`, ""},
		{"empty body", http.StatusBadGateway, ``, ""},
		{"not json", http.StatusServiceUnavailable, `<html>down</html>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewTeamClient(srv.URL, srv.Client()).CreateTeam(context.Background(), "tok", TeamFormInput{TeamName: "Foo"})

			var backendErr *BackendError
			require.ErrorAs(t, err, &backendErr)
			assert.Equal(t, tt.status, backendErr.Status)
			assert.Equal(t, tt.wantMsg, backendErr.Message)
		})
	}
}

func TestTeamClient_CreateTeam_TransportErrors(t *testing.T) {
	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewTeamClient(url, nil).CreateTeam(context.Background(), "tok", TeamFormInput{TeamName: "Foo"})

		var transportErr *TransportError
		assert.ErrorAs(t, err, &transportErr)
	})

	t.Run("undecodable success body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		_, err := NewTeamClient(srv.URL, srv.Client()).CreateTeam(context.Background(), "tok", TeamFormInput{TeamName: "Foo"})

		var transportErr *TransportError
		assert.ErrorAs(t, err, &transportErr)
	})
}
