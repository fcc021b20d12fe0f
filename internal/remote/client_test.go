package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/growth-tracker/pkg/logger"
)

const (
	ownerID = "3f0b7f40-7a57-4c36-9a3b-3a1f1f6f9a10"
	skillID = "b7b0c0d4-3b19-4b4e-9f0a-8d1f1c2e3a45"
)

type recorded struct {
	method string
	path   string
	query  string
	auth   string
	body   []byte
}

func newTestServer(t *testing.T, status int, response any) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.auth = r.Header.Get("Authorization")
		if r.Body != nil {
			var raw json.RawMessage
			_ = json.NewDecoder(r.Body).Decode(&raw)
			rec.body = raw
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(response)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func validSkill() SkillRow {
	return SkillRow{ID: skillID, UserID: ownerID, Name: "Go", Category: "编程", Level: 60}
}

func TestClient_ListSendsOwnerAndLimit(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, []SkillRow{validSkill()})
	c := NewClient(srv.URL+"/api", StaticToken("tok"), logger.NewNopLogger())

	rows, err := c.Skills().List(context.Background(), ownerID, ListOptions{Limit: 1})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Go", rows[0].Name)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/skills", rec.path)
	assert.Equal(t, "limit=1&user_id="+ownerID, rec.query)
	assert.Equal(t, "Bearer tok", rec.auth)
}

func TestClient_UpdateAndDeleteTargetID(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, validSkill())
	c := NewClient(srv.URL, nil, logger.NewNopLogger())

	_, err := c.Skills().Update(context.Background(), skillID, validSkill())
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/skills/"+skillID, rec.path)
	assert.Equal(t, "user_id="+ownerID, rec.query)
	assert.Empty(t, rec.auth)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	assert.Equal(t, ownerID, sent["user_id"])
	assert.EqualValues(t, 60, sent["level"])

	require.NoError(t, c.Skills().Delete(context.Background(), ownerID, skillID))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/skills/"+skillID, rec.path)
}

func TestClient_ValidatesBeforeDispatch(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, nil)
	c := NewClient(srv.URL, nil, logger.NewNopLogger())

	bad := validSkill()
	bad.Level = 150
	_, err := c.Skills().Create(context.Background(), bad)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	goal := GoalRow{ID: skillID, UserID: ownerID, Title: "x", Deadline: "01/02/2024", Priority: "medium"}
	_, err = c.Goals().Create(context.Background(), goal)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = c.Achievements().List(context.Background(), "", ListOptions{})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	assert.Empty(t, rec.method, "no request must reach the server")
}

func TestClient_ErrorPayload(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusForbidden, map[string]string{"error": "forbidden", "message": "not your data"})
	c := NewClient(srv.URL, nil, logger.NewNopLogger())

	_, err := c.Goals().List(context.Background(), ownerID, ListOptions{})

	var re *Error
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusForbidden, re.StatusCode)
	assert.Equal(t, "not your data", re.Message)
}

func TestClient_ProfileGet(t *testing.T) {
	t.Run("null body means no profile", func(t *testing.T) {
		srv, rec := newTestServer(t, http.StatusOK, nil)
		c := NewClient(srv.URL, nil, logger.NewNopLogger())

		row, err := c.Profiles().Get(context.Background(), ownerID)
		require.NoError(t, err)
		assert.Nil(t, row)
		assert.Equal(t, "/profiles/"+ownerID, rec.path)
	})

	t.Run("not found means no profile", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusNotFound, map[string]string{"error": "not found"})
		c := NewClient(srv.URL, nil, logger.NewNopLogger())

		row, err := c.Profiles().Get(context.Background(), ownerID)
		require.NoError(t, err)
		assert.Nil(t, row)
	})

	t.Run("row is passed through", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusOK, ProfileRow{ID: ownerID, Name: "Ada", IsPublic: true})
		c := NewClient(srv.URL, nil, logger.NewNopLogger())

		row, err := c.Profiles().Get(context.Background(), ownerID)
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, "Ada", row.Name)
		assert.True(t, row.IsPublic)
	})
}

func TestClient_TransportError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, nil)
	srv.Close()
	c := NewClient(srv.URL, nil, logger.NewNopLogger())

	err := c.Import(context.Background(), ownerID, Bundle{Profile: ProfileRow{ID: ownerID, Name: "Ada"}})

	var re *Error
	require.True(t, errors.As(err, &re))
	assert.Zero(t, re.StatusCode)
}
