package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lectern/internal/auth"
	"github.com/abhisek/lectern/internal/course"
)

var testSession = &auth.Session{UserID: "u1", Email: "a@example.com", Token: "secret"}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/", 0)
}

func TestClient_GetCourse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/courses/go-101", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"course": {"_id": "go-101", "title": "Go", "sections": [
			{"_id": "s1", "title": "One", "lessons": [{"_id": "l1", "title": "Hi"}]}
		]}}`))
	})

	crs, err := c.GetCourse(context.Background(), "go-101")
	require.NoError(t, err)
	assert.Equal(t, "go-101", crs.ID)
	assert.Equal(t, []string{"l1"}, course.Flatten(crs).IDs())
}

func TestClient_GetCourse_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{"not found", http.StatusNotFound, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrNotFound)
		}},
		{"server error", http.StatusBadGateway, func(t *testing.T, err error) {
			var ue *ErrUnavailable
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, http.StatusBadGateway, ue.Status)
		}},
		{"unauthorized", http.StatusUnauthorized, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrUnauthorized)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte("nope"))
			})
			_, err := c.GetCourse(context.Background(), "x")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestClient_GetCourse_InvalidPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"title": "missing id"}`))
	})
	_, err := c.GetCourse(context.Background(), "x")
	assert.ErrorIs(t, err, course.ErrInvalidPayload)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(srv.URL, 0)

	_, err := c.GetCourse(context.Background(), "x")
	var ue *ErrUnavailable
	require.ErrorAs(t, err, &ue)
	assert.Zero(t, ue.Status)
}

func TestClient_CheckEnrollment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/enrollments/check", r.URL.Path)
		assert.Equal(t, "go-101", r.URL.Query().Get("courseId"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Write([]byte(`{"enrolled": true, "progress": 33.4}`))
	})

	enr, err := c.CheckEnrollment(context.Background(), testSession, "go-101")
	require.NoError(t, err)
	assert.True(t, enr.Enrolled)
	assert.Equal(t, 33, enr.Progress)
}

func TestClient_CheckEnrollment_ProgressRounding(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{`{"enrolled": true, "progress": 66.5}`, 67},
		{`{"enrolled": true, "progress": -0.6}`, 0},
		{`{"enrolled": true, "progress": -40}`, 0},
		{`{"enrolled": true, "progress": 100.4}`, 100},
		{`{"enrolled": true, "progress": 1e300}`, 100},
	}

	for _, tt := range tests {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(tt.body))
		})
		enr, err := c.CheckEnrollment(context.Background(), testSession, "go-101")
		require.NoError(t, err)
		assert.Equal(t, tt.want, enr.Progress, tt.body)
	}
}

func TestClient_CheckEnrollment_Forbidden(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	enr, err := c.CheckEnrollment(context.Background(), testSession, "go-101")
	require.NoError(t, err)
	assert.False(t, enr.Enrolled)
}

func TestClient_ReportProgress(t *testing.T) {
	var got progressRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/enrollments/go-101/progress", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.ReportProgress(context.Background(), testSession, "go-101", 40))
	assert.Equal(t, 40, got.Progress)
}

func TestClient_Login(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"token": "t0k", "user": {"id": "u9"}}`))
	})

	sess, err := c.Login(context.Background(), "a@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, &auth.Session{UserID: "u9", Email: "a@example.com", Token: "t0k"}, sess)

	_, err = c.Login(context.Background(), "a@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
