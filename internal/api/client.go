package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/abhisek/lectern/internal/auth"
	"github.com/abhisek/lectern/internal/course"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 8 << 20

// Client talks to the course backend over REST.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Backend = (*Client)(nil)

// NewClient creates a Client for baseURL. A zero timeout leaves request
// deadlines to the caller's context and the server.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient replaces the underlying http.Client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

func (c *Client) GetCourse(ctx context.Context, courseID string) (*course.Course, error) {
	body, err := c.do(ctx, http.MethodGet, "/courses/"+url.PathEscape(courseID), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get course %s: %w", courseID, err)
	}
	crs, err := course.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("get course %s: %w", courseID, err)
	}
	return crs, nil
}

type enrollmentResponse struct {
	Enrolled bool    `json:"enrolled"`
	Progress float64 `json:"progress"`
}

func (c *Client) CheckEnrollment(ctx context.Context, sess *auth.Session, courseID string) (auth.Enrollment, error) {
	path := "/enrollments/check?courseId=" + url.QueryEscape(courseID)
	body, err := c.do(ctx, http.MethodGet, path, sess, nil)
	if errors.Is(err, ErrForbidden) {
		return auth.Enrollment{Enrolled: false}, nil
	}
	if err != nil {
		return auth.Enrollment{}, fmt.Errorf("check enrollment %s: %w", courseID, err)
	}
	var resp enrollmentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return auth.Enrollment{}, fmt.Errorf("check enrollment %s: decode: %w", courseID, &ErrUnavailable{Err: err})
	}
	return auth.Enrollment{Enrolled: resp.Enrolled, Progress: roundPercent(resp.Progress)}, nil
}

type progressRequest struct {
	Progress int `json:"progress"`
}

func (c *Client) ReportProgress(ctx context.Context, sess *auth.Session, courseID string, percent int) error {
	path := "/enrollments/" + url.PathEscape(courseID) + "/progress"
	if _, err := c.do(ctx, http.MethodPut, path, sess, progressRequest{Progress: percent}); err != nil {
		return fmt.Errorf("report progress %s: %w", courseID, err)
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("login: decode: %w", &ErrUnavailable{Err: err})
	}
	if resp.Token == "" || resp.User.ID == "" {
		return nil, fmt.Errorf("login: %w", &ErrUnavailable{Err: errors.New("response missing token or user")})
	}
	sessEmail := resp.User.Email
	if sessEmail == "" {
		sessEmail = email
	}
	return &auth.Session{UserID: resp.User.ID, Email: sessEmail, Token: resp.Token}, nil
}

// do performs a request and returns the response body for 2xx statuses.
// Status codes are mapped to ErrNotFound, ErrUnauthorized, ErrForbidden or
// *ErrUnavailable.
func (c *Client) do(ctx context.Context, method, path string, sess *auth.Session, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess.Valid() {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ErrUnavailable{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &ErrUnavailable{Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return nil, ErrForbidden
	default:
		return nil, &ErrUnavailable{Status: resp.StatusCode, Err: errors.New(strings.TrimSpace(string(body)))}
	}
}

// roundPercent rounds a server percentage and clamps it to 0..100 before
// converting, so out-of-range or non-finite values cannot overflow.
func roundPercent(p float64) int {
	if math.IsNaN(p) {
		return 0
	}
	return int(math.Max(0, math.Min(100, math.Round(p))))
}
