package api

import (
	"context"
	"fmt"
	"sync"

	"github.com/abhisek/lectern/internal/auth"
	"github.com/abhisek/lectern/internal/course"
)

// ProgressCall records one ReportProgress invocation on a MockBackend.
type ProgressCall struct {
	UserID   string
	CourseID string
	Percent  int
}

// MockBackend is an in-memory Backend for tests and demo mode.
// Courses and enrollments are keyed by id; every call is recorded.
type MockBackend struct {
	mu          sync.Mutex
	courses     map[string]*course.Course
	enrollments map[string]auth.Enrollment // key: userID + "/" + courseID
	users       map[string]mockUser

	// Optional failure injection.
	CourseErr     error
	EnrollmentErr error
	ProgressErr   error

	CourseCalls     []string
	EnrollmentCalls []string
	ProgressCalls   []ProgressCall
}

type mockUser struct {
	password string
	session  auth.Session
}

var _ Backend = (*MockBackend)(nil)

// NewMockBackend creates an empty MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{
		courses:     make(map[string]*course.Course),
		enrollments: make(map[string]auth.Enrollment),
		users:       make(map[string]mockUser),
	}
}

// AddCourse registers c.
func (m *MockBackend) AddCourse(c *course.Course) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.courses[c.ID] = c
}

// Enroll marks userID as enrolled in courseID with the given server progress.
func (m *MockBackend) Enroll(userID, courseID string, progress int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enrollments[userID+"/"+courseID] = auth.Enrollment{Enrolled: true, Progress: progress}
}

// AddUser registers credentials that Login accepts.
func (m *MockBackend) AddUser(email, password, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[email] = mockUser{
		password: password,
		session:  auth.Session{UserID: userID, Email: email, Token: "mock-token-" + userID},
	}
}

func (m *MockBackend) GetCourse(_ context.Context, courseID string) (*course.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CourseCalls = append(m.CourseCalls, courseID)
	if m.CourseErr != nil {
		return nil, m.CourseErr
	}
	c, ok := m.courses[courseID]
	if !ok {
		return nil, fmt.Errorf("get course %s: %w", courseID, ErrNotFound)
	}
	return c, nil
}

func (m *MockBackend) CheckEnrollment(_ context.Context, sess *auth.Session, courseID string) (auth.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnrollmentCalls = append(m.EnrollmentCalls, courseID)
	if m.EnrollmentErr != nil {
		return auth.Enrollment{}, m.EnrollmentErr
	}
	return m.enrollments[sess.ID()+"/"+courseID], nil
}

func (m *MockBackend) ReportProgress(_ context.Context, sess *auth.Session, courseID string, percent int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProgressCalls = append(m.ProgressCalls, ProgressCall{UserID: sess.ID(), CourseID: courseID, Percent: percent})
	if m.ProgressErr != nil {
		return m.ProgressErr
	}
	key := sess.ID() + "/" + courseID
	if e, ok := m.enrollments[key]; ok {
		e.Progress = percent
		m.enrollments[key] = e
	}
	return nil
}

func (m *MockBackend) Login(_ context.Context, email, password string) (*auth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok || u.password != password {
		return nil, fmt.Errorf("login: %w", ErrUnauthorized)
	}
	s := u.session
	return &s, nil
}

// ProgressCallCount returns the number of ReportProgress calls made.
func (m *MockBackend) ProgressCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ProgressCalls)
}
