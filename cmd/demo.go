package cmd

import (
	"github.com/abhisek/lectern/internal/api"
	"github.com/abhisek/lectern/internal/course"
)

const (
	demoCourseID = "go-fundamentals"
	demoUserID   = "demo-user"
	demoEmail    = "demo@lectern.dev"
	demoPassword = "demo"
)

// demoCourseJSON goes through course.Decode like any API payload.
const demoCourseJSON = `{
	"_id": "go-fundamentals",
	"title": "Go Fundamentals",
	"description": "A short tour of the Go language, from packages to goroutines.",
	"image": {"url": "https://cdn.lectern.dev/go-fundamentals.png"},
	"sections": [
		{"_id": "basics", "title": "Basics", "lessons": [
			{"_id": "welcome", "title": "Welcome", "videoUrl": "https://videos.lectern.dev/welcome.mp4", "duration": 95, "isFreePreview": true,
			 "description": "What this course covers and how to follow along."},
			{"_id": "packages", "title": "Packages and Imports", "videoUrl": "https://videos.lectern.dev/packages.mp4", "duration": 410,
			 "resources": [{"title": "Effective Go", "url": "https://go.dev/doc/effective_go"}]},
			{"_id": "types", "title": "Types and Values", "videoUrl": "https://videos.lectern.dev/types.mp4", "duration": "520",
			 "codeSnippets": [{"language": "go", "code": "var x int = 42"}]}
		]},
		{"_id": "control", "title": "Control Flow", "lessons": [
			{"_id": "loops", "title": "Loops", "videoUrl": "https://videos.lectern.dev/loops.mp4", "duration": 380},
			{"_id": "errors", "title": "Errors as Values", "videoUrl": "https://videos.lectern.dev/errors.mp4", "duration": 465,
			 "quiz": {"questions": [{"q": "What does errors.Is compare?", "a": "the error chain"}]}}
		]},
		{"_id": "concurrency", "title": "Concurrency", "lessons": [
			{"_id": "goroutines", "title": "Goroutines", "videoUrl": "https://videos.lectern.dev/goroutines.mp4", "duration": 540},
			{"_id": "channels", "title": "Channels", "videoUrl": "https://videos.lectern.dev/channels.mp4", "duration": 600},
			{"_id": "select", "title": "Select", "videoUrl": "https://videos.lectern.dev/select.mp4", "duration": 455}
		]}
	]
}`

// demoBackend serves the sample course to a single enrolled demo user.
func demoBackend() *api.MockBackend {
	c, err := course.Decode([]byte(demoCourseJSON))
	if err != nil {
		panic("demo course: " + err.Error())
	}
	m := api.NewMockBackend()
	m.AddCourse(c)
	m.AddUser(demoEmail, demoPassword, demoUserID)
	m.Enroll(demoUserID, demoCourseID, 0)
	return m
}
