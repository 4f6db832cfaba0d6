package course

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Decode turns a backend course payload into a Course. It is the only place
// that knows about the backend's loose payload shapes: ids as "id" or "_id",
// strings or numbers; images as a URL string or an object with a "url" field;
// durations as numbers or numeric strings; sections under "sections" or
// "curriculum"; and an optional {"data": ...} or {"course": ...} envelope.
func Decode(raw []byte) (*Course, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidPayload)
	}
	root := unwrap(gjson.ParseBytes(raw))
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: expected an object", ErrInvalidPayload)
	}
	if err := validate([]byte(root.Raw)); err != nil {
		return nil, err
	}

	c := &Course{
		ID:          idOf(root),
		Title:       root.Get("title").String(),
		Description: root.Get("description").String(),
		Thumbnail:   urlOf(firstOf(root, "thumbnail", "image", "coverImage")),
	}
	for _, s := range firstOf(root, "sections", "curriculum").Array() {
		c.Sections = append(c.Sections, decodeSection(s))
	}
	if err := checkUniqueIDs(c); err != nil {
		return nil, err
	}
	return c, nil
}

// checkUniqueIDs rejects courses where a lesson id appears twice. Lesson ids
// are the unit of navigation and completion, so they must be unique across
// the whole course.
func checkUniqueIDs(c *Course) error {
	seen := make(map[string]string)
	for _, s := range c.Sections {
		for _, l := range s.Lessons {
			if prev, ok := seen[l.ID]; ok {
				return fmt.Errorf("%w: duplicate lesson id %q in sections %q and %q", ErrInvalidPayload, l.ID, prev, s.ID)
			}
			seen[l.ID] = s.ID
		}
	}
	return nil
}

func decodeSection(r gjson.Result) Section {
	s := Section{
		ID:    idOf(r),
		Title: r.Get("title").String(),
	}
	for _, l := range r.Get("lessons").Array() {
		s.Lessons = append(s.Lessons, decodeLesson(l))
	}
	return s
}

func decodeLesson(r gjson.Result) Lesson {
	return Lesson{
		ID:           idOf(r),
		Title:        r.Get("title").String(),
		VideoURL:     urlOf(firstOf(r, "videoUrl", "video_url", "video")),
		DurationSecs: int(firstOf(r, "duration", "durationSecs").Int()),
		FreePreview:  firstOf(r, "isFreePreview", "freePreview", "is_free_preview").Bool(),
		Description:  r.Get("description").String(),
		Resources:    rawOf(r.Get("resources")),
		CodeSnippets: rawOf(firstOf(r, "codeSnippets", "code_snippets")),
		Quiz:         rawOf(r.Get("quiz")),
	}
}

// unwrap strips a single response envelope if present.
func unwrap(r gjson.Result) gjson.Result {
	for _, key := range []string{"data", "course"} {
		if inner := r.Get(key); inner.IsObject() {
			return inner
		}
	}
	return r
}

func firstOf(r gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if v := r.Get(k); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

func idOf(r gjson.Result) string {
	return firstOf(r, "id", "_id").String()
}

// urlOf accepts either a plain URL string or an object carrying "url".
func urlOf(r gjson.Result) string {
	if r.IsObject() {
		return r.Get("url").String()
	}
	if r.Type == gjson.String {
		return r.Str
	}
	return ""
}

func rawOf(r gjson.Result) json.RawMessage {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	return json.RawMessage(r.Raw)
}
