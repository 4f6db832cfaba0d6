package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/lectern/internal/api"
	"github.com/abhisek/lectern/internal/course"
	"github.com/spf13/cobra"
)

var outlineCmd = &cobra.Command{
	Use:   "outline <course-id>",
	Short: "Print a course's lessons in playback order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		c, err := d.backend.GetCourse(cmd.Context(), args[0])
		if errors.Is(err, api.ErrNotFound) {
			return fmt.Errorf("course %q not found", args[0])
		}
		if err != nil {
			return fmt.Errorf("load course: %w", err)
		}

		printOutline(c)
		return nil
	},
}

func printOutline(c *course.Course) {
	fmt.Printf("%s (%s)\n\n", c.Title, c.ID)

	// Header.
	fmt.Printf("%4s  %-24s  %-36s  %8s  %s\n", "#", "Section", "Lesson", "Duration", "Preview")
	fmt.Println(strings.Repeat("─", 88))

	seq := course.Flatten(c)
	for i, ref := range seq.Refs() {
		sec := c.Section(ref.SectionID)
		secTitle := ref.SectionID
		if sec != nil {
			secTitle = sec.Title
		}
		preview := ""
		if ref.Lesson.FreePreview {
			preview = "free"
		}
		fmt.Printf("%4d  %-24s  %-36s  %8s  %s\n",
			i+1, clip(secTitle, 24), clip(ref.Lesson.Title, 36), clock(ref.Lesson.DurationSecs), preview)
	}

	fmt.Printf("\n%d lessons in %d sections, %s total\n", seq.Len(), len(c.Sections), clock(c.TotalDuration()))
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}

func clock(secs int) string {
	if secs <= 0 {
		return "-"
	}
	if secs >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs/60%60, secs%60)
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
