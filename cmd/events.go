package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/lectern/internal/store"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect the local player journal",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent player events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		courseID, _ := cmd.Flags().GetString("course")

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		events, err := d.store.EventRepo().QueryPlayerEvents(cmd.Context(), store.QueryOpts{
			Limit:    limit,
			CourseID: courseID,
		})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No player events found.")
			return nil
		}

		// Header.
		fmt.Printf("%-5s  %-19s  %-20s  %-17s  %-20s  %4s  %s\n",
			"Seq", "Timestamp", "Course", "Action", "Lesson", "%", "Detail")
		fmt.Println(strings.Repeat("─", 110))

		for _, e := range events {
			fmt.Printf("%-5d  %-19s  %-20s  %-17s  %-20s  %4d  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				clip(e.CourseID, 20),
				e.Action,
				clip(e.LessonID, 20),
				e.Percent,
				e.Detail,
			)
		}
		return nil
	},
}

var eventsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the journal per course",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		events, err := d.store.EventRepo().QueryPlayerEvents(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No player events found.")
			return nil
		}

		stats := summarize(events)
		fmt.Printf("%-24s  %6s  %9s  %7s  %8s\n", "Course", "Opens", "Completed", "Percent", "Failures")
		fmt.Println(strings.Repeat("─", 64))
		for _, s := range stats {
			fmt.Printf("%-24s  %6d  %9d  %6d%%  %8d\n",
				clip(s.courseID, 24), s.opens, s.completions, s.percent, s.failures)
		}
		return nil
	},
}

type courseStats struct {
	courseID    string
	opens       int
	completions int
	failures    int
	percent     int
	lastSeq     int64
}

// summarize folds events (newest first) into per-course totals, most
// recently active course first.
func summarize(events []store.PlayerEvent) []courseStats {
	byCourse := make(map[string]*courseStats)
	for _, e := range events {
		s, ok := byCourse[e.CourseID]
		if !ok {
			s = &courseStats{courseID: e.CourseID, lastSeq: e.Sequence, percent: -1}
			byCourse[e.CourseID] = s
		}
		switch e.Action {
		case store.ActionOpened:
			s.opens++
		case store.ActionLessonCompleted:
			s.completions++
		case store.ActionProgressFailed, store.ActionLoadFailed:
			s.failures++
		}
		if s.percent < 0 && (e.Action == store.ActionOpened || e.Action == store.ActionLessonCompleted) {
			s.percent = e.Percent
		}
	}

	out := make([]courseStats, 0, len(byCourse))
	for _, s := range byCourse {
		if s.percent < 0 {
			s.percent = 0
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].lastSeq > out[j].lastSeq })
	return out
}

func init() {
	eventsListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	eventsListCmd.Flags().StringP("course", "c", "", "Only show events for this course")

	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsStatsCmd)
}
