package screens

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ogc16/FitnessApp/internal/logs"
	"github.com/ogc16/FitnessApp/internal/models"
	"github.com/ogc16/FitnessApp/internal/workout"
)

// StartWorkoutTypes are the quick-start tiles on the workouts tab.
var StartWorkoutTypes = []string{"Running", "Strength", "Cycling", "Yoga"}

type RecentWorkout struct {
	Type     string
	Date     string
	Duration string
	Calories int
}

// SampleRecentWorkouts are shown until the user has posted anything.
var SampleRecentWorkouts = []RecentWorkout{
	{Type: "Running", Date: "Today", Duration: "45 min", Calories: 420},
	{Type: "Strength", Date: "Yesterday", Duration: "1 hr", Calories: 380},
}

type RecentWorkoutSource interface {
	RecentWorkouts(ctx context.Context) ([]models.Post, error)
}

type Workouts struct {
	source RecentWorkoutSource
	now    func() time.Time

	Recent []RecentWorkout
}

func NewWorkouts(source RecentWorkoutSource) *Workouts {
	return &Workouts{source: source, now: time.Now, Recent: SampleRecentWorkouts}
}

func (s *Workouts) Load(ctx context.Context) {
	posts, err := s.source.RecentWorkouts(ctx)
	if err != nil {
		logs.LogJSON("ERROR", "Error fetching recent workouts", map[string]any{"error": err.Error()})
		s.Recent = SampleRecentWorkouts
		return
	}
	if len(posts) == 0 {
		s.Recent = SampleRecentWorkouts
		return
	}

	recent := make([]RecentWorkout, 0, len(posts))
	for _, post := range posts {
		recent = append(recent, RecentWorkout{
			Type:     post.ActivityType,
			Date:     relativeDay(post.CreatedAt, s.now()),
			Duration: workout.FormatDuration(post.Duration),
		})
	}
	s.Recent = recent
}

func relativeDay(at, now time.Time) string {
	at = at.In(now.Location())
	y1, m1, d1 := at.Date()
	y2, m2, d2 := now.Date()
	day := time.Date(y1, m1, d1, 0, 0, 0, 0, now.Location())
	today := time.Date(y2, m2, d2, 0, 0, 0, 0, now.Location())

	// Compare calendar days; a DST change makes a day 23 or 25 hours long.
	switch {
	case day.Equal(today):
		return "Today"
	case day.AddDate(0, 0, 1).Equal(today):
		return "Yesterday"
	}
	if y1 == y2 {
		return at.Format("Jan 2")
	}
	return at.Format("Jan 2, 2006")
}

func (s *Workouts) Render(w io.Writer) {
	fmt.Fprintln(w, "Start Workout")
	for _, name := range StartWorkoutTypes {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Recent Workouts")
	for _, recent := range s.Recent {
		line := fmt.Sprintf("  %s (%s)  %s", recent.Type, recent.Date, recent.Duration)
		if recent.Calories > 0 {
			line += fmt.Sprintf("  %d cal", recent.Calories)
		}
		fmt.Fprintln(w, line)
	}
}
