package stats

import (
	"time"

	"github.com/focusplug/focusplug/internal/models"
)

const (
	hoursInADay = 24
	daysInAWeek = 7
	dayLayout   = "2006-01-02"
)

// Summary aggregates the session history of a reporting period.
type Summary struct {
	StartTime time.Time                  `json:"start_time" yaml:"start_time"`
	EndTime   time.Time                  `json:"end_time"   yaml:"end_time"`
	Daily     map[string]time.Duration   `json:"daily"      yaml:"daily"`
	Hourly    [hoursInADay]time.Duration `json:"hourly"     yaml:"hourly"`
	Weekday   [daysInAWeek]time.Duration `json:"weekday"    yaml:"weekday"`
	FocusTime time.Duration              `json:"focus_time" yaml:"focus_time"`
	Completed int                        `json:"completed"  yaml:"completed"`
	Abandoned int                        `json:"abandoned"  yaml:"abandoned"`
}

// Summarize computes the totals of sessions that overlap [start, end]. Only
// the focus time that falls inside the period is counted.
func Summarize(sessions []*models.Session, start, end time.Time) *Summary {
	s := &Summary{
		StartTime: start,
		EndTime:   end,
		Daily:     make(map[string]time.Duration),
	}

	if !start.IsZero() {
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			s.Daily[d.Format(dayLayout)] = 0
		}
	}

	loc := end.Location()

	for _, sess := range sessions {
		from := sess.StartTime.In(loc)
		to := from.Add(sess.Elapsed())

		if to.Before(start) || from.After(end) {
			continue
		}

		if sess.Completed {
			s.Completed++
		} else {
			s.Abandoned++
		}

		if from.Before(start) {
			from = start
		}

		if to.After(end) {
			to = end
		}

		s.add(from, to)
	}

	return s
}

// add splits [from, to) at hour boundaries so that every slice lands in the
// right hourly, daily and weekday bucket.
func (s *Summary) add(from, to time.Time) {
	for t := from; t.Before(to); {
		next := time.Date(t.Year(), t.Month(), t.Day(), t.Hour()+1, 0, 0, 0, t.Location())
		if next.After(to) {
			next = to
		}

		d := next.Sub(t)

		s.FocusTime += d
		s.Hourly[t.Hour()] += d
		s.Weekday[t.Weekday()] += d
		s.Daily[t.Format(dayLayout)] += d

		t = next
	}
}
