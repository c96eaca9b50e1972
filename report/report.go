// Package report prints focusplug state to the command line and exports it
// as JSON or YAML
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/focusplug/focusplug/enforce"
	"github.com/focusplug/focusplug/internal/apperr"
	"github.com/focusplug/focusplug/internal/models"
	"github.com/focusplug/focusplug/internal/osutil"
	"github.com/focusplug/focusplug/internal/timeutil"
	"github.com/focusplug/focusplug/internal/ui"
	"github.com/focusplug/focusplug/music"
	"github.com/focusplug/focusplug/stats"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const (
	barChartChar  = "▇"
	barChartWidth = 40
	dateLayout    = "Jan 02, 2006"
	noSessionsMsg = "No sessions found for the specified time range"
)

var errUnknownFormat = &apperr.Error{Message: "unknown output format: %s"}

// Export is the machine readable form of the stats report.
type Export struct {
	Ledger stats.Snapshot `json:"ledger" yaml:"ledger"`
	Period PeriodExport   `json:"period" yaml:"period"`
}

// PeriodExport summarizes the session history of a period.
type PeriodExport struct {
	Start        time.Time   `json:"start"         yaml:"start"`
	End          time.Time   `json:"end"           yaml:"end"`
	FocusTime    string      `json:"focus_time"    yaml:"focus_time"`
	Daily        []DayExport `json:"daily"         yaml:"daily"`
	FocusSeconds int         `json:"focus_seconds" yaml:"focus_seconds"`
	Completed    int         `json:"completed"     yaml:"completed"`
	Abandoned    int         `json:"abandoned"     yaml:"abandoned"`
}

// DayExport is the focus time of one calendar day.
type DayExport struct {
	Date         string `json:"date"          yaml:"date"`
	FocusSeconds int    `json:"focus_seconds" yaml:"focus_seconds"`
}

// NewExport combines the ledger and a period summary.
func NewExport(ledger stats.Snapshot, s *stats.Summary) Export {
	days := make([]DayExport, 0, len(s.Daily))

	for date, d := range s.Daily {
		days = append(days, DayExport{
			Date:         date,
			FocusSeconds: int(d.Seconds()),
		})
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})

	focus := int(s.FocusTime.Seconds())

	return Export{
		Ledger: ledger,
		Period: PeriodExport{
			Start:        s.StartTime,
			End:          s.EndTime,
			Completed:    s.Completed,
			Abandoned:    s.Abandoned,
			FocusSeconds: focus,
			FocusTime:    timeutil.FormatFocusTime(focus, true),
			Daily:        days,
		},
	}
}

// Stats writes the stats report in format.
func Stats(w io.Writer, format Format, ledger stats.Snapshot, s *stats.Summary) error {
	switch format {
	case FormatJSON:
		b, err := json.MarshalIndent(NewExport(ledger, s), "", "  ")
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(w, string(b))

		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(NewExport(ledger, s)); err != nil {
			return err
		}

		return enc.Close()
	case FormatText, "":
		return statsText(w, ledger, s)
	default:
		return errUnknownFormat.Fmt(format)
	}
}

func statsText(w io.Writer, ledger stats.Snapshot, s *stats.Summary) error {
	var b strings.Builder

	b.WriteString(pterm.DefaultSection.Sprint("Focus ledger"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Today: %s sessions, %s\n",
		ui.Highlight(ledger.TodaysSessions),
		ui.Highlight(ledger.TodaysFocusTime),
	)
	fmt.Fprintf(&b, "All time: %s sessions, %s\n",
		ui.Highlight(ledger.TotalSessions),
		ui.Highlight(ledger.TotalFocusTime),
	)
	fmt.Fprintf(&b, "Streak: %s days\n", ui.Highlight(ledger.Streak))

	period := "All time"
	if !s.StartTime.IsZero() {
		period = s.StartTime.Format(dateLayout) + " - " + s.EndTime.Format(dateLayout)
	}

	b.WriteString(pterm.DefaultSection.Sprint("Period: " + period))
	b.WriteString("\n")

	if s.Completed+s.Abandoned == 0 {
		b.WriteString(pterm.Info.Sprintln(noSessionsMsg))

		_, err := io.WriteString(w, b.String())

		return err
	}

	fmt.Fprintf(&b, "Focus time: %s\n", ui.Highlight(
		timeutil.FormatFocusTime(int(s.FocusTime.Seconds()), true),
	))
	fmt.Fprintf(&b, "Sessions: %s completed, %s abandoned\n",
		ui.Green(s.Completed),
		ui.Red(s.Abandoned),
	)

	b.WriteString(pterm.DefaultSection.Sprint("Hourly breakdown"))
	b.WriteString("\n")
	b.WriteString(hourlyChart(s.Hourly))

	_, err := io.WriteString(w, b.String())

	return err
}

func hourlyChart(hours [24]time.Duration) string {
	var (
		b       strings.Builder
		longest time.Duration
	)

	for _, d := range hours {
		longest = max(longest, d)
	}

	for h, d := range hours {
		if d == 0 {
			continue
		}

		width := int(float64(d) / float64(longest) * barChartWidth)
		if width == 0 {
			width = 1
		}

		fmt.Fprintf(&b, "%02d:00 %s %s\n",
			h,
			ui.Green(strings.Repeat(barChartChar, width)),
			timeutil.FormatFocusTime(int(d.Seconds()), false),
		)
	}

	return b.String()
}

// Sessions prints a table of session history records.
func Sessions(w io.Writer, sessions []*models.Session) error {
	if len(sessions) == 0 {
		_, err := io.WriteString(w, pterm.Info.Sprintln(noSessionsMsg))
		return err
	}

	data := [][]string{{"#", "START DATE", "END DATE", "FOCUS", "STATUS"}}

	for i, sess := range sessions {
		status := ui.Green("completed")
		if !sess.Completed {
			status = ui.Red("abandoned")
		}

		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			sess.StartTime.Format("Jan 02, 2006 03:04 PM"),
			sess.EndTime.Format("Jan 02, 2006 03:04 PM"),
			timeutil.FormatFocusTime(sess.ElapsedSeconds, false),
			status,
		})
	}

	return ui.PrintTable(w, data)
}

// Status prints the enforcement state.
func Status(w io.Writer, st enforce.Status) error {
	if !st.Blocking {
		_, err := fmt.Fprintln(w, "Websites are not blocked")
		return err
	}

	_, err := fmt.Fprintf(w,
		"Blocking %s websites since %s\n",
		ui.Highlight(len(st.Domains)),
		st.UpdatedAt.Format("03:04 PM"),
	)
	if err != nil {
		return err
	}

	return Websites(w, st.Domains)
}

// Websites prints a block list, one domain per line.
func Websites(w io.Writer, domains []string) error {
	for _, d := range domains {
		if _, err := fmt.Fprintln(w, "  "+d); err != nil {
			return err
		}
	}

	return nil
}

// Tracks prints a music queue.
func Tracks(w io.Writer, tracks []music.Track) error {
	data := [][]string{{"#", "TITLE", "ARTIST", "LENGTH"}}

	for i, t := range tracks {
		length := ""
		if t.Duration > 0 {
			length = timeutil.FormatClock(int(t.Duration.Seconds()))
		}

		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			t.Title,
			t.Artist,
			length,
		})
	}

	return ui.PrintTable(w, data)
}

// Quit prints err and exits.
func Quit(err error) {
	pterm.Error.Println(err)
	os.Exit(int(osutil.ExitError))
}
