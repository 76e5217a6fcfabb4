package analytics

import (
	"errors"
	"strconv"
	"strings"

	"github.com/sosodev/duration"
)

// Window is a lookback period in days.
type Window int

const (
	Window7   Window = 7
	Window30  Window = 30
	Window90  Window = 90
	Window365 Window = 365
)

var ErrUnsupportedWindow = errors.New("window must be 7, 30, 90 or 365 days")

func (w Window) Valid() bool {
	switch w {
	case Window7, Window30, Window90, Window365:
		return true
	}
	return false
}

// ParseWindow accepts a plain day count ("30") or an ISO-8601 duration ("P30D", "P1W",
// "P3M", "P1Y"). Months count as 30 days and years as 365. An empty string means 30.
func ParseWindow(s string) (Window, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Window30, nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		return checked(Window(n))
	}

	d, err := duration.Parse(strings.ToUpper(s))
	if err != nil {
		return 0, ErrUnsupportedWindow
	}
	if d.Negative || d.Hours != 0 || d.Minutes != 0 || d.Seconds != 0 {
		return 0, ErrUnsupportedWindow
	}

	days := d.Years*365 + d.Months*30 + d.Weeks*7 + d.Days
	if days != float64(int(days)) {
		return 0, ErrUnsupportedWindow
	}
	return checked(Window(int(days)))
}

func checked(w Window) (Window, error) {
	if !w.Valid() {
		return 0, ErrUnsupportedWindow
	}
	return w, nil
}
