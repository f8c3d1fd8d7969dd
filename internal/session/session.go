package session

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/scmhub/calendar"
)

const (
	StatusOpen    = "交易中"
	StatusPreOpen = "未开盘"
	StatusLunch   = "午间休市"
	StatusClosed  = "已收盘"
	StatusHoliday = "休市"
	exchangeMIC   = "xhkg"
	exchangeZone  = "Asia/Hong_Kong"
)

// Calendar reports the trading session of the Hong Kong exchange.
type Calendar struct {
	cal *calendar.Calendar
	loc *time.Location
}

// NewHKEX loads the HKEX calendar. Without it, sessions fall back to plain
// weekday hours and no holidays.
func NewHKEX() *Calendar {
	c := &Calendar{cal: calendar.GetCalendar(exchangeMIC)}
	if c.cal != nil && c.cal.Loc != nil {
		c.loc = c.cal.Loc
		return c
	}
	if c.cal == nil {
		log.Warn().Str("mic", exchangeMIC).Msg("exchange calendar unavailable, using weekday hours")
	}
	loc, err := time.LoadLocation(exchangeZone)
	if err != nil {
		loc = time.FixedZone("HKT", 8*60*60)
	}
	c.loc = loc
	return c
}

func minuteOfDay(t time.Time) int { return t.Hour()*60 + t.Minute() }

func (c *Calendar) businessDay(t time.Time) bool {
	if c.cal != nil {
		return c.cal.IsBusinessDay(t)
	}
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func (c *Calendar) open(t time.Time) bool {
	if c.cal != nil {
		return c.cal.IsOpen(t)
	}
	m := minuteOfDay(t)
	return c.businessDay(t) && ((m >= 9*60+30 && m < 12*60) || (m >= 13*60 && m < 16*60))
}

// Status returns the session label at now.
func (c *Calendar) Status(now time.Time) string {
	t := now.In(c.loc)
	switch {
	case !c.businessDay(t):
		return StatusHoliday
	case c.open(t):
		return StatusOpen
	}
	switch m := minuteOfDay(t); {
	case m < 9*60+30:
		return StatusPreOpen
	case m >= 12*60 && m < 13*60:
		return StatusLunch
	default:
		return StatusClosed
	}
}

// Location is the exchange's time zone.
func (c *Calendar) Location() *time.Location { return c.loc }
