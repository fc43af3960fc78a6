package clockmode

import (
	"github.com/sweeney/nixie-clock/internal/bcd"
	"github.com/sweeney/nixie-clock/internal/display"
	"github.com/sweeney/nixie-clock/internal/settings"
)

// TimeFrame renders HH.MM.SS. The separators on tubes 3 and 6 blink in
// opposite phases, swapping every second.
func TimeFrame(s *settings.Settings) display.Frame {
	hour := s.Time.Hours
	if s.Main.TimeFormat12h {
		hour = bcd.To12Hour(hour)
	}
	odd := s.Time.Seconds.Ones()&0x01 == 1
	sep := display.Tube{Digit: display.Blank, BlinkOn: odd, BlinkOff: !odd}

	return display.Frame{
		display.Steady(display.Digit(hour.Tens() & 0x03)),
		display.Steady(display.Digit(hour.Ones())),
		sep,
		display.Steady(display.Digit(s.Time.Minutes.Tens())),
		display.Steady(display.Digit(s.Time.Minutes.Ones())),
		sep,
		display.Steady(display.Digit(s.Time.Seconds.Tens())),
		display.Steady(display.Digit(s.Time.Seconds.Ones())),
	}
}

// DateFrame renders DD MM YY or MM DD YY depending on the date format bit.
func DateFrame(s *settings.Settings) display.Frame {
	first, second := s.Time.Month, s.Time.Date
	if s.Main.DateFormatDDMM {
		first, second = s.Time.Date, s.Time.Month
	}
	return display.FrameOf([display.NumTubes]display.Digit{
		display.Digit(first.Tens() & 0x03),
		display.Digit(first.Ones()),
		display.Blank,
		display.Digit(second.Tens() & 0x03),
		display.Digit(second.Ones()),
		display.Blank,
		display.Digit(s.Time.Year.Tens()),
		display.Digit(s.Time.Year.Ones()),
	})
}

// DayOfWeekFrame shows the day index on tube 5 with a leading zero on tube 4.
func DayOfWeekFrame(s *settings.Settings) display.Frame {
	f := display.BlankFrame()
	f[3] = display.Steady(0)
	f[4] = display.Steady(display.Digit(s.Time.DayOfWeek))
	return f
}

// ArmedAlarmsFrame shows alarm 1 on tube 4 and alarm 2 on tube 5, 1 = armed.
func ArmedAlarmsFrame(c settings.Control) display.Frame {
	f := display.BlankFrame()
	f[3] = display.Steady(display.Digit(c & 0x01))
	f[4] = display.Steady(display.Digit((c >> 1) & 0x01))
	return f
}
