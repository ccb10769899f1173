package cli

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/datepick/internal/calendar"
	"github.com/terraincognita07/datepick/internal/i18n"
	"github.com/terraincognita07/datepick/internal/picker"
	"github.com/terraincognita07/datepick/internal/services"
)

const (
	gridCellWidth = 3
	ansiReverse   = "\x1b[7m"
	ansiDim       = "\x1b[2m"
	ansiReset     = "\x1b[0m"
)

// RunGridCommand renders the month described by input without storing a
// session.
func RunGridCommand(out io.Writer, manager *i18n.Manager, defaults services.PickerDefaults, input services.CreatePickerInput, clock func() time.Time, highlight bool) error {
	formatters := func(language string) calendar.Formatter {
		return manager.Formatter(language)
	}
	if defaults.Language == "" {
		defaults.Language = manager.DefaultLanguage()
	}

	service := services.NewPickerService(nil, formatters, defaults).WithClock(clock)
	result, err := service.Preview(input)
	if err != nil {
		return err
	}
	return RenderGrid(out, result.View, highlight)
}

// RenderGrid writes a month grid. Plain output marks selected days with "*"
// and disabled days with "-"; highlighted output uses ANSI reverse video and
// dim text instead.
func RenderGrid(out io.Writer, view picker.View, highlight bool) error {
	var builder strings.Builder
	width := 7 * gridCellWidth

	label := view.MonthLabel
	if pad := (width - utf8.RuneCountInString(label)) / 2; pad > 0 {
		builder.WriteString(strings.Repeat(" ", pad))
	}
	builder.WriteString(label)
	builder.WriteByte('\n')

	var header strings.Builder
	for _, name := range view.Headers {
		fmt.Fprintf(&header, "%2s ", name)
	}
	builder.WriteString(strings.TrimRight(header.String(), " "))
	builder.WriteByte('\n')

	for _, week := range view.Weeks {
		var row strings.Builder
		for _, cell := range week {
			row.WriteString(renderGridCell(cell, highlight))
		}
		builder.WriteString(strings.TrimRight(row.String(), " "))
		builder.WriteByte('\n')
	}

	_, err := io.WriteString(out, builder.String())
	return err
}

func renderGridCell(cell picker.DayCell, highlight bool) string {
	day := fmt.Sprintf("%2d", cell.Day)
	switch cell.State() {
	case picker.CellEmpty:
		return strings.Repeat(" ", gridCellWidth)
	case picker.CellDisabled:
		if highlight {
			return ansiDim + day + ansiReset + " "
		}
		return day + "-"
	case picker.CellSelected:
		if highlight {
			return ansiReverse + day + ansiReset + " "
		}
		return day + "*"
	default:
		return day + " "
	}
}
