// Package render draws a trainer's weekly timetable as a PNG grid for the
// SPA's schedule view.
package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/juraijvu/learnms/internal/model"
	"github.com/juraijvu/learnms/internal/timeslot"
)

const (
	imageWidth      = 1120
	imageHeight     = 760
	headerHeight    = 60
	leftLabelsWidth = 70
	dayPaddingX     = 6
	blockRadius     = 5.0
	totalDays       = 7
)

var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{222, 222, 222, 255}

	activeColor    = color.RGBA{133, 193, 85, 220}
	pausedColor    = color.RGBA{255, 205, 112, 230}
	cancelledColor = color.RGBA{158, 158, 158, 200}
	completedColor = color.RGBA{134, 176, 219, 230}
	blockTextColor = color.RGBA{20, 24, 28, 230}
)

var dayNames = [totalDays]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// WeekImage renders one week of schedules into a PNG. The vertical axis
// spans the business day (09:00 to 21:00); columns are Sunday through
// Saturday to match Schedule.DayOfWeek.
func WeekImage(title string, schedules []*model.Schedule) ([]byte, error) {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(bgColor)
	dc.Clear()

	firstHour := timeslot.DayStartMinutes / 60
	lastHour := timeslot.DayEndMinutes / 60
	totalHours := lastHour - firstHour

	dayWidth := (imageWidth - leftLabelsWidth) / totalDays
	gridHeight := imageHeight - headerHeight
	cellHeight := float64(gridHeight) / float64(totalHours)

	drawTitle(dc, title)
	drawHourLabels(dc, firstHour, lastHour, cellHeight)

	for day := 0; day < totalDays; day++ {
		x := float64(leftLabelsWidth + day*dayWidth)
		drawDayColumn(dc, day, x, dayWidth, gridHeight, totalHours, cellHeight)
	}

	for _, schedule := range schedules {
		if schedule.DayOfWeek < 0 || schedule.DayOfWeek >= totalDays {
			continue
		}
		x := float64(leftLabelsWidth + schedule.DayOfWeek*dayWidth)
		drawBlock(dc, schedule, x, dayWidth, firstHour, cellHeight)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode week image: %w", err)
	}
	return buf.Bytes(), nil
}

func drawTitle(dc *gg.Context, title string) {
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(imageWidth)/2, float64(headerHeight)/2-8, 0.5, 0.5)
}

func drawHourLabels(dc *gg.Context, firstHour, lastHour int, cellHeight float64) {
	dc.SetColor(hourLabelColor)
	for h := firstHour; h <= lastHour; h++ {
		y := float64(headerHeight) + float64(h-firstHour)*cellHeight
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", h), float64(leftLabelsWidth)-8, y, 1, 0.5)
	}
}

func drawDayColumn(dc *gg.Context, day int, x float64, dayWidth, gridHeight, totalHours int, cellHeight float64) {
	if day%2 == 0 {
		dc.SetColor(evenDayColor)
	} else {
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, float64(headerHeight), float64(dayWidth), float64(gridHeight))
	dc.Fill()

	dc.SetColor(textColor)
	dc.DrawStringAnchored(dayNames[day], x+float64(dayWidth)/2, float64(headerHeight)-14, 0.5, 0.5)

	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)
	for h := 0; h <= totalHours; h++ {
		y := float64(headerHeight) + float64(h)*cellHeight
		dc.DrawLine(x, y, x+float64(dayWidth), y)
		dc.Stroke()
	}
}

func drawBlock(dc *gg.Context, schedule *model.Schedule, x float64, dayWidth, firstHour int, cellHeight float64) {
	startHours := float64(schedule.StartMinutes)/60.0 - float64(firstHour)
	endHours := float64(schedule.EndMinutes)/60.0 - float64(firstHour)

	y := float64(headerHeight) + startHours*cellHeight
	height := (endHours - startHours) * cellHeight
	width := float64(dayWidth) - dayPaddingX*2

	dc.SetColor(statusColor(schedule.Status))
	dc.DrawRoundedRectangle(x+dayPaddingX, y+2, width, height-4, blockRadius)
	dc.Fill()

	dc.SetColor(blockTextColor)
	dc.DrawStringAnchored(schedule.TimeSlot, x+dayPaddingX+6, y+14, 0, 0.5)
}

func statusColor(status model.ScheduleStatus) color.RGBA {
	switch status {
	case model.ScheduleStatusActive:
		return activeColor
	case model.ScheduleStatusPaused:
		return pausedColor
	case model.ScheduleStatusCancelled:
		return cancelledColor
	case model.ScheduleStatusCompleted:
		return completedColor
	}
	return cancelledColor
}
