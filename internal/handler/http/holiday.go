package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/holiday"
)

type HolidayHandler interface {
	ListHolidays(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	calendar holiday.Calendar
}

func NewHolidayHandler(calendar holiday.Calendar) HolidayHandler {
	return &holidayHandlerImpl{calendar: calendar}
}

// ListHolidays implements HolidayHandler
func (h *holidayHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		v, err := strconv.Atoi(y)
		if err != nil || v < 1970 || v > 9999 {
			response.BadRequest(w, "year must be between 1970 and 9999", nil)
			return
		}
		year = v
	}

	type holidayItem struct {
		Date    string `json:"date"`
		Weekday string `json:"weekday"`
		Label   string `json:"label"`
	}
	items := make([]holidayItem, 0)
	for _, d := range h.calendar.List(year) {
		items = append(items, holidayItem{
			Date:    d.Date.Format("2006-01-02"),
			Weekday: schedule.WeekdayLabel(d.Date),
			Label:   d.Label,
		})
	}

	response.Success(w, map[string]interface{}{
		"year":     year,
		"holidays": items,
	})
}
