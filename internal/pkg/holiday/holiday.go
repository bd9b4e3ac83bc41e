// Package holiday lists French public holidays.
package holiday

import (
	"fmt"
	"sort"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/aa"
	"github.com/rickar/cal/v2/fr"
)

const (
	RegionMetropole     = "metropole"
	RegionAlsaceMoselle = "alsace-moselle"
)

const dateLayout = "2006-01-02"

// Local holidays of Alsace-Moselle on top of the national ones.
var (
	vendrediSaint = aa.GoodFriday.Clone(&cal.Holiday{Name: "Vendredi saint", Type: cal.ObservancePublic})
	saintEtienne  = aa.ChristmasDay2.Clone(&cal.Holiday{Name: "Saint-Étienne", Type: cal.ObservancePublic})
)

type Holiday struct {
	Date  time.Time `json:"date"`
	Label string    `json:"label"`
}

// Calendar provides holiday lookup. Holidays are informational, they never
// change the hour computations.
type Calendar interface {
	// ForYear returns the holidays of a year keyed by "2006-01-02".
	ForYear(year int) map[string]string

	// Label returns the holiday name of date, or "" on a regular day.
	Label(date time.Time) string

	// List returns the holidays of a year in date order.
	List(year int) []Holiday
}

type frenchCalendar struct {
	region   string
	business *cal.BusinessCalendar
}

func NewCalendar(region string) (Calendar, error) {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(fr.Holidays...)

	switch region {
	case "", "fr", RegionMetropole:
		return &frenchCalendar{region: RegionMetropole, business: c}, nil
	case RegionAlsaceMoselle:
		c.AddHoliday(vendrediSaint, saintEtienne)
		return &frenchCalendar{region: RegionAlsaceMoselle, business: c}, nil
	default:
		return nil, fmt.Errorf("unsupported holiday region %q", region)
	}
}

// List implements Calendar. Dates are midnight UTC, the library computes
// them in its default location.
func (c *frenchCalendar) List(year int) []Holiday {
	list := make([]Holiday, 0, len(c.business.Holidays))
	for _, h := range c.business.Holidays {
		actual, _ := h.Calc(year)
		if actual.IsZero() {
			continue
		}
		list = append(list, Holiday{
			Date:  time.Date(actual.Year(), actual.Month(), actual.Day(), 0, 0, 0, 0, time.UTC),
			Label: h.Name,
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list
}

func (c *frenchCalendar) ForYear(year int) map[string]string {
	list := c.List(year)
	result := make(map[string]string, len(list))
	for _, h := range list {
		result[h.Date.Format(dateLayout)] = h.Label
	}
	return result
}

func (c *frenchCalendar) Label(date time.Time) string {
	return c.ForYear(date.Year())[date.Format(dateLayout)]
}
