package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// RecurrenceType is the repeat cadence of a recurring todo.
type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceYearly  RecurrenceType = "yearly"
	RecurrenceCustom  RecurrenceType = "custom"
)

// TodoRecurrence describes how a todo repeats.
type TodoRecurrence struct {
	Type       RecurrenceType `json:"type"`
	Interval   int            `json:"interval"`
	EndDate    *time.Time     `json:"endDate,omitempty"`
	DaysOfWeek []string       `json:"daysOfWeek,omitempty"`
}

var weekdays = map[string]rrule.Weekday{
	"monday":    rrule.MO,
	"tuesday":   rrule.TU,
	"wednesday": rrule.WE,
	"thursday":  rrule.TH,
	"friday":    rrule.FR,
	"saturday":  rrule.SA,
	"sunday":    rrule.SU,
}

// Rule builds the RFC 5545 rule anchored at start.
func (r TodoRecurrence) Rule(start time.Time) (*rrule.RRule, error) {
	opt := rrule.ROption{
		Dtstart:  start,
		Interval: r.Interval,
	}
	if opt.Interval < 1 {
		opt.Interval = 1
	}

	switch r.Type {
	case RecurrenceDaily:
		opt.Freq = rrule.DAILY
	case RecurrenceWeekly:
		opt.Freq = rrule.WEEKLY
	case RecurrenceMonthly:
		opt.Freq = rrule.MONTHLY
	case RecurrenceYearly:
		opt.Freq = rrule.YEARLY
	case RecurrenceCustom:
		if len(r.DaysOfWeek) == 0 {
			return nil, fmt.Errorf("custom recurrence needs at least one day of week")
		}
		opt.Freq = rrule.WEEKLY
	default:
		return nil, fmt.Errorf("unknown recurrence type %q", r.Type)
	}

	for _, day := range r.DaysOfWeek {
		wd, ok := weekdays[strings.ToLower(day)]
		if !ok {
			return nil, fmt.Errorf("unknown day of week %q", day)
		}
		opt.Byweekday = append(opt.Byweekday, wd)
	}

	if r.EndDate != nil {
		opt.Until = *r.EndDate
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("building recurrence rule: %w", err)
	}
	return rule, nil
}

// Next returns the first occurrence strictly after the given time for a
// series anchored at start. ok is false when the series has ended.
func (r TodoRecurrence) Next(start, after time.Time) (next time.Time, ok bool, err error) {
	rule, err := r.Rule(start)
	if err != nil {
		return time.Time{}, false, err
	}
	next = rule.After(after, false)
	if next.IsZero() {
		return time.Time{}, false, nil
	}
	return next, true, nil
}
