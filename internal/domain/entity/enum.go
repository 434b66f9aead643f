package entity

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// ErrInvalidEnumValue is returned when a value outside a closed set is written.
var ErrInvalidEnumValue = errors.New("invalid enum value")

type enum interface {
	~string
	Valid() bool
}

func enumValue[T enum](v T) (driver.Value, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEnumValue, string(v))
	}
	return string(v), nil
}

// ParseEnum converts raw input into a member of the closed set T.
func ParseEnum[T enum](raw string) (T, error) {
	v := T(raw)
	if !v.Valid() {
		var zero T
		return zero, fmt.Errorf("%w: %q", ErrInvalidEnumValue, raw)
	}
	return v, nil
}

// HealthStatus is the triage colour of a patient record.
type HealthStatus string

const (
	HealthStatusCritical          HealthStatus = "Critical"
	HealthStatusRequiresAttention HealthStatus = "Requires Attention"
	HealthStatusStable            HealthStatus = "Stable"
)

var HealthStatuses = []HealthStatus{HealthStatusCritical, HealthStatusRequiresAttention, HealthStatusStable}

func (s HealthStatus) Valid() bool {
	switch s {
	case HealthStatusCritical, HealthStatusRequiresAttention, HealthStatusStable:
		return true
	}
	return false
}

func (s HealthStatus) Value() (driver.Value, error) { return enumValue(s) }

// Priority of a treatment.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

func (p Priority) Value() (driver.Value, error) { return enumValue(p) }

// DosageFrequency is the medication schedule of a treatment.
type DosageFrequency string

const (
	DosageDaily   DosageFrequency = "Daily"
	DosageWeekly  DosageFrequency = "Weekly"
	DosageMonthly DosageFrequency = "Monthly"
)

var DosageFrequencies = []DosageFrequency{DosageDaily, DosageWeekly, DosageMonthly}

func (d DosageFrequency) Valid() bool {
	switch d {
	case DosageDaily, DosageWeekly, DosageMonthly:
		return true
	}
	return false
}

func (d DosageFrequency) Value() (driver.Value, error) { return enumValue(d) }

// Duration is the unit a treatment runs for.
type Duration string

const (
	DurationDays   Duration = "Days"
	DurationWeeks  Duration = "Weeks"
	DurationMonths Duration = "Months"
)

var Durations = []Duration{DurationDays, DurationWeeks, DurationMonths}

func (d Duration) Valid() bool {
	switch d {
	case DurationDays, DurationWeeks, DurationMonths:
		return true
	}
	return false
}

func (d Duration) Value() (driver.Value, error) { return enumValue(d) }
