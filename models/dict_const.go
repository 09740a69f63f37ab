package models

import "github.com/pkg/errors"

type WorkArrangement string

const (
	WorkArrangementOnsite WorkArrangement = "Onsite"
	WorkArrangementHybrid WorkArrangement = "Hybrid"
	WorkArrangementRemote WorkArrangement = "Remote"
)

func (w WorkArrangement) Validate() error {
	switch w {
	case "", WorkArrangementOnsite, WorkArrangementHybrid, WorkArrangementRemote:
		return nil
	}
	return errors.Errorf("unknown work arrangement: %v", w)
}

type JRShift string

const (
	ShiftDay        JRShift = "Day"
	ShiftNight      JRShift = "Night"
	ShiftRotational JRShift = "Rotational"
)

func (s JRShift) Validate() error {
	switch s {
	case "", ShiftDay, ShiftNight, ShiftRotational:
		return nil
	}
	return errors.Errorf("unknown shift: %v", s)
}

type JRPriority string

const (
	PriorityLow    JRPriority = "Low"
	PriorityMedium JRPriority = "Medium"
	PriorityHigh   JRPriority = "High"
)

func (p JRPriority) Validate() error {
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
		return nil
	}
	return errors.Errorf("unknown priority: %v", p)
}
