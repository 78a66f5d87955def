package domain

import (
	"fmt"
	"strings"
	"time"
)

// DeliveryDuration is the length of a delivery period.
type DeliveryDuration int32

const (
	DeliveryDurationUnspecified DeliveryDuration = iota
	DeliveryDurationMinutes5
	DeliveryDurationMinutes15
	DeliveryDurationMinutes30
	DeliveryDurationMinutes60
)

var deliveryDurationNames = []string{"UNSPECIFIED", "MINUTES_5", "MINUTES_15", "MINUTES_30", "MINUTES_60"}

var deliveryDurationLengths = map[DeliveryDuration]time.Duration{
	DeliveryDurationMinutes5:  5 * time.Minute,
	DeliveryDurationMinutes15: 15 * time.Minute,
	DeliveryDurationMinutes30: 30 * time.Minute,
	DeliveryDurationMinutes60: 60 * time.Minute,
}

func (d DeliveryDuration) String() string { return enumName(deliveryDurationNames, int32(d)) }

// Duration returns the length of d, zero when unspecified.
func (d DeliveryDuration) Duration() time.Duration { return deliveryDurationLengths[d] }

func ParseDeliveryDuration(s string) (DeliveryDuration, error) {
	v, err := parseEnum("delivery duration", deliveryDurationNames, s)
	return DeliveryDuration(v), err
}

func DeliveryDurationFromWire(v int32) DeliveryDuration {
	return DeliveryDuration(knownEnum(deliveryDurationNames, v))
}

// DeliveryDurationFromDuration maps 5, 15, 30 and 60 minutes to their
// DeliveryDuration; any other length is rejected.
func DeliveryDurationFromDuration(d time.Duration) (DeliveryDuration, error) {
	for k, v := range deliveryDurationLengths {
		if v == d {
			return k, nil
		}
	}
	return DeliveryDurationUnspecified, fmt.Errorf("%w: unsupported delivery duration %s (want 5m, 15m, 30m or 60m)", ErrInvalid, d)
}

// DeliveryArea is the bidding zone or control area where energy is delivered.
type DeliveryArea struct {
	Code     string
	CodeType EnergyMarketCodeType
}

func (a DeliveryArea) Validate() error {
	if strings.TrimSpace(a.Code) == "" {
		return fmt.Errorf("%w: delivery area code is empty", ErrInvalid)
	}
	if a.CodeType == EnergyMarketCodeTypeUnspecified {
		return fmt.Errorf("%w: delivery area code type is unspecified", ErrInvalid)
	}
	return nil
}

func (a DeliveryArea) String() string {
	return a.Code + "/" + a.CodeType.String()
}

// DeliveryPeriod is the time window in which traded energy is delivered.
// Start is always UTC and aligned to the duration grid.
type DeliveryPeriod struct {
	Start    time.Time
	Duration DeliveryDuration
}

// NewDeliveryPeriod builds a validated DeliveryPeriod.
func NewDeliveryPeriod(start time.Time, d time.Duration) (DeliveryPeriod, error) {
	dd, err := DeliveryDurationFromDuration(d)
	if err != nil {
		return DeliveryPeriod{}, err
	}
	p := DeliveryPeriod{Start: start.UTC(), Duration: dd}
	return p, p.Validate()
}

func (p DeliveryPeriod) Validate() error {
	if p.Start.IsZero() {
		return fmt.Errorf("%w: delivery period start is zero", ErrInvalid)
	}
	length := p.Duration.Duration()
	if length == 0 {
		return fmt.Errorf("%w: delivery period duration is unspecified", ErrInvalid)
	}
	start := p.Start.UTC()
	if start.Second() != 0 || start.Nanosecond() != 0 || start.Minute()%int(length/time.Minute) != 0 {
		return fmt.Errorf("%w: delivery period start %s is not aligned to %s", ErrInvalid, start.Format(time.RFC3339Nano), length)
	}
	return nil
}

func (p DeliveryPeriod) End() time.Time { return p.Start.Add(p.Duration.Duration()) }

func (p DeliveryPeriod) Equal(o DeliveryPeriod) bool {
	return p.Duration == o.Duration && p.Start.Equal(o.Start)
}

func (p DeliveryPeriod) String() string {
	return fmt.Sprintf("%s+%s", p.Start.UTC().Format(time.RFC3339), p.Duration.Duration())
}
