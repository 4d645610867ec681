package appconfig

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"exusiai.dev/cardrank/internal/model"
	"exusiai.dev/cardrank/internal/util/rankutil"
)

type Weekday time.Weekday

func (d *Weekday) Decode(value string) error {
	v := strings.ToLower(strings.TrimSpace(value))
	for w := time.Sunday; w <= time.Saturday; w++ {
		name := strings.ToLower(w.String())
		if v == name || v == name[:3] {
			*d = Weekday(w)
			return nil
		}
	}
	return fmt.Errorf("invalid weekday: %q", value)
}

func (d Weekday) Weekday() time.Weekday {
	return time.Weekday(d)
}

type Location struct {
	*time.Location
}

func (l *Location) Decode(value string) error {
	loc, err := time.LoadLocation(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("invalid time zone: %q (%w)", value, err)
	}
	l.Location = loc
	return nil
}

type TierTable []model.OriginalityTier

func (t *TierTable) Decode(value string) error {
	tiers, err := rankutil.ParseTiers(value)
	if err != nil {
		return err
	}
	*t = tiers
	return nil
}
