package source

import (
	"log/slog"

	"github.com/distatus/battery"

	"vizex/pkg/common"
)

func (System) Battery() ([]common.Battery, error) {
	bats, err := battery.GetAll()
	if err != nil && len(bats) == 0 {
		return nil, unavailable("battery", err)
	}
	if err != nil {
		slog.Debug("Partial battery information", "error", err)
	}

	var out []common.Battery
	for i, b := range bats {
		if b == nil || b.Full <= 0 {
			continue
		}
		out = append(out, fromBattery(i, b))
	}
	if len(out) == 0 {
		return nil, unavailable("battery", common.ErrNoBattery)
	}
	return out, nil
}

func fromBattery(index int, b *battery.Battery) common.Battery {
	out := common.Battery{
		Index:       index,
		Percent:     common.Percent(b.Current, b.Full),
		State:       b.State.String(),
		SecondsLeft: -1,
	}
	switch b.State.Raw {
	case battery.Charging, battery.Full, battery.Idle:
		out.PowerPlugged = true
	}
	if b.State.Raw == battery.Discharging && b.ChargeRate > 0 {
		out.SecondsLeft = int64(b.Current / b.ChargeRate * 3600)
	}
	return out
}
