package source

import (
	"fmt"
	"log/slog"

	"github.com/shirou/gopsutil/v3/cpu"

	"vizex/pkg/common"
)

// CPUCores reports one entry per logical CPU. The maximum comes from
// gopsutil; the current frequency comes from the platform reader and
// falls back to the maximum when the platform exposes none.
func (System) CPUCores() ([]common.CPUCore, error) {
	infos, err := cpu.Info()
	if err != nil {
		return nil, unavailable("cpu", fmt.Errorf("reading cpu info: %w", err))
	}
	if len(infos) == 0 {
		return nil, unavailable("cpu", fmt.Errorf("no cpu information reported"))
	}

	cores := make([]common.CPUCore, 0, len(infos))
	for i, info := range infos {
		core := common.CPUCore{
			Index:      i,
			MaxMHz:     info.Mhz,
			CurrentMHz: info.Mhz,
		}
		if cur, peak, ok := readFrequency(i); ok {
			core.CurrentMHz = cur
			if peak > 0 {
				core.MaxMHz = peak
			}
		}
		cores = append(cores, core)
	}

	slog.Debug("Sampled cpu cores", "count", len(cores))
	return cores, nil
}
