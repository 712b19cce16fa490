package source

import (
	"fmt"
	"log/slog"

	"github.com/shirou/gopsutil/v3/disk"

	"vizex/pkg/common"
)

func (System) Disks(every bool) ([]common.Partition, error) {
	stats, err := disk.Partitions(every)
	if err != nil {
		return nil, unavailable("disk", fmt.Errorf("listing partitions: %w", err))
	}

	seen := make(map[string]bool)
	var parts []common.Partition
	for _, st := range stats {
		if seen[st.Mountpoint] {
			continue
		}
		seen[st.Mountpoint] = true

		p := common.Partition{
			Device:     st.Device,
			MountPoint: st.Mountpoint,
			FSType:     st.Fstype,
		}
		if !every && p.Pseudo() {
			slog.Debug("Skipping pseudo filesystem", "mountpoint", p.MountPoint, "fstype", p.FSType)
			continue
		}

		usage, err := disk.Usage(st.Mountpoint)
		if err != nil {
			slog.Debug("Skipping partition", "mountpoint", st.Mountpoint, "error", err)
			continue
		}
		p.Total = usage.Total
		p.Used = usage.Used
		p.Free = usage.Free
		parts = append(parts, p)
	}

	slog.Debug("Sampled partitions", "count", len(parts), "every", every)
	return parts, nil
}
