//go:build linux

package source

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const cpufreqDir = "/sys/devices/system/cpu/cpu%d/cpufreq/%s"

// readFrequency returns the current and maximum frequency of a core in
// MHz from the cpufreq sysfs interface.
func readFrequency(core int) (current, peak float64, ok bool) {
	cur, err := readKHz(fmt.Sprintf(cpufreqDir, core, "scaling_cur_freq"))
	if err != nil {
		return 0, 0, false
	}
	peak, err = readKHz(fmt.Sprintf(cpufreqDir, core, "cpuinfo_max_freq"))
	if err != nil {
		peak = 0
	}
	return cur, peak, true
}

func readKHz(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	khz, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return 0, err
	}
	return khz / 1000, nil
}
