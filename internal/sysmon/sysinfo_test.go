package sysmon_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/agbru/resmon/internal/sysmon"
	"github.com/agbru/resmon/internal/sysmon/mocks"
	"github.com/golang/mock/gomock"
)

func TestReadSystemInfo_WithGPU(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	probe := mocks.NewMockProbe(ctrl)
	probe.EXPECT().Memory(gomock.Any()).Return(sysmon.MemoryReading{Used: 1, Total: 16 << 30}, nil)
	probe.EXPECT().CPUs(gomock.Any()).Return([]sysmon.CoreReading{{}, {}}, nil).AnyTimes()

	gpu := mocks.NewMockGPUBackend(ctrl)
	gpu.EXPECT().Devices().Return([]string{"GPU Zero", "GPU One"})

	info := sysmon.ReadSystemInfo(context.Background(), probe, gpu)
	if info.MaxMem != 16<<30 {
		t.Errorf("MaxMem = %d, want %d", info.MaxMem, uint64(16<<30))
	}
	if info.GPUCount != 2 || len(info.GPUNames) != 2 || info.GPUNames[1] != "GPU One" {
		t.Errorf("GPU fields = %d %v", info.GPUCount, info.GPUNames)
	}
	if info.CPUCoreCount == 0 {
		t.Error("CPUCoreCount should be resolved by some source")
	}
}

func TestReadSystemInfo_NoGPUAndNoMemory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	probe := mocks.NewMockProbe(ctrl)
	probe.EXPECT().Memory(gomock.Any()).Return(sysmon.MemoryReading{}, errors.New("denied"))
	probe.EXPECT().CPUs(gomock.Any()).Return([]sysmon.CoreReading{{}}, nil).AnyTimes()

	info := sysmon.ReadSystemInfo(context.Background(), probe, nil)
	if info.MaxMem != 0 {
		t.Errorf("MaxMem = %d, want 0", info.MaxMem)
	}
	if info.GPUCount != 0 || info.GPUNames == nil || len(info.GPUNames) != 0 {
		t.Errorf("GPU fields = %d %#v, want 0 and an empty slice", info.GPUCount, info.GPUNames)
	}

	raw, err := json.Marshal(info)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"cpu_brand"`, `"cpu_core_count"`, `"cache_l1"`, `"cache_l3"`, `"max_mem"`, `"gpu_names":[]`} {
		if !strings.Contains(string(raw), key) {
			t.Errorf("JSON %s missing %s", raw, key)
		}
	}
}
