package monitor_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agbru/resmon/internal/logging"
	"github.com/agbru/resmon/internal/monitor"
	"github.com/agbru/resmon/internal/sysmon"
	"github.com/agbru/resmon/internal/sysmon/mocks"
	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
)

// stepClock returns t0, t0+step, t0+2*step, ... on successive calls.
func stepClock(t0 time.Time, step time.Duration) func() time.Time {
	n := 0
	return func() time.Time {
		t := t0.Add(time.Duration(n) * step)
		n++
		return t
	}
}

func expectHost(p *mocks.MockProbe, cores []sysmon.CoreReading, net ...sysmon.NetCounters) {
	p.EXPECT().CPUs(gomock.Any()).Return(cores, nil).AnyTimes()
	p.EXPECT().Memory(gomock.Any()).Return(sysmon.MemoryReading{Used: 4 << 30, Total: 16 << 30}, nil).AnyTimes()
	p.EXPECT().Processes(gomock.Any()).Return(sysmon.ProcessReading{ReadBytes: 1000, WrittenBytes: 2000, Count: 321}, nil).AnyTimes()
	p.EXPECT().Uptime(gomock.Any()).Return(uint64(3600), nil).AnyTimes()
	calls := make([]*gomock.Call, 0, len(net))
	for _, n := range net {
		calls = append(calls, p.EXPECT().Network(gomock.Any()).Return(n, nil))
	}
	gomock.InOrder(calls...)
}

func TestCollector_SampleAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	probe := mocks.NewMockProbe(ctrl)
	expectHost(probe,
		[]sysmon.CoreReading{{Usage: 10, FreqMHz: 3000}, {Usage: 30, FreqMHz: 3400}},
		sysmon.NetCounters{RxBytes: 1000, TxBytes: 1000},
		sysmon.NetCounters{RxBytes: 3000, TxBytes: 1500},
	)

	t0 := time.Unix(1_700_000_000, 0)
	c := monitor.NewCollector(probe, monitor.WithClock(stepClock(t0, time.Second)))

	first := c.SampleAll(context.Background())
	if first.Network != (monitor.Network{}) {
		t.Errorf("first tick network = %+v, want zero", first.Network)
	}
	second := c.SampleAll(context.Background())

	if !second.Timestamp.Equal(t0.Add(time.Second)) {
		t.Errorf("Timestamp = %v", second.Timestamp)
	}
	if want := (monitor.Network{Down: 2000, Up: 500}); second.Network != want {
		t.Errorf("Network = %+v, want %+v", second.Network, want)
	}
	if len(second.CPUs) != 2 || second.CPUs[1] != (monitor.Core{Usage: 30, Freq: 3400}) {
		t.Errorf("CPUs = %+v", second.CPUs)
	}
	if second.Mem != 4<<30 || second.MemMax != 16<<30 {
		t.Errorf("Mem = %d/%d", second.Mem, second.MemMax)
	}
	if second.Disk != (monitor.DiskIO{ReadBytes: 1000, WrittenBytes: 2000}) {
		t.Errorf("Disk = %+v", second.Disk)
	}
	if second.Processes != 321 || second.UpTime != 3600 {
		t.Errorf("Processes/UpTime = %d/%d", second.Processes, second.UpTime)
	}
	if second.GPUs == nil || len(second.GPUs) != 0 {
		t.Errorf("GPUs = %#v, want empty non-nil slice without a backend", second.GPUs)
	}
}

func TestCollector_ZeroElapsedRetainsRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	probe := mocks.NewMockProbe(ctrl)
	expectHost(probe, []sysmon.CoreReading{{}},
		sysmon.NetCounters{RxBytes: 0},
		sysmon.NetCounters{RxBytes: 1000},
		sysmon.NetCounters{RxBytes: 50_000},
	)

	t0 := time.Unix(0, 0)
	times := []time.Time{t0, t0.Add(time.Second), t0.Add(time.Second)}
	i := 0
	c := monitor.NewCollector(probe, monitor.WithClock(func() time.Time {
		ts := times[i]
		i++
		return ts
	}))

	c.SampleAll(context.Background())
	prev := c.SampleAll(context.Background()).Network
	same := c.SampleAll(context.Background()).Network
	if same != prev {
		t.Errorf("zero elapsed: Network = %+v, want previous %+v", same, prev)
	}
}

func TestCollector_DegradesFailedDomains(t *testing.T) {
	ctrl := gomock.NewController(t)
	probe := mocks.NewMockProbe(ctrl)
	boom := errors.New("unavailable")
	probe.EXPECT().CPUs(gomock.Any()).Return(nil, boom)
	probe.EXPECT().Memory(gomock.Any()).Return(sysmon.MemoryReading{}, boom)
	probe.EXPECT().Processes(gomock.Any()).Return(sysmon.ProcessReading{}, boom)
	probe.EXPECT().Network(gomock.Any()).Return(sysmon.NetCounters{}, boom)
	probe.EXPECT().Uptime(gomock.Any()).Return(uint64(0), boom)

	var buf bytes.Buffer
	logger := logging.NewZerologAdapter(zerolog.New(zerolog.SyncWriter(&buf)).Level(zerolog.DebugLevel))
	c := monitor.NewCollector(probe, monitor.WithCoreCount(4), monitor.WithCollectorLogger(logger))

	snap := c.SampleAll(context.Background())
	if len(snap.CPUs) != 4 {
		t.Fatalf("CPUs len = %d, want the fixed core count 4", len(snap.CPUs))
	}
	for i, core := range snap.CPUs {
		if core != (monitor.Core{}) {
			t.Errorf("core %d = %+v, want zero", i, core)
		}
	}
	if snap.Mem != 0 || snap.MemMax != 0 || snap.Processes != 0 || snap.UpTime != 0 || snap.Network != (monitor.Network{}) {
		t.Errorf("expected zero readings, got %+v", snap)
	}
	for _, domain := range []string{"cpu", "memory", "process", "network", "uptime"} {
		if !strings.Contains(buf.String(), `"domain":"`+domain+`"`) {
			t.Errorf("no degraded log entry for %s: %s", domain, buf.String())
		}
	}
}

func TestCollector_NormalizesCoreCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	probe := mocks.NewMockProbe(ctrl)
	gomock.InOrder(
		probe.EXPECT().CPUs(gomock.Any()).Return([]sysmon.CoreReading{{Usage: 1}, {Usage: 2}, {Usage: 3}}, nil),
		probe.EXPECT().CPUs(gomock.Any()).Return([]sysmon.CoreReading{{Usage: 9}}, nil),
	)
	probe.EXPECT().Memory(gomock.Any()).Return(sysmon.MemoryReading{}, nil).AnyTimes()
	probe.EXPECT().Processes(gomock.Any()).Return(sysmon.ProcessReading{}, nil).AnyTimes()
	probe.EXPECT().Network(gomock.Any()).Return(sysmon.NetCounters{}, nil).AnyTimes()
	probe.EXPECT().Uptime(gomock.Any()).Return(uint64(1), nil).AnyTimes()

	c := monitor.NewCollector(probe)
	first := c.SampleAll(context.Background())
	second := c.SampleAll(context.Background())
	if len(first.CPUs) != 3 || len(second.CPUs) != 3 {
		t.Fatalf("CPU list lengths = %d, %d, want 3, 3", len(first.CPUs), len(second.CPUs))
	}
	if second.CPUs[0].Usage != 9 || second.CPUs[2] != (monitor.Core{}) {
		t.Errorf("second CPUs = %+v", second.CPUs)
	}
}

func TestCollector_GPUFailureIsolated(t *testing.T) {
	ctrl := gomock.NewController(t)
	probe := mocks.NewMockProbe(ctrl)
	expectHost(probe, []sysmon.CoreReading{{}}, sysmon.NetCounters{})

	gpu := mocks.NewMockGPUBackend(ctrl)
	gpu.EXPECT().Devices().Return([]string{"A", "B", "C"}).AnyTimes()
	gpu.EXPECT().Sample(gomock.Any()).Return(
		[]sysmon.GPUReading{
			{Usage: 50, MemUsed: 1 << 30, MemTotal: 8 << 30, TempC: 60},
			{Usage: 99, MemUsed: 99, MemTotal: 99, TempC: 99},
			{Usage: 5, MemUsed: 2 << 30, MemTotal: 4 << 30, TempC: 40},
		},
		[]error{nil, errors.New("Xid 79"), nil},
	)

	snap := monitor.NewCollector(probe, monitor.WithGPU(gpu)).SampleAll(context.Background())
	if len(snap.GPUs) != 3 {
		t.Fatalf("GPUs len = %d, want 3", len(snap.GPUs))
	}
	if snap.GPUs[0] != (monitor.GPU{Usage: 50, Mem: 1 << 30, MaxMem: 8 << 30, Temp: 60}) {
		t.Errorf("GPU 0 = %+v", snap.GPUs[0])
	}
	if snap.GPUs[1] != (monitor.GPU{}) {
		t.Errorf("GPU 1 = %+v, want zero after its read failed", snap.GPUs[1])
	}
	if snap.GPUs[2].Temp != 40 {
		t.Errorf("GPU 2 = %+v", snap.GPUs[2])
	}
}

func TestCollector_ProbePanicReachesCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	probe := mocks.NewMockProbe(ctrl)
	probe.EXPECT().CPUs(gomock.Any()).Return([]sysmon.CoreReading{{}}, nil).AnyTimes()
	probe.EXPECT().Memory(gomock.Any()).Return(sysmon.MemoryReading{}, nil).AnyTimes()
	probe.EXPECT().Processes(gomock.Any()).Return(sysmon.ProcessReading{}, nil).AnyTimes()
	probe.EXPECT().Network(gomock.Any()).Return(sysmon.NetCounters{}, nil).AnyTimes()
	probe.EXPECT().Uptime(gomock.Any()).DoAndReturn(func(context.Context) (uint64, error) {
		panic("driver fault")
	})

	defer func() {
		if r := recover(); r != "driver fault" {
			t.Errorf("recovered %v, want the probe's panic value", r)
		}
	}()
	monitor.NewCollector(probe).SampleAll(context.Background())
	t.Error("SampleAll should have panicked")
}
