package sysmon

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultNvidiaSMI is looked up on PATH when no explicit path is configured.
	DefaultNvidiaSMI = "nvidia-smi"
	// DefaultGPUTimeout bounds a single nvidia-smi invocation.
	DefaultGPUTimeout = 2 * time.Second

	gpuQuery = "--query-gpu=index,name,utilization.gpu,memory.used,memory.total,temperature.gpu"
	mib      = 1024 * 1024
)

var (
	// ErrNoGPUBackend is returned by DetectGPUBackend when no usable backend exists.
	ErrNoGPUBackend = errors.New("no GPU backend available")
	errGPUMissing   = errors.New("device missing from nvidia-smi output")
)

// NvidiaSMI reads NVIDIA GPUs by running nvidia-smi in CSV query mode once
// per sample. The device list is fixed at detection time.
type NvidiaSMI struct {
	path    string
	timeout time.Duration
	names   []string
}

// DetectGPUBackend locates nvidia-smi and runs one query to enumerate devices.
// It returns ErrNoGPUBackend when the binary is absent, the query fails, or no
// device is listed, in which case the GPU domain should be omitted.
//
// Parameters:
//   - ctx: Bounds the detection query.
//   - path: Binary name or path; empty means DefaultNvidiaSMI.
//   - timeout: Per-invocation limit; zero means DefaultGPUTimeout.
//
// Returns:
//   - *NvidiaSMI: The backend, or nil.
//   - error: ErrNoGPUBackend wrapping the reason detection failed.
func DetectGPUBackend(ctx context.Context, path string, timeout time.Duration) (*NvidiaSMI, error) {
	if path == "" {
		path = DefaultNvidiaSMI
	}
	if timeout <= 0 {
		timeout = DefaultGPUTimeout
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGPUBackend, err)
	}
	n := &NvidiaSMI{path: resolved, timeout: timeout}
	rows, err := n.query(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGPUBackend, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: nvidia-smi listed no devices", ErrNoGPUBackend)
	}
	n.names = make([]string, len(rows))
	for i, row := range rows {
		n.names[i] = row.name
	}
	return n, nil
}

// Devices implements GPUBackend.
func (n *NvidiaSMI) Devices() []string {
	return n.names
}

// Sample implements GPUBackend. When the whole invocation fails every device
// gets the same error; a malformed row only affects its own device.
func (n *NvidiaSMI) Sample(ctx context.Context) ([]GPUReading, []error) {
	readings := make([]GPUReading, len(n.names))
	errs := make([]error, len(n.names))
	rows, err := n.query(ctx)
	if err != nil {
		for i := range errs {
			errs[i] = err
		}
		return readings, errs
	}
	seen := make([]bool, len(n.names))
	for _, row := range rows {
		if row.index < 0 || row.index >= len(n.names) {
			continue
		}
		seen[row.index] = true
		readings[row.index], errs[row.index] = row.reading, row.err
	}
	for i, ok := range seen {
		if !ok {
			errs[i] = errGPUMissing
		}
	}
	return readings, errs
}

type gpuRow struct {
	index   int
	name    string
	reading GPUReading
	err     error
}

func (n *NvidiaSMI) query(ctx context.Context) ([]gpuRow, error) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, n.path, gpuQuery, "--format=csv,noheader,nounits")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("nvidia-smi: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("nvidia-smi: %w", err)
	}
	return parseGPUCSV(out)
}

// parseGPUCSV parses the output of the gpuQuery columns. Device names may
// themselves contain commas, so the name is everything between the index and
// the last four numeric columns.
func parseGPUCSV(out []byte) ([]gpuRow, error) {
	var rows []gpuRow
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 4*1024), 64*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		// The name sits between the index and the four numeric columns and
		// may itself contain commas, so it is cut out verbatim.
		first := strings.IndexByte(line, ',')
		last := len(line)
		for range 4 {
			if last = strings.LastIndexByte(line[:last], ','); last <= first {
				return nil, fmt.Errorf("nvidia-smi: unexpected line %q", line)
			}
		}
		index, err := strconv.Atoi(strings.TrimSpace(line[:first]))
		if err != nil {
			return nil, fmt.Errorf("nvidia-smi: bad index in %q", line)
		}
		metrics := strings.Split(line[last+1:], ",")
		for i := range metrics {
			metrics[i] = strings.TrimSpace(metrics[i])
		}
		row := gpuRow{index: index, name: strings.TrimSpace(line[first+1 : last])}
		row.reading, row.err = parseGPUMetrics(metrics)
		rows = append(rows, row)
	}
	return rows, scanner.Err()
}

func parseGPUMetrics(fields []string) (GPUReading, error) {
	var vals [4]uint64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || v < 0 {
			return GPUReading{}, fmt.Errorf("unreadable value %q", f)
		}
		vals[i] = uint64(v)
	}
	return GPUReading{
		Usage:    uint32(min(vals[0], 100)),
		MemUsed:  vals[1] * mib,
		MemTotal: vals[2] * mib,
		TempC:    uint32(vals[3]),
	}, nil
}
