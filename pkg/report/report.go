// Package report builds and serializes the summary of a pool run.
//
// Reports are JSON documents encoded with goccy/go-json. Files whose name
// ends in ".zst" are zstd-compressed.
package report

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/ajitpratap0/spawnpool/pkg/errors"
	"github.com/ajitpratap0/spawnpool/pkg/pool"
)

// CompressedExt marks report files written with zstd
const CompressedExt = ".zst"

// Report summarizes one pool after a run
type Report struct {
	Pool        string         `json:"pool"`
	GeneratedAt time.Time      `json:"generated_at"`
	Stats       pool.Stats     `json:"stats"`
	Depths      map[string]int `json:"depths"`
	Simulation  *Simulation    `json:"simulation,omitempty"`
	Resources   *Resources     `json:"resources,omitempty"`
}

// Simulation summarizes a spawn simulation
type Simulation struct {
	Rounds   int            `json:"rounds"`
	Acquired int            `json:"acquired"`
	Released int            `json:"released"`
	Failures map[string]int `json:"failures,omitempty"`
	Duration time.Duration  `json:"duration_ns"`
}

// Resources is a sample of the process' resource usage
type Resources struct {
	RSSBytes   uint64  `json:"rss_bytes"`
	VMSBytes   uint64  `json:"vms_bytes"`
	CPUPercent float64 `json:"cpu_percent"`
	Threads    int32   `json:"threads"`
	Goroutines int     `json:"goroutines"`
}

// Build creates a report from a pool's counters and queue depths. Resource
// usage is sampled when the platform supports it.
func Build[K comparable, E any](p *pool.Pool[K, E], sim *Simulation) *Report {
	depths := make(map[string]int)
	for k, n := range p.Depths() {
		depths[fmt.Sprint(k)] = n
	}
	r := &Report{
		Pool:        p.Name(),
		GeneratedAt: time.Now().UTC(),
		Stats:       p.Stats(),
		Depths:      depths,
		Simulation:  sim,
	}
	if res, err := SampleResources(); err == nil {
		r.Resources = res
	}
	return r
}

// SampleResources reads the current process' memory and CPU usage
func SampleResources() (*Resources, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "failed to open process")
	}

	res := &Resources{Goroutines: runtime.NumGoroutine()}
	memInfo, err := proc.MemoryInfo()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "failed to read memory info")
	}
	res.RSSBytes = memInfo.RSS
	res.VMSBytes = memInfo.VMS

	// CPU and thread counts are best effort; not every platform reports them.
	res.CPUPercent, _ = proc.CPUPercent()
	res.Threads, _ = proc.NumThreads()
	return res, nil
}

// Write encodes r as indented JSON, zstd-compressed when compress is set
func Write(w io.Writer, r *Report, compress bool) error {
	if !compress {
		return encode(w, r)
	}

	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to create zstd writer")
	}
	if err := encode(zw, r); err != nil {
		_ = zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to flush compressed report")
	}
	return nil
}

// WriteFile writes r to path, compressing when path ends in CompressedExt
func WriteFile(path string, r *Report) error {
	f, err := os.Create(path) //nolint:gosec // G304: path is supplied by the operator
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to create report file").
			WithDetail("path", path)
	}
	if err := Write(f, r, strings.HasSuffix(path, CompressedExt)); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to close report file").
			WithDetail("path", path)
	}
	return nil
}

// Read decodes a report written by Write
func Read(rd io.Reader, compressed bool) (*Report, error) {
	if compressed {
		zr, err := zstd.NewReader(rd)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open compressed report")
		}
		defer zr.Close()
		rd = zr
	}

	r := &Report{}
	if err := gojson.NewDecoder(rd).Decode(r); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to decode report")
	}
	return r, nil
}

// ReadFile reads a report file, decompressing when path ends in CompressedExt
func ReadFile(path string) (*Report, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is supplied by the operator
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open report file").
			WithDetail("path", path)
	}
	defer f.Close()
	return Read(f, strings.HasSuffix(path, CompressedExt))
}

func encode(w io.Writer, r *Report) error {
	enc := gojson.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to encode report")
	}
	return nil
}
