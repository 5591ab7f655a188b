package workers

import (
	"context"
	"log/slog"
	"os"
	"taskroom/contract"
	"taskroom/domain/event"
	"taskroom/observability"
	"time"

	"github.com/shirou/gopsutil/process"
)

var _ contract.Worker = (*TelemetryWorker)(nil)

// TelemetryWorker counts broadcast events per name and periodically logs
// the counters together with process self-stats (RSS, CPU).
type TelemetryWorker struct {
	log            *slog.Logger
	monitor        *observability.Monitor
	metricInterval time.Duration
	telemetryChan  chan event.DomainEvent
}

func NewTelemetryWorker(log *slog.Logger, monitor *observability.Monitor,
	metricInterval time.Duration, telemetryChan chan event.DomainEvent) *TelemetryWorker {
	return &TelemetryWorker{
		log:            log,
		monitor:        monitor,
		metricInterval: metricInterval,
		telemetryChan:  telemetryChan,
	}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return ctx.Err()
		case evt, ok := <-w.telemetryChan:
			if !ok {
				w.log.Debug("Channel is closed")
				return nil
			}
			w.monitor.Record(evt.Name())
		case <-ticker.C:
			w.report(proc)
		}
	}
}

func (w *TelemetryWorker) report(proc *process.Process) {
	attrs := []any{"uptime", w.monitor.Uptime().Round(time.Second).String()}

	if mem, err := proc.MemoryInfo(); err == nil {
		attrs = append(attrs, "rss_mb", mem.RSS/1024/1024)
	}
	if cpu, err := proc.CPUPercent(); err == nil {
		attrs = append(attrs, "cpu_percent", cpu)
	}
	for name, count := range w.monitor.Snapshot() {
		attrs = append(attrs, "events_"+name, count)
	}

	w.log.Info("Telemetry report", attrs...)
}
