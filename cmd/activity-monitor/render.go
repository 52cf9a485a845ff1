package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/reugn/go-perfmon/monitor"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	labelStyle  = lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color("63"))
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F87"))
)

// snapshot is one printed report.
type snapshot struct {
	stats       monitor.Stats
	threadUsage float64 // negative if unavailable
	allocated   int64
	constrained bool
	collectors  monitor.Collectors
}

func (s snapshot) render() string {
	var b strings.Builder
	st := s.stats

	header := fmt.Sprintf("---------- %s", st.Timestamp.Format("15:04:05.000"))
	if s.constrained {
		header += " " + warnStyle.Render("CONSTRAINED")
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteByte('\n')

	thread := "n/a"
	if s.threadUsage >= 0 {
		thread = fmt.Sprintf("%.2f%%", s.threadUsage*100)
	}
	s.line(&b, "CPU", fmt.Sprintf("cores: %d, process: %.2f%% (%.2f%% of machine), current thread: %s",
		st.Processors, st.ProcessCPU*100, st.ProcessCPUPercent, thread))

	if s.collectors.Has(monitor.CollectMemory) {
		m := st.Memory
		s.line(&b, "Memory", fmt.Sprintf("rss: %s (peak %s), virtual: %s, system used: %.1f%%",
			humanize.IBytes(m.ResidentSetSize), humanize.IBytes(m.ResidentSetSizePeak),
			humanize.IBytes(m.VirtualMemorySize), st.MemoryUsedPercent))
		if m.PhysFootprint > 0 {
			s.line(&b, "", fmt.Sprintf("footprint: %s, compressed: %s",
				humanize.IBytes(m.PhysFootprint), humanize.IBytes(m.Compressed)))
		}
	}

	s.line(&b, "Heap", fmt.Sprintf("in use: %s, allocated since start: %s, goroutines: %s",
		humanize.IBytes(st.HeapAllocated), signedBytes(s.allocated), humanize.Comma(int64(st.GoroutineCount))))

	if s.collectors.Has(monitor.CollectFD) {
		fds := "n/a"
		if st.FDCount >= 0 {
			fds = humanize.Comma(int64(st.FDCount))
		}
		s.line(&b, "FD", "open: "+fds)
	}

	if s.collectors.Has(monitor.CollectIO) {
		s.line(&b, "IO", fmt.Sprintf("in: %s (%s ops), out: %s (%s ops)",
			humanize.IBytes(st.IO.ReadBytes), humanize.Comma(int64(st.IO.ReadCount)),
			humanize.IBytes(st.IO.WriteBytes), humanize.Comma(int64(st.IO.WriteCount))))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (s snapshot) line(b *strings.Builder, label, text string) {
	b.WriteString(labelStyle.Render(label))
	b.WriteString(text)
	b.WriteByte('\n')
}

func signedBytes(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}
