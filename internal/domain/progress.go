package domain

import (
	"fmt"
	"math"
	"sync"
	"time"
)

type RecalculationStatus string

const (
	RecalculationStatus_Idle           RecalculationStatus = "idle"
	RecalculationStatus_FetchingPrices RecalculationStatus = "fetching_prices"
	RecalculationStatus_Calculating    RecalculationStatus = "calculating"
	RecalculationStatus_Completed      RecalculationStatus = "completed"
	RecalculationStatus_Error          RecalculationStatus = "error"
)

const maxProgressLogs = 50

// Progress is shared between the recalculation goroutine and any number
// of readers. Every method holds the lock only long enough to copy.
type Progress struct {
	mu         sync.Mutex
	status     RecalculationStatus
	message    string
	total      int
	processed  int
	current    string
	logs       []string
	startedAt  *time.Time
	finishedAt *time.Time

	now func() time.Time
}

type ProgressSnapshot struct {
	Status      RecalculationStatus `json:"status"`
	Message     string              `json:"message"`
	Total       int                 `json:"total"`
	Processed   int                 `json:"processed"`
	Current     string              `json:"current"`
	ProgressPct float64             `json:"progressPct"`
	Logs        []string            `json:"logs"`
	StartedAt   *time.Time          `json:"startedAt"`
	FinishedAt  *time.Time          `json:"finishedAt"`
}

func NewProgress() *Progress {
	return &Progress{
		status: RecalculationStatus_Idle,
		logs:   []string{},
		now:    time.Now,
	}
}

// Reset clears counters and logs at the start of a pass and moves
// straight to the pass's first status, under one lock
func (p *Progress) Reset(status RecalculationStatus, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now().UTC()
	p.status = status
	p.message = message
	p.total = 0
	p.processed = 0
	p.current = ""
	p.logs = []string{}
	p.startedAt = &now
	p.finishedAt = nil
}

func (p *Progress) SetStatus(status RecalculationStatus, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status = status
	p.message = message
	if status == RecalculationStatus_Completed || status == RecalculationStatus_Error {
		now := p.now().UTC()
		p.finishedAt = &now
	}
}

func (p *Progress) SetTotal(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
	p.processed = 0
	p.current = ""
}

// Advance marks one more unit of work done
func (p *Progress) Advance(current string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processed++
	p.current = current
}

// Log appends a timestamped line, keeping only the most recent ones
func (p *Progress) Log(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	line := fmt.Sprintf("[%s] %s", p.now().Format("15:04:05"), msg)
	p.logs = append(p.logs, line)
	if len(p.logs) > maxProgressLogs {
		p.logs = append([]string{}, p.logs[len(p.logs)-maxProgressLogs:]...)
	}
}

func (p *Progress) Status() RecalculationStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	pct := 0.0
	if p.total > 0 {
		pct = math.Round(float64(p.processed)/float64(p.total)*1000) / 10
	}

	return ProgressSnapshot{
		Status:      p.status,
		Message:     p.message,
		Total:       p.total,
		Processed:   p.processed,
		Current:     p.current,
		ProgressPct: pct,
		Logs:        append([]string{}, p.logs...),
		StartedAt:   p.startedAt,
		FinishedAt:  p.finishedAt,
	}
}
