package sync

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/dayboard/internal/logging"
)

// SyncState represents the state of the background refresh.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncRunning
	SyncError
)

// SyncStatus is a snapshot of the poller state.
type SyncStatus struct {
	State    SyncState
	LastSync time.Time
	Error    error
}

// SyncResultMsg is a tea.Msg sent when a refresh completes.
type SyncResultMsg struct {
	Error error
	// AuthExpired is set when the server rejected the stored session.
	AuthExpired bool
}

// Refresher reloads todos from the server into the store.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// AuthCheck reports whether a refresh error means the session is no
// longer accepted.
type AuthCheck func(error) bool

// fetchTimeout is the maximum time allowed for a single refresh.
const fetchTimeout = 30 * time.Second

// Poller refreshes the board on an interval and on demand.
type Poller struct {
	refresher Refresher
	interval  time.Duration
	isAuthErr AuthCheck
	logger    *zap.Logger

	status    SyncStatus
	resultCh  chan SyncResultMsg
	triggerCh chan struct{}
	stopCh    chan struct{}
	done      chan struct{}
	mu        gosync.Mutex
	running   bool
}

// New creates a Poller. A zero interval only refreshes when triggered.
// isAuthErr may be nil, in which case no failure is flagged as expired.
func New(r Refresher, interval time.Duration, isAuthErr AuthCheck, logger *zap.Logger) *Poller {
	if isAuthErr == nil {
		isAuthErr = func(error) bool { return false }
	}
	return &Poller{
		refresher: r,
		interval:  interval,
		isAuthErr: isAuthErr,
		logger:    logging.OrNop(logger),
		resultCh:  make(chan SyncResultMsg, 16),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start launches the polling goroutine and returns a command that waits
// for the first result. The first refresh runs immediately.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()

	go p.loop()

	return p.WaitForNextResult()
}

// Stop halts the polling goroutine and waits for it to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopCh)
	p.mu.Unlock()

	<-p.done
}

// Trigger asks for an immediate refresh. Requests made while one is
// already pending are coalesced.
func (p *Poller) Trigger() {
	select {
	case p.triggerCh <- struct{}{}:
	default:
	}
}

// Status returns the current sync status.
func (p *Poller) Status() SyncStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// WaitForNextResult returns a tea.Cmd that waits for the next refresh
// result. Call it again after each SyncResultMsg to keep listening.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return func() tea.Msg {
		select {
		case result := <-p.resultCh:
			return result
		case <-p.done:
			return nil
		}
	}
}

func (p *Poller) loop() {
	defer close(p.done)

	var tick <-chan time.Time
	if p.interval > 0 {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	p.refresh()

	for {
		select {
		case <-p.stopCh:
			return
		case <-tick:
			p.refresh()
		case <-p.triggerCh:
			p.refresh()
		}
	}
}

// refresh runs one refresh and publishes the outcome.
func (p *Poller) refresh() {
	p.setStatus(SyncRunning, nil)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	go func() {
		select {
		case <-p.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	err := p.refresher.Refresh(ctx)
	if err != nil {
		p.logger.Warn("background refresh failed", zap.Error(err))
		p.setStatus(SyncError, err)
		p.sendResult(SyncResultMsg{Error: err, AuthExpired: p.isAuthErr(err)})
		return
	}

	p.setStatus(SyncIdle, nil)
	p.sendResult(SyncResultMsg{})
}

func (p *Poller) setStatus(state SyncState, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status.State = state
	p.status.Error = err
	if state == SyncIdle {
		p.status.LastSync = time.Now()
	}
}

// sendResult publishes without blocking; results are dropped when nobody
// is listening.
func (p *Poller) sendResult(msg SyncResultMsg) {
	select {
	case p.resultCh <- msg:
	default:
	}
}
