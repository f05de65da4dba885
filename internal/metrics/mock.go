package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	eventsApplied     map[string]int
	eventsIgnored     map[string]int
	ballsBowled       int
	wickets           int
	matchesCompleted  int
	dispatchDurations []float64
	stateSaveFailed   int
	liveSyncFailed    int
	slackNotifSent    int
	slackNotifFailed  int
	startupTime       float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		eventsApplied:     make(map[string]int),
		eventsIgnored:     make(map[string]int),
		dispatchDurations: make([]float64, 0),
	}
}

func (m *Mock) IncEventApplied(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsApplied[kind]++
}

func (m *Mock) IncEventIgnored(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsIgnored[kind]++
}

func (m *Mock) IncBallsBowled() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ballsBowled++
}

func (m *Mock) IncWickets() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wickets++
}

func (m *Mock) IncMatchesCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesCompleted++
}

func (m *Mock) ObserveDispatchDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dispatchDurations = append(m.dispatchDurations, duration)
}

func (m *Mock) IncStateSaveFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stateSaveFailed++
}

func (m *Mock) IncLiveSyncFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.liveSyncFailed++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// EventsApplied returns how many events of kind were applied.
func (m *Mock) EventsApplied(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsApplied[kind]
}

// EventsIgnored returns how many events of kind were ignored.
func (m *Mock) EventsIgnored(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsIgnored[kind]
}

func (m *Mock) BallsBowled() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ballsBowled
}

func (m *Mock) Wickets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wickets
}

func (m *Mock) MatchesCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesCompleted
}

// DispatchDurations returns the number of durations observed.
func (m *Mock) DispatchDurations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.dispatchDurations)
}

func (m *Mock) StateSaveFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateSaveFailed
}

func (m *Mock) LiveSyncFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.liveSyncFailed
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// StoreMock is an in-memory MetricsStore.
type StoreMock struct {
	mu     sync.Mutex
	values map[string]int
}

// NewStoreMock creates an empty StoreMock.
func NewStoreMock() *StoreMock {
	return &StoreMock{values: make(map[string]int)}
}

func (m *StoreMock) Increment(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key]++
}

func (m *StoreMock) GetAll() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

// Get returns the tally for key.
func (m *StoreMock) Get(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key]
}
