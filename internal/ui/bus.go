package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"studiodash/internal/notify"
	"studiodash/internal/workspace"
)

// Bus carries messages from workflow ports, which may run on any goroutine,
// into the Bubble Tea loop so model state only changes inside Update.
type Bus struct {
	msgs  *mailbox[tea.Msg]
	notes *mailbox[notify.Notification]
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		msgs:  newMailbox[tea.Msg](),
		notes: newMailbox[notify.Notification](),
	}
}

// Post queues msg without blocking. Post is also called from inside Update,
// which is the only drainer, so the queue is unbounded. Messages arrive in
// the order they were posted.
func (b *Bus) Post(msg tea.Msg) {
	b.msgs.put(msg)
}

// Notifier returns the notification port. Like Post it never blocks and
// never drops, since an error notification is the only trace a failed
// action leaves.
func (b *Bus) Notifier() notify.Notifier {
	return busNotifier{b}
}

// Mask returns the confirmation mask port.
func (b *Bus) Mask() workspace.Mask {
	return busMask{b}
}

// Refresh is the workflow refresh callback.
func (b *Bus) Refresh() {
	b.Post(RefreshMsg{})
}

// busMsg wraps a message that came through the bus, so the receiver knows
// to wait for the next one.
type busMsg struct {
	Msg tea.Msg
}

// Wait returns a command that delivers the next bus message.
func (b *Bus) Wait() tea.Cmd {
	return func() tea.Msg {
		return busMsg{Msg: b.msgs.take()}
	}
}

// WaitNotification returns a command that delivers the next notification.
func (b *Bus) WaitNotification() tea.Cmd {
	return func() tea.Msg {
		return b.notes.take()
	}
}

type busMask struct{ b *Bus }

func (m busMask) ShowMask(a workspace.ConfirmAction) { m.b.Post(ShowMaskMsg{Action: a}) }
func (m busMask) HideMask()                          { m.b.Post(HideMaskMsg{}) }

type busNotifier struct{ b *Bus }

func (n busNotifier) Notify(note notify.Notification) { n.b.notes.put(notify.Fill(note)) }

// mailbox is an unbounded FIFO with a single blocking reader.
type mailbox[T any] struct {
	mu    sync.Mutex
	items []T
	ready chan struct{}
}

func newMailbox[T any]() *mailbox[T] {
	return &mailbox[T]{ready: make(chan struct{}, 1)}
}

func (m *mailbox[T]) put(v T) {
	m.mu.Lock()
	m.items = append(m.items, v)
	m.mu.Unlock()
	select {
	case m.ready <- struct{}{}:
	default:
	}
}

// take blocks until an item is queued and removes the oldest one.
func (m *mailbox[T]) take() T {
	for {
		m.mu.Lock()
		if len(m.items) > 0 {
			v := m.items[0]
			var zero T
			m.items[0] = zero
			m.items = m.items[1:]
			m.mu.Unlock()
			return v
		}
		m.mu.Unlock()
		<-m.ready
	}
}

func (m *mailbox[T]) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
