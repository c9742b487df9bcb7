package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// noticeKind identifies the transient UI elements that clear themselves
type noticeKind int

const (
	noticeError noticeKind = iota
	noticeSignInHint
	noticeCelebration
)

// noticeExpiredMsg reports that a notice's timer lapsed. It carries the
// generation that armed the timer, so a timer from an earlier Show can
// never clear a notice that was re-shown since.
type noticeExpiredMsg struct {
	kind noticeKind
	id   int
}

// notice is one auto-expiring piece of transient UI state. The error
// line, the sign-in hint, and the celebration banner all run on it.
type notice struct {
	kind  noticeKind
	delay time.Duration
	id    int
	text  string
	shown bool
}

func newNotice(kind noticeKind, delay time.Duration) *notice {
	return &notice{kind: kind, delay: delay}
}

// Show activates the notice and returns the command that expires it
// after the configured delay
func (n *notice) Show(text string) tea.Cmd {
	n.shown = true
	n.text = text
	n.id++
	id := n.id
	return tea.Tick(n.delay, func(time.Time) tea.Msg {
		return noticeExpiredMsg{kind: n.kind, id: id}
	})
}

// Set activates the notice without scheduling an expiry
func (n *notice) Set(text string) {
	n.shown = true
	n.text = text
}

// Expire hides the notice when the message matches its kind and latest
// generation. Reports whether the notice was hidden.
func (n *notice) Expire(msg noticeExpiredMsg) bool {
	if msg.kind != n.kind || msg.id != n.id {
		return false
	}
	n.shown = false
	return true
}

// Clear hides the notice immediately
func (n *notice) Clear() {
	n.shown = false
}

func (n *notice) Active() bool { return n.shown }
func (n *notice) Text() string { return n.text }
