package ui

// statusMsg is a workflow notification rendered in the status line.
type statusMsg struct {
	text  string
	isErr bool
}

// StatusNotifier adapts the workflow notification interface to bubbletea
// messages. Notifications are buffered; when the buffer is full the oldest
// unseen notification is simply dropped rather than blocking a workflow.
type StatusNotifier struct {
	ch chan statusMsg
}

// NewStatusNotifier creates a notifier for the TUI status line.
func NewStatusNotifier() *StatusNotifier {
	return &StatusNotifier{ch: make(chan statusMsg, 16)}
}

func (n *StatusNotifier) Success(msg string) { n.push(statusMsg{text: msg}) }
func (n *StatusNotifier) Error(msg string)   { n.push(statusMsg{text: msg, isErr: true}) }

func (n *StatusNotifier) push(msg statusMsg) {
	select {
	case n.ch <- msg:
	default:
	}
}
