package effects

import "log/slog"

// Notifier receives user-visible failure notifications. The UI collaborator
// supplies something modal/alert-level; the default implementation just
// logs, which is what a headless deployment wants.
type Notifier interface {
	Alert(msg string)
}

// LogNotifier is the default Notifier: every alert becomes a warning log.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Alert(msg string) {
	n.Logger.Warn("request failed", slog.String("message", msg))
}
