package notifier

import (
	"log/slog"

	"github.com/karibbean/cart-service/internal/core/domain"
	"github.com/karibbean/cart-service/internal/core/port"
)

var _ port.Notifier = (*SlogNotifier)(nil)

// A SlogNotifier writes user-facing notices to the structured log.
type SlogNotifier struct{}

func NewSlogNotifier() SlogNotifier {
	return SlogNotifier{}
}

func (SlogNotifier) Notify(n domain.Notice) {
	log := slog.With("severity", n.Severity)

	switch n.Severity {
	case domain.SeverityError:
		log.Error(n.Message)
	case domain.SeverityWarning:
		log.Warn(n.Message)
	default:
		log.Info(n.Message)
	}
}

var _ port.Notifier = (*Fanout)(nil)

// A Fanout forwards each notice to every registered sink.
type Fanout struct {
	sinks []port.Notifier
}

func NewFanout(sinks ...port.Notifier) Fanout {
	return Fanout{sinks}
}

func (f Fanout) Notify(n domain.Notice) {
	for _, s := range f.sinks {
		s.Notify(n)
	}
}
