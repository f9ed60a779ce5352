package state

import (
	"github.com/startuphub/startuphub/pkg/logger"
	"github.com/startuphub/startuphub/pkg/metrics"
)

// LogListener logs every change at debug level.
func LogListener() Listener {
	log := logger.With("state")
	return func(c Change) {
		if c.StartupID != 0 {
			log.WithField("startup", c.StartupID).Debugf("change %s", c.Kind)
			return
		}
		log.Debugf("change %s", c.Kind)
	}
}

// MetricsListener counts changes by kind and tracks the published gauge.
func MetricsListener(s *Store) Listener {
	return func(c Change) {
		metrics.StateChanges.WithLabelValues(string(c.Kind)).Inc()
		switch c.Kind {
		case ChangeLoad, ChangePublish, ChangeDelete:
			s.Read(func(st *State) {
				metrics.PublishedStartups.Set(float64(len(st.Published())))
			})
		}
	}
}
