package logging

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"
)

// GormLogger routes gorm's logger through l. Slow queries warn above 200ms;
// statement tracing follows the debug level.
func GormLogger(l *logrus.Logger) logger.Interface {
	lvl := logger.Warn
	if l.IsLevelEnabled(logrus.DebugLevel) {
		lvl = logger.Info
	}
	return logger.New(printer{l}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

type printer struct{ l *logrus.Logger }

func (p printer) Printf(format string, args ...interface{}) {
	p.l.WithField("component", "gorm").Infof(format, args...)
}
