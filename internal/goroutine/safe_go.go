// Package goroutine запускает фоновые задачи, переживающие panic.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/proposalgen/proposal-backend/internal/logger"
)

// RecoveryHandler перехватывает panic в фоновых задачах.
type RecoveryHandler struct {
	log func() *logrus.Logger
}

// NewRecoveryHandler создаёт обработчик. log вызывается при каждой panic,
// поэтому подхватывает логгер, пересозданный через logger.Init.
func NewRecoveryHandler(log func() *logrus.Logger) *RecoveryHandler {
	return &RecoveryHandler{log: log}
}

// SafeGo запускает fn в горутине. Panic логируется со стеком и не роняет процесс.
func (rh *RecoveryHandler) SafeGo(task string, fn func()) {
	go rh.run(task, fn)
}

func (rh *RecoveryHandler) run(task string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			rh.log().WithFields(logrus.Fields{
				"task":  task,
				"panic": fmt.Sprint(r),
				"stack": string(debug.Stack()),
			}).Error("goroutine: panic в фоновой задаче")
		}
	}()
	fn()
}

// DefaultRecoveryHandler пишет в logger.Log.
var DefaultRecoveryHandler = NewRecoveryHandler(func() *logrus.Logger { return logger.Log })

// SafeGo запускает задачу через DefaultRecoveryHandler.
func SafeGo(task string, fn func()) {
	DefaultRecoveryHandler.SafeGo(task, fn)
}
