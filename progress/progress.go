/*
	Progress reporting for long running graph computations.
*/
package progress

import (
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
)

// Tracker receives progress notifications from a computation. Sub tasks
// nest; LogProgress always applies to the innermost open sub task.
// Implementations must be safe for concurrent LogProgress calls.
type Tracker interface {
	// BeginSubTask opens a sub task that is expected to process volume
	// units of work. A volume <= 0 means unknown.
	BeginSubTask(name string, volume int64)

	// LogProgress reports that delta units of work have been processed.
	LogProgress(delta int64)

	// EndSubTask closes the innermost sub task.
	EndSubTask(name string)

	// EndSubTaskWithFailure closes the innermost sub task after a failure.
	EndSubTaskWithFailure(name string, err error)
}

var _ Tracker = Noop{}

// Noop discards all notifications.
type Noop struct{}

func (Noop) BeginSubTask(string, int64) {}
func (Noop) LogProgress(int64) {}
func (Noop) EndSubTask(string) {}
func (Noop) EndSubTaskWithFailure(string, error) {}

var _ Tracker = (*LogTracker)(nil)

type task struct {
	name        string
	volume      int64
	done        int64
	started     time.Time
	lastPercent int64
}

// LogTracker writes progress to a logrus logger. Task boundaries are logged
// at info level and progress in steps of 10% at debug level.
type LogTracker struct {
	mu     sync.Mutex
	logger *logrus.Entry
	clock  clock.Clock
	tasks  []*task
}

// NewLogTracker returns a tracker that logs to logger and measures task
// durations with clk. A nil clk uses the wall clock.
func NewLogTracker(logger *logrus.Entry, clk clock.Clock) *LogTracker {
	if clk == nil {
		clk = clock.WallClock
	}
	return &LogTracker{logger: logger, clock: clk}
}

func (t *LogTracker) BeginSubTask(name string, volume int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.tasks = append(t.tasks, &task{name: name, volume: volume, started: t.clock.Now()})
	entry := t.logger.WithField("task", name)
	if volume > 0 {
		entry = entry.WithField("volume", humanize.Comma(volume))
	}
	entry.Info("started")
}

func (t *LogTracker) LogProgress(delta int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.tasks) == 0 {
		return
	}
	cur := t.tasks[len(t.tasks)-1]
	cur.done += delta
	if cur.volume <= 0 {
		return
	}

	percent := cur.done * 100 / cur.volume
	if percent > 100 {
		percent = 100
	}
	if percent/10 > cur.lastPercent/10 {
		cur.lastPercent = percent
		t.logger.WithFields(logrus.Fields{
			"task":     cur.name,
			"progress": humanize.Comma(cur.done) + "/" + humanize.Comma(cur.volume),
		}).Debugf("%d%%", percent)
	}
}

func (t *LogTracker) EndSubTask(name string) {
	if cur := t.pop(); cur != nil {
		t.logger.WithFields(logrus.Fields{
			"task":     name,
			"duration": t.clock.Now().Sub(cur.started),
		}).Info("finished")
	}
}

func (t *LogTracker) EndSubTaskWithFailure(name string, err error) {
	if cur := t.pop(); cur != nil {
		t.logger.WithFields(logrus.Fields{
			"task":     name,
			"duration": t.clock.Now().Sub(cur.started),
			"err":      err,
		}).Warn("failed")
	}
}

func (t *LogTracker) pop() *task {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.tasks) == 0 {
		return nil
	}
	cur := t.tasks[len(t.tasks)-1]
	t.tasks = t.tasks[:len(t.tasks)-1]
	return cur
}
