// Package telemetry exposes practice sessions as Prometheus metrics. There is
// no server: the registry is written to a textfile for node_exporter or read
// directly in tests.
package telemetry

import (
	"context"
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/verte-zerg/keydrill/internal/tracker"
)

// Recorder counts completed sessions on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	Sessions     *prometheus.CounterVec
	WPM          *prometheus.HistogramVec
	Accuracy     prometheus.Histogram
	Keystrokes   *prometheus.CounterVec
	Backspaces   *prometheus.CounterVec
	PracticeTime prometheus.Counter
	FingerKeys   *prometheus.CounterVec
	FingerErrors *prometheus.CounterVec
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		Sessions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keydrill_sessions_total",
				Help: "Total number of completed practice sessions",
			},
			[]string{"passed"},
		),
		WPM: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "keydrill_session_wpm",
				Help:    "Net words per minute of completed sessions",
				Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 100, 120, 150},
			},
			[]string{"layout"},
		),
		Accuracy: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "keydrill_session_accuracy",
			Help:    "Final accuracy of completed sessions",
			Buckets: []float64{.5, .7, .8, .85, .9, .93, .95, .97, .99, 1},
		}),
		Keystrokes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keydrill_keystrokes_total",
				Help: "Total number of keystrokes typed",
			},
			[]string{"layout"},
		),
		Backspaces: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keydrill_backspaces_total",
				Help: "Total number of backspaces pressed",
			},
			[]string{"layout"},
		),
		PracticeTime: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "keydrill_practice_seconds_total",
			Help: "Total time spent in completed sessions",
		}),
		FingerKeys: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keydrill_finger_keystrokes_total",
				Help: "Keystrokes attributed to each finger",
			},
			[]string{"layout", "finger"},
		),
		FingerErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keydrill_finger_errors_total",
				Help: "Incorrect keystrokes attributed to each finger",
			},
			[]string{"layout", "finger"},
		),
	}
	r.registry.MustRegister(r.Sessions, r.WPM, r.Accuracy, r.Keystrokes, r.Backspaces, r.PracticeTime,
		r.FingerKeys, r.FingerErrors)
	return r
}

func (r *Recorder) Record(_ context.Context, o tracker.Outcome) error {
	res := o.Result
	layout := string(o.Layout)
	r.Sessions.WithLabelValues(strconv.FormatBool(res.Passed)).Inc()
	r.WPM.WithLabelValues(layout).Observe(res.WPM)
	r.Accuracy.Observe(res.Accuracy)
	r.Keystrokes.WithLabelValues(layout).Add(float64(res.TotalKeystrokes))
	r.Backspaces.WithLabelValues(layout).Add(float64(res.BackspaceCount))
	r.PracticeTime.Add(float64(res.DurationMs) / 1000)
	for _, f := range o.Analytics.Fingers {
		r.FingerKeys.WithLabelValues(layout, f.Finger).Add(float64(f.Count))
		r.FingerErrors.WithLabelValues(layout, f.Finger).Add(float64(f.Errors))
	}
	return nil
}

// Registry returns the registry the collectors live on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the current metrics in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
