package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/satnet-rfp/satnet-rfp/sim"
	"github.com/satnet-rfp/satnet-rfp/sim/daemon"
	"github.com/satnet-rfp/satnet-rfp/sim/engine"
	"github.com/satnet-rfp/satnet-rfp/sim/rfp"
	"github.com/satnet-rfp/satnet-rfp/sim/telemetry"
	"github.com/satnet-rfp/satnet-rfp/sim/trace"
)

const (
	engineHeap  = "heap"
	engineAkita = "akita"
)

// RunOptions are the run settings that are not part of the scenario.
type RunOptions struct {
	Engine         string
	Vtysh          string
	Pathspace      string
	VtyshTimeout   time.Duration
	TranscriptPath string
	MetricsFile    string
	TraceLevel     string
}

// eventLoop is a scheduler that can run to completion.
type eventLoop interface {
	sim.Scheduler
	sim.Clock
	Horizon() float64
	Run() error
}

type heapLoop struct {
	*sim.Simulator
}

func (h heapLoop) Run() error {
	h.Simulator.Run()
	return nil
}

func newEventLoop(kind string, horizon float64) (eventLoop, error) {
	switch kind {
	case engineHeap, "":
		return heapLoop{sim.NewSimulator(horizon)}, nil
	case engineAkita:
		return engine.NewSerial(horizon), nil
	}
	return nil, fmt.Errorf("unknown engine %q (valid: %s, %s)", kind, engineHeap, engineAkita)
}

// RunScenario builds a controller for sc, drives the scenario to its horizon
// and writes the report to out.
func RunScenario(sc Scenario, opts RunOptions, out io.Writer) (*rfp.Controller, error) {
	if !trace.IsValidTraceLevel(opts.TraceLevel) {
		return nil, fmt.Errorf("unknown trace level %q", opts.TraceLevel)
	}
	topo, err := sim.NewStaticTopology(sc.Nodes, sc.Links)
	if err != nil {
		return nil, err
	}
	loop, err := newEventLoop(opts.Engine, sc.Horizon)
	if err != nil {
		return nil, err
	}

	var runner *daemon.ExecRunner
	if daemon.Detect(opts.Vtysh) {
		runner = daemon.NewExecRunner(opts.Vtysh, opts.Pathspace, 0, opts.VtyshTimeout)
		defer func() {
			if err := runner.Close(); err != nil {
				logrus.Warnf("closing vtysh runner: %v", err)
			}
			runs, failures := runner.Stats()
			logrus.Infof("vtysh: %d sessions, %d failed", runs, failures)
		}()
	}
	transcript := daemon.NewTranscript()
	var vtysh *daemon.Vtysh
	if runner != nil {
		vtysh = daemon.NewVtysh(runner, nil, transcript)
	} else {
		vtysh = daemon.NewVtysh(nil, nil, transcript)
	}

	tr := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevel(opts.TraceLevel)})
	metrics := telemetry.New()
	ctrl, err := rfp.New(sc.RFP, rfp.Deps{
		Scheduler: loop,
		Clock:     loop,
		Topology:  topo,
		Daemon:    vtysh,
		Trace:     tr,
		Metrics:   metrics,
	})
	if err != nil {
		return nil, err
	}
	for _, l := range sc.Links {
		if err := ctrl.RegisterLink(l[0], l[1]); err != nil {
			logrus.Warnf("link %d-%d not registered: %v", l[0], l[1], err)
		}
	}

	schedule(loop, ctrl, sc)
	logrus.Infof("Starting RFP simulation: %d nodes, %d links, %d predicted failures, horizon=%.1fs, engine=%s",
		sc.Nodes, len(sc.Links), len(sc.PredictedFailures), loop.Horizon(), opts.Engine)
	if err := loop.Run(); err != nil {
		return ctrl, fmt.Errorf("running simulation: %w", err)
	}

	if err := ctrl.Report(out); err != nil {
		return ctrl, fmt.Errorf("writing report: %w", err)
	}
	if tr != nil {
		ts := trace.Summarize(tr)
		fmt.Fprintf(out, "\n=== Trace Summary ===\nActions: %d (skipped %d)\nLink changes: %d (masked %d, unpredicted %d)\nFlushes: %d (%d updates, max %d)\n",
			ts.TotalActions, ts.SkippedActions, ts.LinkChanges, ts.MaskedChanges, ts.Unpredicted,
			ts.Flushes, ts.FlushedUpdates, ts.MaxFlush)
	}
	if opts.TranscriptPath != "" {
		if err := writeTranscript(opts.TranscriptPath, transcript); err != nil {
			return ctrl, err
		}
	}
	if opts.MetricsFile != "" {
		if err := metrics.WriteFile(opts.MetricsFile); err != nil {
			return ctrl, fmt.Errorf("writing metrics: %w", err)
		}
	}
	return ctrl, nil
}

// schedule registers the predicted failures at the registration time and
// plays the physical link changes of the scenario.
func schedule(s sim.Scheduler, ctrl *rfp.Controller, sc Scenario) {
	s.ScheduleAt(sc.RegistrationTime, func(now float64) {
		for _, pf := range sc.PredictedFailures {
			downAt := pf.T0
			if ev, ok := ctrl.RegisterPredictedFailure(pf.ID, pf.A, pf.B, pf.T0); ok {
				downAt = ev.T0
			}
			a, b := pf.A, pf.B
			s.ScheduleAt(downAt, func(now float64) { ctrl.OnObservedLinkChange(a, b, false, now) })
			if pf.RecoverAt != nil {
				s.ScheduleAt(*pf.RecoverAt, func(now float64) { ctrl.OnObservedLinkChange(a, b, true, now) })
			}
		}
	})
	for _, lc := range sc.LinkChanges {
		lc := lc
		s.ScheduleAt(lc.At, func(now float64) { ctrl.OnObservedLinkChange(lc.A, lc.B, lc.Up, now) })
	}
}

func writeTranscript(path string, t *daemon.Transcript) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating transcript: %w", err)
	}
	defer f.Close()
	if _, err := t.WriteTo(f); err != nil {
		return fmt.Errorf("writing transcript: %w", err)
	}
	return nil
}
