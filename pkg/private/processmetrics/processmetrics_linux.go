// Copyright 2023 SCION Association
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package processmetrics provides a custom collector to export process-level
// metrics beyond what prometheus.ProcessCollector offers. This implementation
// is restricted to Linux. The generic implementation does nothing.
//
// The collector exposes the time all threads of the process spent running and
// runnable. Runnable time is CPU time the scheduler withheld from the router,
// so the search throughput per available CPU second is
//
//	rate(gridroute_searches_total[1m])
//	  / on (instance, job) group_left ()
//	(go_sched_maxprocs_threads - rate(process_runnable_seconds_total[1m]))

//go:build linux

package processmetrics

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/procfs"

	"github.com/scionproto/gridroute/pkg/private/serrors"
)

var (
	runningTime = prometheus.NewDesc(
		"process_running_seconds_total",
		"CPU time the process used (running state) since it started (all threads summed).",
		nil, nil,
	)
	runnableTime = prometheus.NewDesc(
		"process_runnable_seconds_total",
		"CPU time the process was denied (runnable state) since it started (all threads summed).",
		nil, nil,
	)
	goCores = prometheus.NewDesc(
		"go_sched_maxprocs_threads",
		"The current runtime.GOMAXPROCS setting.",
		nil, nil,
	)
	tasklistUpdates = prometheus.NewDesc(
		"process_metrics_tasklist_updates_total",
		"The number of times the collector recreated its list of tasks.",
		nil, nil,
	)
)

// procStatCollector collects the scheduling statistics of all threads.
type procStatCollector struct {
	pid             int
	procs           procfs.Procs
	tasks           *os.File
	lastTaskCount   uint64
	taskListUpdates int64
	totalRunning    uint64
	totalRunnable   uint64
}

// updateStat reads /proc/<pid>/task/*/schedstat. The thread list is only
// rebuilt if the number of threads changed; Go never terminates threads it
// created.
func (c *procStatCollector) updateStat() error {
	var taskStat syscall.Stat_t
	if err := syscall.Fstat(int(c.tasks.Fd()), &taskStat); err != nil {
		return err
	}
	//nolint:unconvert // required for arm64
	count := uint64(taskStat.Nlink - 2)
	if count != c.lastTaskCount {
		procs, err := procfs.AllThreads(c.pid)
		if err != nil {
			return err
		}
		c.procs = procs
		c.lastTaskCount = count
		c.taskListUpdates++
	}

	var running, runnable uint64
	var err error
	for _, p := range c.procs {
		stat, statErr := p.Schedstat()
		if statErr != nil {
			// The thread is gone. The others are still valid.
			err = statErr
			continue
		}
		running += stat.RunningNanoseconds
		runnable += stat.WaitingNanoseconds
	}
	c.totalRunning = running
	c.totalRunnable = runnable
	return err
}

func (c *procStatCollector) Describe(ch chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(c, ch)
}

// Collect updates the statistics on every scrape.
func (c *procStatCollector) Collect(ch chan<- prometheus.Metric) {
	_ = c.updateStat()

	ch <- prometheus.MustNewConstMetric(runningTime, prometheus.CounterValue,
		float64(c.totalRunning)/1e9)
	ch <- prometheus.MustNewConstMetric(runnableTime, prometheus.CounterValue,
		float64(c.totalRunnable)/1e9)
	ch <- prometheus.MustNewConstMetric(goCores, prometheus.GaugeValue,
		float64(runtime.GOMAXPROCS(-1)))
	ch <- prometheus.MustNewConstMetric(tasklistUpdates, prometheus.CounterValue,
		float64(c.taskListUpdates))
}

// Init registers the process collector with reg. Registering twice with the
// same registry fails. It is safe to ignore the error; the exported metrics
// then lack the process statistics.
func Init(reg prometheus.Registerer) error {
	pid := os.Getpid()
	taskPath := filepath.Join(procfs.DefaultMountPoint, strconv.Itoa(pid), "task")
	tasks, err := os.Open(taskPath)
	if err != nil {
		return serrors.Wrap("opening task directory", err, "pid", pid)
	}
	c := &procStatCollector{pid: pid, tasks: tasks}
	if err := c.updateStat(); err != nil {
		tasks.Close()
		return serrors.Wrap("reading scheduling statistics", err)
	}
	if err := reg.Register(c); err != nil {
		tasks.Close()
		return serrors.Wrap("registering process collector", err)
	}
	return nil
}
