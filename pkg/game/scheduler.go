// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package game

import "time"

// Task is a unit of deferred work, like the automated player's move.
type Task func() error

// Scheduler defers tasks. The controller hands it the automated move so
// that the move is never computed inside the call committing the human's
// move.
type Scheduler interface {
	Schedule(delay time.Duration, task Task)
}

// Queue is a single threaded Scheduler. Tasks run, in order, only when
// RunPending is called.
type Queue struct {
	// Sleep waits out a task's delay, time.Sleep if nil.
	Sleep func(time.Duration)

	tasks []queued
}

type queued struct {
	delay time.Duration
	task  Task
}

var _ Scheduler = (*Queue)(nil)

func (queue *Queue) Schedule(delay time.Duration, task Task) {
	queue.tasks = append(queue.tasks, queued{delay, task})
}

// Pending returns the number of tasks waiting to be run.
func (queue *Queue) Pending() int {
	return len(queue.tasks)
}

// RunPending runs the tasks scheduled so far, after their delays. Tasks
// scheduled while running are left for the next call. The first error
// stops the run and is returned; the remaining tasks are dropped.
func (queue *Queue) RunPending() error {
	sleep := queue.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	tasks := queue.tasks
	queue.tasks = nil

	for _, t := range tasks {
		sleep(t.delay)
		if err := t.task(); err != nil {
			return err
		}
	}

	return nil
}
