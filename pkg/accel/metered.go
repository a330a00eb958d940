// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package accel

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metered wraps an accelerator, counting invocations and their latency per
// opcode.
type Metered struct {
	inner    Accelerator
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetered wraps an accelerator, registering its metrics with a given
// registerer.
func NewMetered(inner Accelerator, reg prometheus.Registerer) (*Metered, error) {
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zkaccel",
		Name:      "invocations_total",
		Help:      "Number of accelerator invocations",
	}, []string{"backend", "opcode"})
	//
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "zkaccel",
		Name:      "invocation_seconds",
		Help:      "Time spent in accelerator invocations",
		Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
	}, []string{"backend", "opcode"})
	//
	for _, c := range []prometheus.Collector{calls, duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	//
	return &Metered{inner, calls, duration}, nil
}

// Name implementation for the Accelerator interface.
func (p *Metered) Name() string {
	return p.inner.Name()
}

// Unwrap returns the accelerator being metered.
func (p *Metered) Unwrap() Accelerator {
	return p.inner
}

// Invoke implementation for the Accelerator interface.
func (p *Metered) Invoke(inv Invocation) {
	var (
		start = time.Now()
		name  = p.inner.Name()
	)
	//
	p.inner.Invoke(inv)
	//
	p.calls.WithLabelValues(name, inv.Op.Name()).Inc()
	p.duration.WithLabelValues(name, inv.Op.Name()).Observe(time.Since(start).Seconds())
}

// Calls returns the counter of invocations for a given opcode.
func (p *Metered) Calls(op Opcode) prometheus.Counter {
	return p.calls.WithLabelValues(p.inner.Name(), op.Name())
}
