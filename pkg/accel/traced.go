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

	log "github.com/sirupsen/logrus"
)

// Traced wraps an accelerator such that every invocation is logged (at debug
// level) along with the time it took.
type Traced struct {
	inner  Accelerator
	logger log.FieldLogger
}

// NewTraced wraps an accelerator using the standard logger.
func NewTraced(inner Accelerator) *Traced {
	return NewTracedWith(inner, log.StandardLogger())
}

// NewTracedWith wraps an accelerator using a given logger.
func NewTracedWith(inner Accelerator, logger log.FieldLogger) *Traced {
	return &Traced{inner, logger}
}

// Name implementation for the Accelerator interface.
func (p *Traced) Name() string {
	return p.inner.Name()
}

// Unwrap returns the accelerator being traced.
func (p *Traced) Unwrap() Accelerator {
	return p.inner
}

// Invoke implementation for the Accelerator interface.
func (p *Traced) Invoke(inv Invocation) {
	var start = time.Now()
	//
	p.inner.Invoke(inv)
	//
	p.logger.WithFields(log.Fields{
		"backend":  p.inner.Name(),
		"opcode":   inv.Op.Name(),
		"operands": len(inv.Operands),
		"elapsed":  time.Since(start),
	}).Debug(inv.String())
}
