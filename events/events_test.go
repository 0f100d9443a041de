// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Emit(&Event{Name: "A"})
	mark := r.Len()
	r.Emit(&Event{Name: "B"})
	r.Emit(&Event{Name: "C"})

	assert.Len(t, r.Since(mark), 2)
	r.Truncate(mark)
	assert.Equal(t, 1, r.Len())
	assert.Nil(t, r.Since(mark))

	evs := r.Drain()
	assert.Equal(t, "A", evs[0].Name)
	assert.Equal(t, 0, r.Len())

	Discard.Emit(&Event{})
}
