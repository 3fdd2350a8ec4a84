// Copyright 2021. Silvano DAL ZILIO.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package sdd

import "fmt"

// Stats returns a human-readable dump of the Manager's unique-table sizes
// and operation-cache hit/miss counts, for logging or for the non-Prometheus
// case. The format mirrors the teacher's own stats dump: one line per table.
func (m *Manager[V]) Stats() string {
	s := fmt.Sprintf("sdd manager %s\n", m.id)
	s += fmt.Sprintf("  values table   : %d entries\n", m.valuesTable.len())
	s += fmt.Sprintf("  env table      : %d entries\n", m.envTable.len())
	s += fmt.Sprintf("  sdd table      : %d entries\n", m.sddTable.len())
	s += fmt.Sprintf("  union cache    : %d entries, %d hits, %d misses\n", m.unionCache.len(), m.unionCache.hits, m.unionCache.misses)
	s += fmt.Sprintf("  intersect cache: %d entries, %d hits, %d misses\n", m.intersectionCache.len(), m.intersectionCache.hits, m.intersectionCache.misses)
	s += fmt.Sprintf("  diff cache     : %d entries, %d hits, %d misses\n", m.differenceCache.len(), m.differenceCache.hits, m.differenceCache.misses)
	s += fmt.Sprintf("  arc view cache : %d entries, %d hits, %d misses\n", len(m.arcCache.entries), m.arcCache.hits, m.arcCache.misses)
	return s
}
