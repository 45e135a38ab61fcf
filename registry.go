/*
Copyright © 2026 the HEMCO authors.
This file is part of HEMCO.

HEMCO is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

HEMCO is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with HEMCO.  If not, see <http://www.gnu.org/licenses/>.
*/

package hemco

// An Instance is one activated, fully configured copy of an emission
// extension. Its configuration is fixed once IodineInit returns; the
// engine only borrows a reference during a Run call. Instances are owned
// exclusively by their Registry.
type Instance struct {
	ID     int // registry handle
	ExtNum int // host-assigned identity of this extension type

	// Host species ids for the two emitted species. An id ≤ 0 means
	// the species is not tracked by the host.
	HOIID int
	I2ID  int

	// Which of the two species to emit.
	CalcHOI bool
	CalcI2  bool
}

// A Registry owns the set of live extension instances. It is not safe
// for concurrent use: Create and Remove must only be called from
// single-threaded setup and teardown phases, never concurrently with
// each other or with an in-flight Run.
type Registry struct {
	instances map[int]*Instance
}

// NewRegistry returns an empty instance registry.
func NewRegistry() *Registry {
	return &Registry{instances: make(map[int]*Instance)}
}

// Create allocates a new instance for extension number extNum and returns
// its id.
//
// Ids are assigned as the count of currently live instances plus one, so
// they are not monotonic over the registry's lifetime: removing an
// instance and creating a new one reuses a previously issued id. If the
// reused id is still live, the new instance replaces the old one, which
// matches the lookup shadowing of the original most-recently-created-first
// instance list. Hosts that interleave Create and Remove must not hold on
// to stale ids.
func (r *Registry) Create(extNum int) int {
	id := len(r.instances) + 1
	r.instances[id] = &Instance{ID: id, ExtNum: extNum}
	return id
}

// Lookup returns the live instance with the given id.
func (r *Registry) Lookup(id int) (*Instance, error) {
	inst, ok := r.instances[id]
	if !ok {
		return nil, InstanceNotFoundError(id)
	}
	return inst, nil
}

// Remove deletes the instance with the given id. Removing an id that is
// not present returns an InstanceNotFoundError, which callers on teardown
// paths treat as benign.
func (r *Registry) Remove(id int) error {
	if _, ok := r.instances[id]; !ok {
		return InstanceNotFoundError(id)
	}
	delete(r.instances, id)
	return nil
}

// Len returns the number of live instances.
func (r *Registry) Len() int { return len(r.instances) }
