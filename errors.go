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

import "fmt"

// A ConfigurationError reports that an extension instance could not be
// built from the host configuration. It prevents the extension from
// activating for the simulation.
type ConfigurationError struct {
	Extension string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("hemco: configuring extension %s: %s", e.Extension, e.Reason)
}

// An InstanceNotFoundError reports an operation on an instance id that is
// not present in the registry. Remove treats it as benign; Run treats it
// as fatal for that timestep.
type InstanceNotFoundError int

func (e InstanceNotFoundError) Error() string {
	return fmt.Sprintf("hemco: instance %d not found", int(e))
}

// An UpstreamError wraps a failure returned by a host collaborator:
// option access, species resolution, field registration, or flux
// accumulation. It is surfaced immediately, without retries.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("hemco: %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
