package target

import (
	"strings"
)

// DeviceFarmPrefix marks a target that is meant to run in AWS Device Farm.
const DeviceFarmPrefix = "df."

// Context describes where a target is executed.
type Context string

// The execution contexts a target can resolve to.
const (
	Local      Context = "local"
	DeviceFarm Context = "devicefarm"
)

// Target identifies which configuration to load, e.g. "ios" or "df.ios".
type Target struct {
	Name string
	// DevicePoolARN is the device farm pool the run was scheduled on, if any.
	DevicePoolARN string
}

// New returns a Target with surrounding whitespace removed from name.
func New(name, devicePoolARN string) Target {
	return Target{
		Name:          strings.TrimSpace(name),
		DevicePoolARN: strings.TrimSpace(devicePoolARN),
	}
}

// IsEmpty returns true if no target name was given.
func (t Target) IsEmpty() bool {
	return t.Name == ""
}

// IsDeviceFarm returns true if the target name carries the device farm prefix or
// the process runs on a device farm host (signalled by a device pool ARN).
func (t Target) IsDeviceFarm() bool {
	return strings.HasPrefix(t.Name, DeviceFarmPrefix) || t.DevicePoolARN != ""
}

// Context returns the execution context of the target.
func (t Target) Context() Context {
	if t.IsDeviceFarm() {
		return DeviceFarm
	}
	return Local
}

// ContextOf returns the execution context implied by the name alone.
func ContextOf(name string) Context {
	return New(name, "").Context()
}

func (t Target) String() string {
	return t.Name
}
