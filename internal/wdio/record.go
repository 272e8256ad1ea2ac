// Package wdio holds the WebdriverIO configuration records of all known targets and renders them into
// config modules the WebdriverIO launcher can load.
package wdio

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"
)

// Record is a WebdriverIO configuration, keyed by option name.
type Record map[string]any

// Capability describes a single device/platform combination under test.
type Capability map[string]any

// Merge returns the shallow union of base and override. Keys of override replace the same keys of base,
// nested values are not merged. Neither input is modified.
func Merge(base, override Record) Record {
	merged := make(Record, len(base)+len(override))
	maps.Copy(merged, base)
	maps.Copy(merged, override)
	return merged
}

// Capabilities returns the capability descriptors of r.
func (r Record) Capabilities() []Capability {
	caps, _ := r["capabilities"].([]Capability)
	return caps
}

// Func is a JavaScript function carried in a Record, e.g. a lifecycle hook.
type Func struct {
	Async  bool
	Params []string
	// Body holds the JavaScript statements of the function, one per line.
	Body []string
}

// Signature returns the function head without its body.
func (f Func) Signature() string {
	s := fmt.Sprintf("function (%s)", strings.Join(f.Params, ", "))
	if f.Async {
		return "async " + s
	}
	return s
}

func (f Func) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Signature())
}

func (f Func) MarshalYAML() (interface{}, error) {
	return f.Signature(), nil
}

// Hook returns a function that writes the given messages to the console. Messages are JavaScript template
// literals, so they may reference the parameters, e.g. "Device: ${capabilities.platformName}".
func Hook(params []string, messages ...string) Func {
	return Func{Params: params, Body: logLines(messages...)}
}

// Sleep returns a statement that suspends an async function for ms milliseconds.
func Sleep(ms int) string {
	return fmt.Sprintf("await new Promise(resolve => setTimeout(resolve, %d));", ms)
}

func logLines(messages ...string) []string {
	var lines []string
	for _, m := range messages {
		lines = append(lines, fmt.Sprintf("console.log(`%s`);", m))
	}
	return lines
}

// Expr is a raw JavaScript expression carried in a Record, e.g. a path computed relative to the module.
type Expr string

func (e Expr) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(e))
}

func (e Expr) MarshalYAML() (interface{}, error) {
	return string(e), nil
}
