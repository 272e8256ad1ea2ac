package wdio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"sort"
	"strings"
)

const indent = "  "

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Render writes r as a CommonJS WebdriverIO config module that exports it as `config`.
func Render(w io.Writer, r Record) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "// Code generated by wdiorun. DO NOT EDIT.")
	fmt.Fprintln(bw, "const path = require('path');")
	fmt.Fprintln(bw)
	fmt.Fprint(bw, "exports.config = ")
	if err := renderValue(bw, reflect.ValueOf(r), 0); err != nil {
		return err
	}
	fmt.Fprintln(bw, ";")

	return bw.Flush()
}

func renderValue(w *bufio.Writer, v reflect.Value, depth int) error {
	if !v.IsValid() {
		_, err := w.WriteString("null")
		return err
	}

	switch val := v.Interface().(type) {
	case Func:
		return renderFunc(w, val, depth)
	case Expr:
		_, err := w.WriteString(string(val))
		return err
	}

	switch v.Kind() {
	case reflect.Interface, reflect.Ptr:
		if v.IsNil() {
			_, err := w.WriteString("null")
			return err
		}
		return renderValue(w, v.Elem(), depth)
	case reflect.Map:
		return renderObject(w, v, depth)
	case reflect.Slice, reflect.Array:
		return renderArray(w, v, depth)
	case reflect.String:
		return renderJSON(w, v.String())
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return renderJSON(w, v.Interface())
	}

	return fmt.Errorf("unsupported value of type %s", v.Type())
}

func renderJSON(w *bufio.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func renderObject(w *bufio.Writer, v reflect.Value, depth int) error {
	if v.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("unsupported map key type %s", v.Type().Key())
	}
	if v.Len() == 0 {
		_, err := w.WriteString("{}")
		return err
	}

	keys := make([]string, 0, v.Len())
	for _, k := range v.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	w.WriteString("{\n")
	for _, k := range keys {
		w.WriteString(strings.Repeat(indent, depth+1))
		if err := renderKey(w, k); err != nil {
			return err
		}
		w.WriteString(": ")
		if err := renderValue(w, v.MapIndex(reflect.ValueOf(k).Convert(v.Type().Key())), depth+1); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		w.WriteString(",\n")
	}
	w.WriteString(strings.Repeat(indent, depth))
	_, err := w.WriteString("}")
	return err
}

func renderKey(w *bufio.Writer, k string) error {
	if identifier.MatchString(k) {
		_, err := w.WriteString(k)
		return err
	}
	return renderJSON(w, k)
}

func renderArray(w *bufio.Writer, v reflect.Value, depth int) error {
	if v.Len() == 0 {
		_, err := w.WriteString("[]")
		return err
	}

	w.WriteString("[\n")
	for i := 0; i < v.Len(); i++ {
		w.WriteString(strings.Repeat(indent, depth+1))
		if err := renderValue(w, v.Index(i), depth+1); err != nil {
			return err
		}
		w.WriteString(",\n")
	}
	w.WriteString(strings.Repeat(indent, depth))
	_, err := w.WriteString("]")
	return err
}

func renderFunc(w *bufio.Writer, f Func, depth int) error {
	w.WriteString(f.Signature())
	w.WriteString(" {\n")
	for _, line := range f.Body {
		w.WriteString(strings.Repeat(indent, depth+1))
		w.WriteString(line)
		w.WriteString("\n")
	}
	w.WriteString(strings.Repeat(indent, depth))
	_, err := w.WriteString("}")
	return err
}
