package main

import (
	"fmt"
	"strconv"
	"strings"
)

// cellRef is a "c,row,col" triple given on the command line.
type cellRef struct {
	channel, row, col int
	set               bool
}

func (c *cellRef) String() string {
	if c == nil || !c.set {
		return ""
	}
	return fmt.Sprintf("%d,%d,%d", c.channel, c.row, c.col)
}

// Set implements flag.Value.
func (c *cellRef) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fmt.Errorf("want c,row,col, got %q", s)
	}
	var vals [3]int
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("bad index %q: %w", part, err)
		}
		vals[i] = v
	}
	c.channel, c.row, c.col = vals[0], vals[1], vals[2]
	c.set = true
	return nil
}

// cellEdit is one "c,row,col=value" input edit. The value is kept raw so
// the session applies its own coercion.
type cellEdit struct {
	cellRef
	raw string
}

// cellEdits collects repeated -set flags in order.
type cellEdits []cellEdit

func (e *cellEdits) String() string {
	if e == nil {
		return ""
	}
	parts := make([]string, len(*e))
	for i, edit := range *e {
		parts[i] = edit.cellRef.String() + "=" + edit.raw
	}
	return strings.Join(parts, " ")
}

// Set implements flag.Value.
func (e *cellEdits) Set(s string) error {
	ref, raw, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("want c,row,col=value, got %q", s)
	}
	var edit cellEdit
	if err := edit.cellRef.Set(ref); err != nil {
		return err
	}
	edit.raw = raw
	*e = append(*e, edit)
	return nil
}
