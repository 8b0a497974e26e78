// util/error_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorLogger(t *testing.T) {
	var e ErrorLogger
	if e.HaveErrors() || e.Err() != nil {
		t.Fatalf("new ErrorLogger should have no errors")
	}

	e.ErrorString("top level")
	e.Push("shapes")
	e.Push("zone")
	e.ErrorString("%d vertices", 2)
	e.Pop()
	e.Push("ring")
	e.Error(errors.New("radius must be positive"))
	e.Pop()
	e.Pop()

	if e.CurrentDepth() != 0 {
		t.Errorf("depth %d after balanced Push/Pop", e.CurrentDepth())
	}
	expected := "top level\nshapes / zone: 2 vertices\nshapes / ring: radius must be positive"
	if s := e.String(); s != expected {
		t.Errorf("got %q, expected %q", s, expected)
	}

	err := e.Err()
	if !errors.Is(err, ErrValidation) || !strings.HasSuffix(err.Error(), expected) {
		t.Errorf("Err: got %v", err)
	}

	var sb strings.Builder
	e.PrintErrors(&sb, nil)
	if sb.String() != expected+"\n" {
		t.Errorf("PrintErrors: got %q", sb.String())
	}
}

func TestErrorLoggerCheckDepth(t *testing.T) {
	var nilLogger *ErrorLogger
	nilLogger.CheckDepth(0)

	unbalanced := func(e *ErrorLogger) {
		defer e.CheckDepth(e.CurrentDepth())
		e.Push("leak")
	}

	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic from an unbalanced Push")
		}
	}()
	var e ErrorLogger
	unbalanced(&e)
}
