package trace_test

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/consensys/go-parsec/pkg/parsec"
	"github.com/consensys/go-parsec/pkg/parsec/char"
	"github.com/consensys/go-parsec/pkg/parsec/trace"
)

func TestEnterExitTracksDepth(t *testing.T) {
	logger, _ := test.NewNullLogger()
	tracer := trace.New(logger.WithField("test", true))

	assert.Equal(t, 0, tracer.Depth())

	tracer.Enter("a", 0)
	tracer.Enter("b", 1)
	assert.Equal(t, 2, tracer.Depth())

	tracer.Exit(true, true)
	assert.Equal(t, 1, tracer.Depth())

	tracer.Exit(true, true)
	assert.Equal(t, 0, tracer.Depth())
}

func TestExitWithoutEnterWarns(t *testing.T) {
	logger, hook := test.NewNullLogger()
	tracer := trace.New(logger.WithField("test", true))

	tracer.Exit(false, false)

	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestDumpRendersOpenFrames(t *testing.T) {
	logger, _ := test.NewNullLogger()
	tracer := trace.New(logger.WithField("test", true))

	tracer.Enter("digit", 3)

	dump := tracer.Dump()
	assert.True(t, strings.Contains(dump, "digit"))
}

// TestWrapInstrumentsAParserRun drives a real parsec.Parser through
// trace.Wrap and confirms Enter/Exit fired around it and the stack is
// balanced again once the parse completes.
func TestWrapInstrumentsAParserRun(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.TraceLevel)
	tracer := trace.New(logger.WithField("test", true))

	traced := trace.Wrap(tracer, char.Digit())

	v, err := parsec.Run(traced, []rune("7"))
	assert.NoError(t, err)
	assert.Equal(t, '7', v)
	assert.Equal(t, 0, tracer.Depth())

	var sawEnter, sawExit bool
	for _, entry := range hook.AllEntries() {
		switch entry.Message {
		case "enter":
			sawEnter = true
		case "exit":
			sawExit = true
		}
	}

	assert.True(t, sawEnter)
	assert.True(t, sawExit)
}

// TestWrapClosesItsFrameOnOrdinaryFailure confirms an ordinary parse failure
// (routed through eerr, not a panic) closes the wrapped frame like any other
// exit, leaving nothing behind for Dump to report — only a panic escaping
// mid-parse leaves a frame open, which is what Dump is really for.
func TestWrapClosesItsFrameOnOrdinaryFailure(t *testing.T) {
	logger, _ := test.NewNullLogger()
	logger.SetLevel(logrus.TraceLevel)
	tracer := trace.New(logger.WithField("test", true))

	traced := trace.Wrap(tracer, char.Digit())

	_, err := parsec.Run(traced, []rune("a"))
	assert.Error(t, err)
	assert.Equal(t, 0, tracer.Depth())
}

// TestDumpReportsFramesLeftOpenByAPanic exercises the scenario Dump's own
// doc comment names: a panic escaping mid-parse leaves whatever frames were
// entered but never exited still on the stack.
func TestDumpReportsFramesLeftOpenByAPanic(t *testing.T) {
	logger, _ := test.NewNullLogger()
	tracer := trace.New(logger.WithField("test", true))

	func() {
		defer func() { _ = recover() }()

		tracer.Enter("outer", 0)
		tracer.Enter("inner", 2)

		panic("boom")
	}()

	assert.Equal(t, 2, tracer.Depth())
	assert.True(t, strings.Contains(tracer.Dump(), "inner"))
	assert.True(t, strings.Contains(tracer.Dump(), "outer"))
}
