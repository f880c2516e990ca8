package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/wippyai/cairo-io/agent"
	"github.com/wippyai/cairo-io/errors"
	"github.com/wippyai/cairo-io/felt"
	"github.com/wippyai/cairo-io/sierra"
	"github.com/wippyai/cairo-io/transcoder"
	"github.com/wippyai/cairo-io/vm"
)

// fixtureDoc is a recorded run:
//
//	{
//	  "return_type": 2,
//	  "return_values": ["1:0", "1:3"],
//	  "segments": [[], ["0x1", "2", 3]],
//	  "registry": {"types": [...], "sizes": {...}},
//	  "panic": ["0x4f4f47"]
//	}
//
// Relocatable values are "segment:offset" strings. A present "panic" list
// makes the replay report a program panic.
type fixtureDoc struct {
	ReturnType   *sierra.TypeID          `json:"return_type"`
	Panic        *[]felt.Felt            `json:"panic"`
	ReturnValues []vm.MaybeRelocatable   `json:"return_values"`
	Segments     [][]vm.MaybeRelocatable `json:"segments"`
	Registry     json.RawMessage         `json:"registry"`
}

// fixture replays a recorded run as an agent.Executor.
type fixture struct {
	agent.Execution
	panicData []felt.Felt
	panicked  bool
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return parseFixture(data)
}

func parseFixture(data []byte) (*fixture, error) {
	var doc fixtureDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.ParseFailed("fixture", err)
	}
	if len(doc.Registry) == 0 {
		return nil, errors.ParseFailed("fixture", fmt.Errorf("missing registry"))
	}
	types, sizes, err := sierra.Parse(doc.Registry)
	if err != nil {
		return nil, err
	}
	if doc.ReturnType != nil {
		if _, ok := types.Type(*doc.ReturnType); !ok {
			return nil, errors.ParseFailed("fixture", fmt.Errorf("return type %d not in registry", *doc.ReturnType))
		}
	}

	fx := &fixture{
		Execution: agent.Execution{
			Memory:       vm.NewMemoryFromSegments(doc.Segments),
			ReturnType:   doc.ReturnType,
			Registry:     types,
			Sizes:        sizes,
			ReturnValues: doc.ReturnValues,
		},
	}
	if doc.Panic != nil {
		fx.panicked = true
		fx.panicData = *doc.Panic
	}
	return fx, nil
}

// Execute ignores the arguments; the recorded outcome is returned as is.
func (fx *fixture) Execute(_ context.Context, args transcoder.FuncArgs) (*agent.Execution, error) {
	agent.Logger().Debug("replaying recorded run",
		zap.Int("arguments", len(args)),
		zap.Int("felts", len(args.Flatten())),
		zap.Bool("panicked", fx.panicked))
	if fx.panicked {
		return nil, &agent.PanicError{Data: fx.panicData}
	}
	exec := fx.Execution
	return &exec, nil
}
