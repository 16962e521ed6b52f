package program

import (
	"errors"
	"fmt"

	"github.com/contract-patterns/vmp-go-base/types"
)

var ErrNotRecorded = errors.New("no recorded output for the puzzle and solution")

type (
	/*
	   Runner is the boundary to the execution VM: it runs puzzle against
	   solution and returns the output (for puzzles the list of conditions).
	*/
	Runner interface {
		Run(puzzle, solution *Program) (*Program, error)
	}

	// RunnerFunc adapts function to the Runner interface.
	RunnerFunc func(puzzle, solution *Program) (*Program, error)

	/*
	   RecordedRunner replays outputs recorded earlier (ie by running the
	   puzzles in a real VM) keyed by the tree hashes of puzzle and solution.
	*/
	RecordedRunner struct {
		outputs map[runKey]*Program
	}

	runKey struct {
		puzzle   types.Bytes32
		solution types.Bytes32
	}
)

func (f RunnerFunc) Run(puzzle, solution *Program) (*Program, error) {
	return f(puzzle, solution)
}

func NewRecordedRunner() *RecordedRunner {
	return &RecordedRunner{outputs: make(map[runKey]*Program)}
}

// Record stores the output of running puzzle with solution.
func (r *RecordedRunner) Record(puzzle, solution, output *Program) {
	r.outputs[runKey{puzzle: puzzle.TreeHash(), solution: solution.TreeHash()}] = output
}

func (r *RecordedRunner) Run(puzzle, solution *Program) (*Program, error) {
	out, ok := r.outputs[runKey{puzzle: puzzle.TreeHash(), solution: solution.TreeHash()}]
	if !ok {
		return nil, fmt.Errorf("%w (puzzle %s)", ErrNotRecorded, puzzle.TreeHash())
	}
	return out, nil
}
