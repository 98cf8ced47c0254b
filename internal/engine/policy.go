package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// DefaultMargin is the lead over the runner-up at which the top candidate is
// declared.
const DefaultMargin = 4

// Verdict is what a session should do next.
type Verdict int

const (
	VerdictAsk Verdict = iota
	VerdictDeclare
	VerdictExhausted
)

func (v Verdict) String() string {
	switch v {
	case VerdictAsk:
		return "ask"
	case VerdictDeclare:
		return "declare"
	case VerdictExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// Policy decides when to stop asking.
type Policy struct {
	Margin float64
}

// DefaultPolicy returns a policy using DefaultMargin.
func DefaultPolicy() Policy {
	return Policy{Margin: DefaultMargin}
}

// Decide returns the verdict for a sorted ranking. questionsLeft reports
// whether the selector still has something to ask.
func (p Policy) Decide(r Ranking, questionsLeft bool) Verdict {
	top, ok := r.Top()
	if !ok {
		return VerdictExhausted
	}
	second, ok := r.RunnerUp()
	if !ok {
		return VerdictDeclare
	}
	if top.Score >= second.Score+p.Margin {
		return VerdictDeclare
	}
	if questionsLeft {
		return VerdictAsk
	}
	if top.Score > second.Score {
		return VerdictDeclare
	}
	return VerdictExhausted
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// NewRand returns a PCG generator for seed. A zero seed draws a fresh one.
func NewRand(seed uint64) (*rand.Rand, uint64, error) {
	if seed == 0 {
		s, err := NewSeed()
		if err != nil {
			return nil, 0, err
		}
		seed = s
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), seed, nil
}
