// Package vm executes compiled regex programs against a subject by
// simulating every pending alternative of the nondeterministic automaton in
// lockstep. Threads are kept in priority order and deduplicated by bytecode
// offset, so the live set never exceeds the program size and the whole
// search runs in O(len(program) * len(subject)).
package vm

import (
	"slices"

	"github.com/coregx/regexvm/internal/conv"
	"github.com/coregx/regexvm/internal/sparse"
	"github.com/coregx/regexvm/program"
	"github.com/coregx/regexvm/syntax"
)

// deadIP marks a thread scheduled for removal by the next compaction.
const deadIP = ^uint32(0)

// thread is a single pending alternative: an instruction pointer into the
// bytecode plus the capture slots recorded along its path.
type thread struct {
	ip    uint32
	saves captures
}

// VM runs a compiled program. A VM is reusable across calls to Exec but not
// safe for concurrent use; allocate one per goroutine.
type VM struct {
	prog    *program.Program
	invalid InvalidPolicy

	threads []thread
	live    *sparse.Set

	in  input
	end int
	pos int
	cp  rune

	maxThreads int
}

// New creates a VM for prog.
func New(prog *program.Program) *VM {
	return &VM{
		prog:    prog,
		invalid: ReplaceInvalid,
		live:    sparse.NewSet(conv.IntToUint32(len(prog.Bytecode) + 1)),
	}
}

// SetInvalidPolicy overrides how invalid UTF-8 in the subject is decoded.
func (m *VM) SetInvalidPolicy(p InvalidPolicy) {
	if p != nil {
		m.invalid = p
	}
}

// MaxThreads reports the peak live thread count of the last Exec call.
func (m *VM) MaxThreads() int {
	return m.maxThreads
}

// Exec searches data and returns the capture slots of the winning match, or
// nil when there is none. Slots come in pairs: slot 2k is where group k
// started and slot 2k+1 is one past where it ended, with -1 for groups that
// never participated. Group 0 spans the whole match.
//
// With anchored set, the match must cover the entire subject. Without
// longest, an unanchored search returns the first match any thread reaches,
// even while a thread that started earlier or could match more is still
// running. With longest set, a match discards only the threads of lower
// priority than the matching one; the higher-priority threads keep running
// and the last match found is returned, so a longer match that only a
// lower-priority thread could reach is not found.
func (m *VM) Exec(data []byte, anchored, longest bool) []int {
	return m.ExecAt(data, 0, anchored, longest)
}

// ExecAt is Exec starting at byte offset start. Positions in the returned
// slots remain absolute, so anchors and word boundaries observe the bytes
// before start.
func (m *VM) ExecAt(data []byte, start int, anchored, longest bool) []int {
	m.in = input{data: data, invalid: m.invalid}
	m.end = len(data)
	m.pos = start
	m.threads = m.threads[:0]
	m.live.Clear()
	m.maxThreads = 0

	entry := uint32(0)
	if anchored {
		entry = m.prog.Entry()
	}
	m.addThread(0, entry, newCaptures(m.prog.SaveCount))

	var best []int
	found := false

	for m.pos < m.end {
		var width int
		m.cp, width = m.in.at(m.pos)
		for i := 0; i < len(m.threads); i++ {
			switch m.step(i) {
			case stepMatched:
				if anchored {
					// A full-subject match can only conclude once the
					// input is exhausted.
					m.threads[i].ip = deadIP
					continue
				}
				best = m.threads[i].saves.copyData()
				found = true
				m.truncate(i)
				if !longest {
					return best
				}
			case stepFailed:
				m.threads[i].ip = deadIP
			}
		}
		m.compact()
		if len(m.threads) > m.maxThreads {
			m.maxThreads = len(m.threads)
		}
		m.pos += width
		if len(m.threads) == 0 {
			if found {
				return best
			}
			return nil
		}
	}

	m.cp = -1
	for i := 0; i < len(m.threads); i++ {
		switch m.step(i) {
		case stepMatched:
			best = m.threads[i].saves.copyData()
			found = true
			m.truncate(i)
			if !longest {
				return best
			}
		default:
			m.threads[i].ip = deadIP
		}
	}
	if found {
		return best
	}
	return nil
}

type stepResult uint8

const (
	stepConsumed stepResult = iota
	stepMatched
	stepFailed
)

// step advances thread idx until it consumes the current codepoint, matches,
// or dies. Zero-width instructions run inline; splits push the forked thread
// right after idx so list order keeps encoding priority.
func (m *VM) step(idx int) stepResult {
	ip := m.threads[idx].ip
	m.live.Remove(ip)
	for {
		op := program.Op(m.prog.Bytecode[ip])
		ip++
		switch op {
		case program.OpLiteral:
			r, w := m.prog.ReadRune(ip)
			ip += conv.IntToUint32(w)
			if m.cp >= 0 && m.cp == r {
				m.rest(idx, ip)
				return stepConsumed
			}
			return stepFailed
		case program.OpAnyChar:
			if m.cp < 0 {
				return stepFailed
			}
			m.rest(idx, ip)
			return stepConsumed
		case program.OpMatcher:
			id := m.prog.Bytecode[ip]
			ip++
			if m.cp >= 0 && m.prog.Matchers[id](m.cp) {
				m.rest(idx, ip)
				return stepConsumed
			}
			return stepFailed
		case program.OpJump:
			target := m.prog.ReadOffset(ip)
			if m.live.Contains(target) {
				return stepFailed
			}
			ip = target
		case program.OpSplitPrioritizeParent:
			target := m.prog.ReadOffset(ip)
			ip += program.OffsetSize
			m.addThread(idx+1, target, m.threads[idx].saves.clone())
		case program.OpSplitPrioritizeChild:
			target := m.prog.ReadOffset(ip)
			m.addThread(idx+1, ip+program.OffsetSize, m.threads[idx].saves.clone())
			ip = target
		case program.OpSave:
			slot := m.prog.Bytecode[ip]
			ip++
			m.threads[idx].saves = m.threads[idx].saves.set(int(slot), m.pos)
		case program.OpLineStart:
			if !m.atLineStart() {
				return stepFailed
			}
		case program.OpLineEnd:
			if !m.atLineEnd() {
				return stepFailed
			}
		case program.OpWordBoundary:
			if !m.atWordBoundary() {
				return stepFailed
			}
		case program.OpNotWordBoundary:
			if m.atWordBoundary() {
				return stepFailed
			}
		case program.OpSubjectBegin:
			if m.pos != 0 {
				return stepFailed
			}
		case program.OpSubjectEnd:
			if m.pos != m.end {
				return stepFailed
			}
		case program.OpMatch:
			return stepMatched
		}
	}
}

// rest parks thread idx at ip until the next input position.
func (m *VM) rest(idx int, ip uint32) {
	m.threads[idx].ip = ip
	m.live.Insert(ip)
}

// addThread inserts a new thread at index unless another thread already
// rests at ip.
func (m *VM) addThread(index int, ip uint32, saves captures) {
	if m.live.Contains(ip) {
		return
	}
	m.live.Insert(ip)
	m.threads = slices.Insert(m.threads, index, thread{ip: ip, saves: saves})
}

// truncate discards thread i, which has just matched, together with every
// thread after it, the lower-priority tail that the match obsoletes.
func (m *VM) truncate(i int) {
	for j := i; j < len(m.threads); j++ {
		if m.threads[j].ip != deadIP {
			m.live.Remove(m.threads[j].ip)
		}
	}
	m.threads = m.threads[:i]
}

// compact removes dead threads while preserving order.
func (m *VM) compact() {
	out := m.threads[:0]
	for _, t := range m.threads {
		if t.ip != deadIP {
			out = append(out, t)
		}
	}
	m.threads = out
}

func (m *VM) atLineStart() bool {
	return m.pos == 0 || m.in.data[m.pos-1] == '\n'
}

func (m *VM) atLineEnd() bool {
	return m.pos == m.end || m.in.data[m.pos] == '\n'
}

func (m *VM) atWordBoundary() bool {
	before := m.pos > 0 && syntax.IsWord(m.in.before(m.pos))
	after := m.pos < m.end && syntax.IsWord(m.currentRune())
	return before != after
}

// currentRune returns the codepoint at the current position. During the
// final zero-width pass m.cp is -1, but atWordBoundary only calls this when
// pos < end, so decoding directly keeps the assertion correct there too.
func (m *VM) currentRune() rune {
	if m.cp >= 0 {
		return m.cp
	}
	r, _ := m.in.at(m.pos)
	return r
}
