// Package position maps byte offsets in a concatenated source stream to
// (file, line) pairs for diagnostics (spec §3 "Positions").
package position

import "sort"

// Position is a single resolved source location.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int // absolute offset this position was resolved from
}

// record is one entry in the monotonic sequence the Positions map keeps:
// every record starts a new (file, line) run at a known absolute offset.
type record struct {
	startOffset int // absolute offset where this run begins
	fileOffset  int // byte offset within File where this run begins
	line        int
	file        string
}

// Positions is an append-only, monotonically increasing sequence of
// (starting offset, file-relative offset, line, path) records. Lookup by
// absolute offset returns the containing record (spec §3).
type Positions struct {
	records []record
}

// New returns an empty Positions map.
func New() *Positions {
	return &Positions{}
}

// Add appends a new record. startOffset must be strictly greater than the
// startOffset of the previously added record; callers (front-ends) are
// responsible for the monotonic ordering invariant.
func (p *Positions) Add(startOffset, fileOffset, line int, file string) {
	p.records = append(p.records, record{
		startOffset: startOffset,
		fileOffset:  fileOffset,
		line:        line,
		file:        file,
	})
}

// Resolve returns the Position containing absOffset: the file, the line of
// the containing record, and a column computed from the offset delta within
// that line's run. If no record exists at or before absOffset, ok is false.
func (p *Positions) Resolve(absOffset int) (Position, bool) {
	if len(p.records) == 0 {
		return Position{}, false
	}
	i := sort.Search(len(p.records), func(i int) bool {
		return p.records[i].startOffset > absOffset
	})
	if i == 0 {
		return Position{}, false
	}
	r := p.records[i-1]
	delta := absOffset - r.startOffset
	return Position{
		File:   r.file,
		Line:   r.line,
		Column: r.fileOffset + delta + 1,
		Offset: absOffset,
	}, true
}

// Len reports the number of records.
func (p *Positions) Len() int { return len(p.records) }
