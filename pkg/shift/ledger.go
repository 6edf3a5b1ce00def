package shift

// Write identifies the source band that last wrote a cell of the ledger.
type Write struct {
	Frame int `json:"frame"`
	Slice int `json:"slice"`
}

// Ledger tracks, for every output slot and band position, which
// (frame, slice) pair wrote it last.
type Ledger struct {
	slots  int
	slices int
	cells  []Write
	set    []bool
	writes int
}

// NewLedger creates an empty ledger for slots output frames of slices bands.
func NewLedger(slots, slices int) *Ledger {
	return &Ledger{
		slots:  slots,
		slices: slices,
		cells:  make([]Write, slots*slices),
		set:    make([]bool, slots*slices),
	}
}

// Record notes that route r has been applied, replacing any earlier writer.
func (l *Ledger) Record(r Route) {
	i := r.Slot*l.slices + r.Slice
	l.cells[i] = Write{Frame: r.Frame, Slice: r.Slice}
	l.set[i] = true
	l.writes++
}

// LastWriter returns the last writer of band position slice in slot.
func (l *Ledger) LastWriter(slot, slice int) (Write, bool) {
	if slot < 0 || slot >= l.slots || slice < 0 || slice >= l.slices {
		return Write{}, false
	}
	i := slot*l.slices + slice
	return l.cells[i], l.set[i]
}

// Writes returns the total number of band copies recorded.
func (l *Ledger) Writes() int {
	return l.writes
}

// Entry is one cell of a ledger snapshot.
type Entry struct {
	Slot    int    `json:"slot"`
	Band    int    `json:"band"`
	Written bool   `json:"written"`
	Last    *Write `json:"last,omitempty"`
}

// Snapshot returns every cell in slot-major order.
func (l *Ledger) Snapshot() []Entry {
	out := make([]Entry, 0, len(l.cells))
	for slot := 0; slot < l.slots; slot++ {
		for k := 0; k < l.slices; k++ {
			e := Entry{Slot: slot, Band: k}
			if w, ok := l.LastWriter(slot, k); ok {
				w := w
				e.Written = true
				e.Last = &w
			}
			out = append(out, e)
		}
	}
	return out
}

// Grid returns the writing frame of every cell as [slot][band], -1 where unwritten.
func (l *Ledger) Grid() [][]int {
	grid := make([][]int, l.slots)
	for slot := range grid {
		grid[slot] = make([]int, l.slices)
		for k := range grid[slot] {
			grid[slot][k] = -1
			if w, ok := l.LastWriter(slot, k); ok {
				grid[slot][k] = w.Frame
			}
		}
	}
	return grid
}
