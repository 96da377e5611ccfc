package tokenizer

import (
	"sort"

	"github.com/example/go-bbpe/internal/model"
)

// mergeRule is one (right id → merged id) record within a per-left row.
// priority is the zero-based training-order index; lower wins when several
// merges are simultaneously applicable.
type mergeRule struct {
	right    int32
	newID    int32
	priority int32
}

// mergeTable buckets merge rules by left id. Each row is sorted ascending
// by right id, so lookup is a binary search within the queried row.
type mergeTable struct {
	rows  [][]mergeRule
	count int
}

func newMergeTable(v *vocabulary, merges []model.MergePair) *mergeTable {
	type record struct {
		left, right, newID, priority int32
	}

	// Resolve left, right, and their concatenation against the vocabulary.
	// Records that fail any resolution are skipped: inconsistent configs
	// list merges over tokens they never define, and such rules can never
	// fire anyway.
	records := make([]record, 0, len(merges))
	var priority int32
	for _, m := range merges {
		if m.Left == "" || m.Right == "" {
			continue
		}
		left, ok := v.idOf(m.Left)
		if !ok {
			continue
		}
		right, ok := v.idOf(m.Right)
		if !ok {
			continue
		}
		newID, ok := v.idOf(m.Left + m.Right)
		if !ok {
			continue
		}
		records = append(records, record{left, right, newID, priority})
		priority++
	}

	// Count per row first, then fill with exact capacity and sort.
	counts := make([]int32, v.size())
	for _, r := range records {
		counts[r.left]++
	}

	rows := make([][]mergeRule, v.size())
	for left, n := range counts {
		if n > 0 {
			rows[left] = make([]mergeRule, 0, n)
		}
	}
	for _, r := range records {
		rows[r.left] = append(rows[r.left], mergeRule{r.right, r.newID, r.priority})
	}
	for _, row := range rows {
		sort.Slice(row, func(i, j int) bool { return row[i].right < row[j].right })
	}

	return &mergeTable{rows: rows, count: len(records)}
}

// lookup reports whether left followed by right merges. Left ids beyond
// the base vocabulary (added tokens) have no rows and therefore no rules.
func (t *mergeTable) lookup(left, right int32) (newID, priority int32, ok bool) {
	if left < 0 || int(left) >= len(t.rows) {
		return 0, 0, false
	}
	row := t.rows[left]
	i := sort.Search(len(row), func(i int) bool { return row[i].right >= right })
	if i < len(row) && row[i].right == right {
		return row[i].newID, row[i].priority, true
	}
	return 0, 0, false
}
