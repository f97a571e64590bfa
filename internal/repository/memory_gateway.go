package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const memoryTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// UniqueKey describes a uniqueness constraint enforced by MemoryGateway.
// Folded keys compare case-insensitively.
type UniqueKey struct {
	Columns []string
	Folded  bool
}

// MemoryGateway keeps every table in process memory. It backs local runs and
// tests and mirrors the constraints of the hosted schema.
type MemoryGateway struct {
	mu     sync.RWMutex
	tables map[string][]map[string]any
	unique map[string][]UniqueKey
	last   time.Time
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		tables: make(map[string][]map[string]any),
		unique: map[string][]UniqueKey{
			TableFreelancers: {{Columns: []string{"name"}, Folded: true}},
			TableRateCard:    {{Columns: []string{"freelancer_type", "group_type"}}},
		},
	}
}

func (g *MemoryGateway) Select(ctx context.Context, table string, q Query, dest any) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var rows []map[string]any
	for _, row := range g.tables[table] {
		if matchesAll(row, q.Predicates) {
			rows = append(rows, row)
		}
	}
	for i := len(q.Orders) - 1; i >= 0; i-- {
		o := q.Orders[i]
		sort.SliceStable(rows, func(a, b int) bool {
			c := compareValues(rows[a][o.Column], rows[b][o.Column])
			if o.Desc {
				return c > 0
			}
			return c < 0
		})
	}
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return remarshal(rows, dest)
}

func (g *MemoryGateway) Insert(ctx context.Context, table string, row any) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	m, err := toMap(row)
	if err != nil {
		return err
	}
	g.stamp(m, true)
	if err := g.checkUnique(table, m, ""); err != nil {
		return err
	}
	g.tables[table] = append(g.tables[table], m)
	return remarshal(m, row)
}

func (g *MemoryGateway) Update(ctx context.Context, table string, id string, fields map[string]any, dest any) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	idx := g.indexOf(table, id)
	if idx < 0 {
		return ErrNotFound
	}
	patch, err := toMap(fields)
	if err != nil {
		return err
	}
	merged := make(map[string]any, len(g.tables[table][idx]))
	for k, v := range g.tables[table][idx] {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	g.stamp(merged, false)
	if err := g.checkUnique(table, merged, id); err != nil {
		return err
	}
	g.tables[table][idx] = merged
	return remarshal(merged, dest)
}

func (g *MemoryGateway) Delete(ctx context.Context, table string, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	idx := g.indexOf(table, id)
	if idx < 0 {
		return ErrNotFound
	}
	rows := g.tables[table]
	g.tables[table] = append(rows[:idx:idx], rows[idx+1:]...)
	return nil
}

func (g *MemoryGateway) Upsert(ctx context.Context, table string, rows any, conflict []string, updateColumns []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode rows: %w", err)
	}
	var incoming []map[string]any
	if err := json.Unmarshal(raw, &incoming); err != nil {
		return fmt.Errorf("decode rows: %w", err)
	}

	next := append([]map[string]any(nil), g.tables[table]...)
	stored := make([]map[string]any, len(incoming))
	for i, in := range incoming {
		key := UniqueKey{Columns: conflict}
		existing := -1
		for j, row := range next {
			if key.value(row) == key.value(in) {
				existing = j
				break
			}
		}
		if existing < 0 {
			g.stamp(in, true)
			next = append(next, in)
			stored[i] = in
			continue
		}
		updated := make(map[string]any, len(next[existing]))
		for k, v := range next[existing] {
			updated[k] = v
		}
		for _, c := range updateColumns {
			updated[c] = in[c]
		}
		g.stamp(updated, false)
		next[existing] = updated
		stored[i] = updated
	}
	g.tables[table] = next
	return remarshal(stored, rows)
}

func (g *MemoryGateway) indexOf(table, id string) int {
	for i, row := range g.tables[table] {
		if row["id"] == id {
			return i
		}
	}
	return -1
}

// stamp assigns ids and timestamps. Timestamps strictly increase so ordering
// by created_at follows insertion order.
func (g *MemoryGateway) stamp(m map[string]any, created bool) {
	now := time.Now().UTC()
	if !now.After(g.last) {
		now = g.last.Add(time.Microsecond)
	}
	g.last = now
	ts := now.Format(memoryTimeLayout)
	if created {
		if id, _ := m["id"].(string); id == "" || id == uuid.Nil.String() {
			m["id"] = uuid.NewString()
		}
		m["created_at"] = ts
	}
	m["updated_at"] = ts
}

func (g *MemoryGateway) checkUnique(table string, m map[string]any, selfID string) error {
	for _, key := range g.unique[table] {
		want := key.value(m)
		for _, row := range g.tables[table] {
			if row["id"] == selfID {
				continue
			}
			if key.value(row) == want {
				return fmt.Errorf("%w: duplicate %s", ErrUniqueViolation, strings.Join(key.Columns, ","))
			}
		}
	}
	return nil
}

func (k UniqueKey) value(row map[string]any) string {
	parts := make([]string, len(k.Columns))
	for i, c := range k.Columns {
		parts[i] = stringValue(row[c])
		if k.Folded {
			parts[i] = strings.ToLower(parts[i])
		}
	}
	return strings.Join(parts, "\x00")
}

func matchesAll(row map[string]any, preds []Predicate) bool {
	for _, p := range preds {
		if !matches(row, p) {
			return false
		}
	}
	return true
}

func matches(row map[string]any, p Predicate) bool {
	switch p.Op {
	case OpEq:
		return row[p.Column] != nil && stringValue(row[p.Column]) == p.Value
	case OpILike:
		return row[p.Column] != nil && strings.EqualFold(stringValue(row[p.Column]), unescapeLike(p.Value))
	case OpGte:
		return row[p.Column] != nil && compareValues(row[p.Column], p.Value) >= 0
	case OpLte:
		return row[p.Column] != nil && compareValues(row[p.Column], p.Value) <= 0
	case OpIn:
		if row[p.Column] == nil {
			return false
		}
		v := stringValue(row[p.Column])
		for _, want := range p.Values {
			if v == want {
				return true
			}
		}
		return false
	case OpSearch:
		term := strings.ToLower(unescapeLike(p.Value))
		for _, c := range p.Columns {
			if row[c] != nil && strings.Contains(strings.ToLower(stringValue(row[c])), term) {
				return true
			}
		}
		return false
	}
	return false
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = stringValue(item)
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}

// compareValues orders numbers numerically and everything else as text.
func compareValues(a, b any) int {
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum && bNum {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	}
	return strings.Compare(stringValue(a), stringValue(b))
}

func toFloat(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

func unescapeLike(s string) string {
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

func toMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode row: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode row: %w", err)
	}
	for _, k := range []string{"created_at", "updated_at"} {
		if s, ok := m[k].(string); ok && strings.HasPrefix(s, "0001-01-01") {
			delete(m, k)
		}
	}
	return m, nil
}

func remarshal(src, dest any) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}
