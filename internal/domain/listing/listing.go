package listing

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Item elemento serializado: {pk, model, fields, props}; Count solo en el primero.
type Item struct {
	PK     any            `json:"pk"`
	Model  string         `json:"model"`
	Fields map[string]any `json:"fields"`
	Props  map[string]any `json:"props,omitempty"`
	Count  *int           `json:"count,omitempty"`
}

// Page resultado de un listado. Count es el total antes de aplicar la ventana.
type Page struct {
	Count int
	Items []Item
}

// Run excluye, filtra, busca, serializa, ordena y recorta la colección.
func Run[T any](s Schema[T], all []T, q Query) Page {
	rows := make([]T, 0, len(all))
	for _, it := range all {
		if s.Exclude != nil && s.Exclude(it) {
			continue
		}
		if !matches(s, it, q) {
			continue
		}
		rows = append(rows, it)
	}

	items := make([]Item, len(rows))
	for i, it := range rows {
		items[i] = serialize(s, it)
	}

	if q.OrderBy != "" {
		keys := make([]any, len(rows))
		for i, it := range rows {
			keys[i] = sortKey(s, it, q.OrderBy)
		}
		idx := make([]int, len(items))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			c := compare(keys[idx[a]], keys[idx[b]])
			if q.Reverse {
				return c > 0
			}
			return c < 0
		})
		sorted := make([]Item, len(items))
		for i, j := range idx {
			sorted[i] = items[j]
		}
		items = sorted
	}

	count := len(items)
	if q.Window {
		lo, hi := window(count, q.Begin, q.End)
		items = items[lo:hi]
	}
	if len(items) > 0 {
		c := count
		items[0].Count = &c
	}
	return Page{Count: count, Items: items}
}

// Detail serializa un único elemento (nil si no existe o está excluido).
func Detail[T any](s Schema[T], it *T) []Item {
	if it == nil || (s.Exclude != nil && s.Exclude(*it)) {
		return nil
	}
	return []Item{serialize(s, *it)}
}

func serialize[T any](s Schema[T], it T) Item {
	out := Item{PK: s.PK(it), Model: s.Kind, Fields: make(map[string]any, len(s.Fields))}
	for _, f := range s.Fields {
		if s.isSensitive(f.Name) {
			continue
		}
		out.Fields[f.Name] = jsonValue(f.Get(it))
	}
	if len(s.Props) > 0 {
		out.Props = make(map[string]any, len(s.Props))
		for _, p := range s.Props {
			v, err := p.Compute(it)
			if err != nil {
				continue
			}
			out.Props[p.Name] = jsonValue(v)
		}
	}
	return out
}

// sortKey valor sin serializar del campo o prop; una prop que falla ordena como nil.
func sortKey[T any](s Schema[T], it T, name string) any {
	if f, ok := s.field(name); ok {
		return normalize(f.Get(it))
	}
	if p, ok := s.prop(name); ok {
		v, err := p.Compute(it)
		if err != nil {
			return nil
		}
		return normalize(v)
	}
	return nil
}

func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case *int64:
		if x == nil {
			return nil
		}
		return *x
	case *time.Time:
		if x == nil {
			return nil
		}
		return *x
	}
	return v
}

func matches[T any](s Schema[T], it T, q Query) bool {
	for name, want := range q.Filters {
		f, ok := s.field(name)
		if !ok {
			continue
		}
		if !equal(f.Type, f.Get(it), want) {
			return false
		}
	}
	if !q.HasSearch || len(s.Search) == 0 {
		return true
	}
	for _, name := range s.Search {
		f, ok := s.field(name)
		if !ok {
			continue
		}
		if str, ok := f.Get(it).(string); ok && strings.HasPrefix(str, q.Search) {
			return true
		}
	}
	return false
}

func equal(t FieldType, got, want any) bool {
	switch t {
	case IntList:
		ids, _ := got.([]int64)
		for _, id := range ids {
			if id == want.(int64) {
				return true
			}
		}
		return false
	case Decimal:
		d, ok := got.(decimal.Decimal)
		return ok && d.Equal(want.(decimal.Decimal))
	case Int:
		return toInt64(got) == want.(int64)
	default:
		return got == want
	}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case *int64:
		if n == nil {
			return 0
		}
		return *n
	}
	return 0
}

// jsonValue normaliza los valores para la serialización.
func jsonValue(v any) any {
	switch x := v.(type) {
	case decimal.Decimal:
		return x.StringFixed(2)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case *time.Time:
		if x == nil {
			return nil
		}
		return x.UTC().Format(time.RFC3339)
	case *int64:
		if x == nil {
			return nil
		}
		return *x
	case int:
		return int64(x)
	}
	return v
}

// compare ordena nil antes que cualquier valor.
func compare(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		}
		return 1
	}
	switch x := a.(type) {
	case string:
		y, _ := b.(string)
		return strings.Compare(x, y)
	case int64:
		y := toInt64(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case float64:
		y, _ := b.(float64)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case bool:
		y, _ := b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		}
		return 1
	case decimal.Decimal:
		y, _ := b.(decimal.Decimal)
		return x.Cmp(y)
	case time.Time:
		y, _ := b.(time.Time)
		return x.Compare(y)
	case []int64:
		y, _ := b.([]int64)
		return len(x) - len(y)
	}
	return 0
}

// window aplica la semántica de slice [begin:end] con índices negativos.
func window(n, begin, end int) (int, int) {
	clamp := func(i int) int {
		if i < 0 {
			i += n
			if i < 0 {
				i = 0
			}
		}
		if i > n {
			i = n
		}
		return i
	}
	lo, hi := clamp(begin), clamp(end)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
