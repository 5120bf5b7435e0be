package listing

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/borgia-ae/borgia-api/internal/domain"
)

// Parámetros reservados del query string.
const (
	ParamOrderBy = "order_by"
	ParamReverse = "reverse"
	ParamSearch  = "search"
	ParamBegin   = "begin"
	ParamEnd     = "end"
)

// Query restricciones ya tipadas de un listado.
type Query struct {
	Filters   map[string]any
	Search    string
	HasSearch bool
	OrderBy   string
	Reverse   bool
	// Ventana [Begin, End) con semántica de slice (índices negativos cuentan desde el final).
	Begin, End int
	Window     bool
}

// ParseQuery interpreta los parámetros GET contra el esquema.
// Los parámetros que no son campos conocidos se ignoran; un valor mal formado o un
// order_by desconocido devuelven domain.ErrInvalidInput.
func ParseQuery[T any](s Schema[T], params map[string]string) (Query, error) {
	q := Query{Filters: map[string]any{}}

	for k, raw := range params {
		switch k {
		case ParamOrderBy, ParamBegin, ParamEnd:
			continue
		case ParamReverse:
			q.Reverse = raw == "True" || raw == "true"
			continue
		case ParamSearch:
			q.Search, q.HasSearch = raw, true
			continue
		}
		f, ok := s.field(k)
		if !ok || f.Type == Time {
			continue
		}
		v, err := parseValue(f.Type, raw)
		if err != nil {
			return Query{}, fmt.Errorf("%w: filtro %s=%q", domain.ErrInvalidInput, k, raw)
		}
		q.Filters[k] = v
	}

	if ob, ok := params[ParamOrderBy]; ok {
		_, isField := s.field(ob)
		_, isProp := s.prop(ob)
		if !isField && !isProp {
			return Query{}, fmt.Errorf("%w: order_by %q", domain.ErrInvalidInput, ob)
		}
		q.OrderBy = ob
	}

	b, hasB := params[ParamBegin]
	e, hasE := params[ParamEnd]
	if hasB && hasE {
		bi, err1 := strconv.Atoi(b)
		ei, err2 := strconv.Atoi(e)
		if err1 != nil || err2 != nil {
			return Query{}, fmt.Errorf("%w: begin/end deben ser enteros", domain.ErrInvalidInput)
		}
		q.Begin, q.End, q.Window = bi, ei, true
	}
	return q, nil
}

func parseValue(t FieldType, raw string) (any, error) {
	switch t {
	case Bool:
		switch raw {
		case "True", "true":
			return true, nil
		case "False", "false":
			return false, nil
		}
		return nil, fmt.Errorf("booleano inválido")
	case Int, IntList:
		return strconv.ParseInt(raw, 10, 64)
	case Decimal:
		return decimal.NewFromString(raw)
	default:
		return raw, nil
	}
}
