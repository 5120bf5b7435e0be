package listing

// FieldType tipo de un campo listable; determina cómo se interpreta el filtro.
type FieldType int

const (
	String FieldType = iota
	Int
	Bool
	Decimal
	Time    // solo ordenable
	IntList // filtro = pertenencia (p. ej. groups=3)
)

// Field campo serializable de un recurso.
type Field[T any] struct {
	Name string
	Type FieldType
	Get  func(T) any
}

// Prop propiedad derivada. Si Compute falla, la propiedad se omite para ese elemento.
type Prop[T any] struct {
	Name    string
	Compute func(T) (any, error)
}

// Schema lista cerrada de lo que se puede filtrar, buscar, ordenar y serializar de un tipo.
type Schema[T any] struct {
	Kind    string      // nombre del modelo en la respuesta (p. ej. "users.user")
	PK      func(T) any // int64 o string
	Fields  []Field[T]
	Search  []string // campos String donde se busca por prefijo
	Props   []Prop[T]
	Exclude func(T) bool // elementos que nunca se listan
	// Sensitive campos que nunca salen en la respuesta ni se pueden filtrar u ordenar.
	Sensitive []string
}

// UserSensitive campos de usuario que nunca se exponen.
var UserSensitive = []string{"password", "is_superuser", "is_staff", "last_login"}

func (s Schema[T]) field(name string) (Field[T], bool) {
	if s.isSensitive(name) {
		return Field[T]{}, false
	}
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field[T]{}, false
}

func (s Schema[T]) prop(name string) (Prop[T], bool) {
	for _, p := range s.Props {
		if p.Name == name {
			return p, true
		}
	}
	return Prop[T]{}, false
}

func (s Schema[T]) isSensitive(name string) bool {
	for _, n := range s.Sensitive {
		if n == name {
			return true
		}
	}
	return false
}
