package listing_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/listing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Esquema de prueba
// ──────────────────────────────────────────────────────────────────────────────

type member struct {
	id       int64
	username string
	lastName string
	family   string
	active   bool
	balance  decimal.Decimal
	password string
	groups   []int64
}

var schema = listing.Schema[*member]{
	Kind: "users.user",
	PK:   func(m *member) any { return m.id },
	Fields: []listing.Field[*member]{
		{Name: "username", Type: listing.String, Get: func(m *member) any { return m.username }},
		{Name: "last_name", Type: listing.String, Get: func(m *member) any { return m.lastName }},
		{Name: "family", Type: listing.String, Get: func(m *member) any { return m.family }},
		{Name: "is_active", Type: listing.Bool, Get: func(m *member) any { return m.active }},
		{Name: "balance", Type: listing.Decimal, Get: func(m *member) any { return m.balance }},
		{Name: "groups", Type: listing.IntList, Get: func(m *member) any { return m.groups }},
		// Declarado por error: nunca debe salir.
		{Name: "password", Type: listing.String, Get: func(m *member) any { return m.password }},
	},
	Search: []string{"username", "last_name"},
	Props: []listing.Prop[*member]{
		{Name: "full_name", Compute: func(m *member) (any, error) {
			if m.lastName == "" {
				return nil, errors.New("sin apellido")
			}
			return m.username + " " + m.lastName, nil
		}},
	},
	Exclude:   func(m *member) bool { return m.username == "admin" },
	Sensitive: listing.UserSensitive,
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixtures() []*member {
	return []*member{
		{id: 1, username: "admin", balance: dec("1000"), active: true, password: "x"},
		{id: 2, username: "alice", lastName: "Martin", family: "101", active: true, balance: dec("12.50"), password: "h1", groups: []int64{2}},
		{id: 3, username: "bob", lastName: "Dupont", family: "102", active: false, balance: dec("-3"), password: "h2", groups: []int64{2, 4}},
		{id: 4, username: "albert", family: "101", active: true, balance: dec("40"), password: "h3", groups: []int64{4}},
	}
}

func run(t *testing.T, params map[string]string) listing.Page {
	t.Helper()
	q, err := listing.ParseQuery(schema, params)
	require.NoError(t, err)
	return listing.Run(schema, fixtures(), q)
}

func pks(p listing.Page) []int64 {
	out := make([]int64, len(p.Items))
	for i, it := range p.Items {
		out[i] = it.PK.(int64)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_ExcluyeAdminYOcultaSensibles(t *testing.T) {
	p := run(t, map[string]string{"search": "a", "order_by": "balance"})
	for _, it := range p.Items {
		assert.NotEqual(t, int64(1), it.PK, "admin nunca aparece")
		for _, f := range listing.UserSensitive {
			_, ok := it.Fields[f]
			assert.False(t, ok, "el campo %s no debe serializarse", f)
		}
	}
}

func TestParseQuery_FiltroSensibleIgnorado(t *testing.T) {
	p := run(t, map[string]string{"password": "h1"})
	assert.Equal(t, 3, p.Count, "filtrar por password no debe tener efecto")

	_, err := listing.ParseQuery(schema, map[string]string{"order_by": "password"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRun_BooleanoComoTexto(t *testing.T) {
	for _, raw := range []string{"true", "True"} {
		p := run(t, map[string]string{"is_active": raw})
		assert.Equal(t, []int64{2, 4}, pks(p))
	}
	p := run(t, map[string]string{"is_active": "false"})
	assert.Equal(t, []int64{3}, pks(p))

	_, err := listing.ParseQuery(schema, map[string]string{"is_active": "yes"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRun_BusquedaPorPrefijoOR(t *testing.T) {
	p := run(t, map[string]string{"search": "al"})
	assert.Equal(t, []int64{2, 4}, pks(p))

	p = run(t, map[string]string{"search": "Dup"})
	assert.Equal(t, []int64{3}, pks(p), "se busca también en last_name")

	p = run(t, map[string]string{"search": "AL"})
	assert.Empty(t, p.Items, "la búsqueda distingue mayúsculas")
}

func TestRun_OrdenDescendentePorSaldo(t *testing.T) {
	p := run(t, map[string]string{"order_by": "balance", "reverse": "true"})
	assert.Equal(t, []int64{4, 2, 3}, pks(p))
	assert.Equal(t, "40.00", p.Items[0].Fields["balance"])
}

func TestRun_OrdenPorPropConErrores(t *testing.T) {
	p := run(t, map[string]string{"order_by": "full_name"})
	assert.Equal(t, []int64{4, 2, 3}, pks(p), "una prop que falla ordena primero")

	_, ok := p.Items[0].Props["full_name"]
	assert.False(t, ok, "la prop que falla se omite solo para ese elemento")
	assert.Equal(t, "alice Martin", p.Items[1].Props["full_name"])
}

func TestParseQuery_OrderByDesconocido(t *testing.T) {
	_, err := listing.ParseQuery(schema, map[string]string{"order_by": "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRun_VentanaYCount(t *testing.T) {
	p := run(t, map[string]string{"order_by": "username", "begin": "1", "end": "3"})
	assert.Equal(t, 3, p.Count, "count es previo a la ventana")
	assert.Equal(t, []int64{2, 3}, pks(p))
	require.NotNil(t, p.Items[0].Count)
	assert.Equal(t, 3, *p.Items[0].Count)
	assert.Nil(t, p.Items[1].Count, "count solo en el primer elemento")

	p = run(t, map[string]string{"order_by": "username", "begin": "1"})
	assert.Len(t, p.Items, 3, "sin end no hay ventana")

	p = run(t, map[string]string{"order_by": "username", "begin": "-1", "end": "10"})
	assert.Equal(t, []int64{3}, pks(p))

	_, err := listing.ParseQuery(schema, map[string]string{"begin": "a", "end": "2"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRun_FiltrosTipados(t *testing.T) {
	p := run(t, map[string]string{"family": "101", "groups": "4"})
	assert.Equal(t, []int64{4}, pks(p))

	p = run(t, map[string]string{"balance": "12.5"})
	assert.Equal(t, []int64{2}, pks(p))

	p = run(t, map[string]string{"unknown": "x"})
	assert.Equal(t, 3, p.Count, "parámetros desconocidos se ignoran")
}

func TestRun_JSON(t *testing.T) {
	p := run(t, map[string]string{"username": "bob"})
	raw, err := json.Marshal(p.Items)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"pk":3,"model":"users.user","count":1,
		"fields":{"username":"bob","last_name":"Dupont","family":"102","is_active":false,"balance":"-3.00","groups":[2,4]},
		"props":{"full_name":"bob Dupont"}}]`, string(raw))
}

func TestDetail(t *testing.T) {
	all := fixtures()
	assert.Nil(t, listing.Detail(schema, &all[0]), "admin excluido también en detalle")
	assert.Nil(t, listing.Detail[*member](schema, nil))
	items := listing.Detail(schema, &all[1])
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].PK)
}
