package usecase

import (
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/ledger"
	"github.com/borgia-ae/borgia-api/internal/domain/listing"
)

// userRow usuario con los ids de sus grupos (campo groups del listado).
type userRow struct {
	*entity.User
	groups []int64
}

func userSchema(specialsID int64) listing.Schema[userRow] {
	return listing.Schema[userRow]{
		Kind: "users.user",
		PK:   func(u userRow) any { return u.ID },
		Fields: []listing.Field[userRow]{
			{Name: "username", Type: listing.String, Get: func(u userRow) any { return u.Username }},
			{Name: "first_name", Type: listing.String, Get: func(u userRow) any { return u.FirstName }},
			{Name: "last_name", Type: listing.String, Get: func(u userRow) any { return u.LastName }},
			{Name: "email", Type: listing.String, Get: func(u userRow) any { return u.Email }},
			{Name: "surname", Type: listing.String, Get: func(u userRow) any { return u.Surname }},
			{Name: "family", Type: listing.String, Get: func(u userRow) any { return u.Family }},
			{Name: "campus", Type: listing.String, Get: func(u userRow) any { return u.Campus }},
			{Name: "year", Type: listing.Int, Get: func(u userRow) any { return u.Year }},
			{Name: "phone", Type: listing.String, Get: func(u userRow) any { return u.Phone }},
			{Name: "balance", Type: listing.Decimal, Get: func(u userRow) any { return u.Balance }},
			{Name: "is_active", Type: listing.Bool, Get: func(u userRow) any { return u.IsActive }},
			{Name: "date_joined", Type: listing.Time, Get: func(u userRow) any { return u.DateJoined }},
			{Name: "groups", Type: listing.IntList, Get: func(u userRow) any { return u.groups }},
			{Name: "password", Type: listing.String, Get: func(u userRow) any { return u.PasswordHash }},
			{Name: "is_superuser", Type: listing.Bool, Get: func(u userRow) any { return u.IsSuperuser }},
			{Name: "is_staff", Type: listing.Bool, Get: func(u userRow) any { return u.IsStaff }},
			{Name: "last_login", Type: listing.Time, Get: func(u userRow) any { return u.LastLogin }},
		},
		Search: []string{"username", "last_name", "first_name", "surname", "family"},
		Props: []listing.Prop[userRow]{
			{Name: "full_name", Compute: func(u userRow) (any, error) { return u.FullName(), nil }},
		},
		Exclude: func(u userRow) bool {
			if u.IsReserved() {
				return true
			}
			for _, g := range u.groups {
				if g == specialsID {
					return true
				}
			}
			return false
		},
		Sensitive: listing.UserSensitive,
	}
}

func shopSchema(defaultShopID int64) listing.Schema[*entity.Shop] {
	return listing.Schema[*entity.Shop]{
		Kind: "shops.shop",
		PK:   func(s *entity.Shop) any { return s.ID },
		Fields: []listing.Field[*entity.Shop]{
			{Name: "name", Type: listing.String, Get: func(s *entity.Shop) any { return s.Name }},
			{Name: "description", Type: listing.String, Get: func(s *entity.Shop) any { return s.Description }},
			{Name: "color", Type: listing.String, Get: func(s *entity.Shop) any { return s.Color }},
			{Name: "created_at", Type: listing.Time, Get: func(s *entity.Shop) any { return s.CreatedAt }},
		},
		Search:  []string{"name"},
		Exclude: func(s *entity.Shop) bool { return s.ID == defaultShopID },
	}
}

func productSchema(margin func() (*entity.Setting, error)) listing.Schema[*entity.Product] {
	return listing.Schema[*entity.Product]{
		Kind: "shops.product",
		PK:   func(p *entity.Product) any { return p.ID },
		Fields: []listing.Field[*entity.Product]{
			{Name: "name", Type: listing.String, Get: func(p *entity.Product) any { return p.Name }},
			{Name: "shop", Type: listing.Int, Get: func(p *entity.Product) any { return p.ShopID }},
			{Name: "unit", Type: listing.String, Get: func(p *entity.Product) any { return p.Unit }},
			{Name: "is_manual_price", Type: listing.Bool, Get: func(p *entity.Product) any { return p.IsManualPrice }},
			{Name: "manual_price", Type: listing.Decimal, Get: func(p *entity.Product) any { return p.ManualPrice }},
			{Name: "upstream_price", Type: listing.Decimal, Get: func(p *entity.Product) any { return p.UpstreamPrice }},
			{Name: "correcting_factor", Type: listing.Decimal, Get: func(p *entity.Product) any { return p.CorrectingFactor }},
			{Name: "is_active", Type: listing.Bool, Get: func(p *entity.Product) any { return p.IsActive }},
			{Name: "is_removed", Type: listing.Bool, Get: func(p *entity.Product) any { return p.IsRemoved }},
		},
		Search: []string{"name"},
		Props: []listing.Prop[*entity.Product]{
			{Name: "price", Compute: func(p *entity.Product) (any, error) {
				s, err := margin()
				if err != nil {
					return nil, err
				}
				return ledger.Price(p, s.MarginProfit), nil
			}},
		},
	}
}

func groupSchema() listing.Schema[*entity.Group] {
	return listing.Schema[*entity.Group]{
		Kind: "auth.group",
		PK:   func(g *entity.Group) any { return g.ID },
		Fields: []listing.Field[*entity.Group]{
			{Name: "name", Type: listing.String, Get: func(g *entity.Group) any { return g.Name }},
			{Name: "shop", Type: listing.Int, Get: func(g *entity.Group) any { return g.ShopID }},
			{Name: "role", Type: listing.String, Get: func(g *entity.Group) any { return g.Role }},
		},
		Search: []string{"name"},
		Props: []listing.Prop[*entity.Group]{
			{Name: "display_name", Compute: func(g *entity.Group) (any, error) { return DisplayGroupName(g.Name), nil }},
		},
	}
}

func saleSchema() listing.Schema[*entity.LedgerEvent] {
	return listing.Schema[*entity.LedgerEvent]{
		Kind: "finances.sale",
		PK:   func(e *entity.LedgerEvent) any { return e.ID },
		Fields: []listing.Field[*entity.LedgerEvent]{
			{Name: "datetime", Type: listing.Time, Get: func(e *entity.LedgerEvent) any { return e.Datetime }},
			{Name: "amount", Type: listing.Decimal, Get: func(e *entity.LedgerEvent) any { return e.Amount }},
			{Name: "sender", Type: listing.Int, Get: func(e *entity.LedgerEvent) any { return e.SenderID }},
			{Name: "recipient", Type: listing.Int, Get: func(e *entity.LedgerEvent) any { return e.RecipientID }},
			{Name: "operator", Type: listing.Int, Get: func(e *entity.LedgerEvent) any { return e.OperatorID }},
			{Name: "shop", Type: listing.Int, Get: func(e *entity.LedgerEvent) any { return e.ShopID }},
		},
		Props: []listing.Prop[*entity.LedgerEvent]{
			{Name: "lines", Compute: func(e *entity.LedgerEvent) (any, error) { return len(e.Lines), nil }},
		},
	}
}
