package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/borgia-ae/borgia-api/internal/application/catalog"
	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/application/usecase"
	"github.com/borgia-ae/borgia-api/internal/domain/authz"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/infrastructure/memory"
	"github.com/borgia-ae/borgia-api/pkg/logger"
)

const defaultShopID = 1

type fixture struct {
	st    *memory.Store
	cat   *catalog.Catalog
	shops *usecase.ShopUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	st := memory.NewStore()
	require.NoError(t, catalog.NewBootstrap(cat, st.Permissions(), st.Groups(), st.Users(), st.Shops(), logger.Nop()).
		Run(defaultShopID, "admin-password"))
	return &fixture{
		st:    st,
		cat:   cat,
		shops: usecase.NewShopUseCase(st.Shops(), st.Groups(), st, cat, defaultShopID, logger.Nop()),
	}
}

func (f *fixture) shop(t *testing.T, name string) *dto.ShopResponse {
	t.Helper()
	s, err := f.shops.Create(context.Background(), dto.CreateShopRequest{Name: name, Description: "Magasin " + name, Color: "#ff0000"})
	require.NoError(t, err)
	return s
}

// user crea un usuario con saldo y lo añade a los grupos indicados por nombre.
func (f *fixture) user(t *testing.T, username string, balance string, groups ...string) *entity.User {
	t.Helper()
	u := &entity.User{
		Username: username, FirstName: "F" + username, LastName: "L" + username,
		Balance: decimal.RequireFromString(balance), IsActive: true, DateJoined: time.Now(),
	}
	require.NoError(t, f.st.Users().Create(u))
	for _, name := range groups {
		g, err := f.st.Groups().GetByName(name)
		require.NoError(t, err)
		require.NotNil(t, g, "grupo %s", name)
		require.NoError(t, f.st.Groups().AddMember(g.ID, u.ID))
	}
	return u
}

func (f *fixture) subject(t *testing.T, u *entity.User) authz.Subject {
	t.Helper()
	groups, err := f.st.Groups().ListByUser(u.ID)
	require.NoError(t, err)
	return authz.Subject{UserID: u.ID, Groups: groups}
}
