package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/application/usecase"
	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
	"github.com/borgia-ae/borgia-api/internal/infrastructure/memory"
)

func createRequest(username string) dto.CreateUserRequest {
	return dto.CreateUserRequest{
		Username: username, Password: "password123", FirstName: "Jean", LastName: "Dupont",
		Surname: "Jd", Family: "101", Campus: "ME", Year: 2016,
	}
}

func TestUserCreate_GrupoInternoPorDefecto(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewUserUseCase(f.st.Users(), f.st.Groups(), f.st, "members")

	out, err := uc.Create(context.Background(), createRequest("jdupont"))
	require.NoError(t, err)
	assert.True(t, out.Balance.IsZero())
	require.Len(t, out.Groups, 1)
	assert.Equal(t, "members", out.Groups[0].Name)

	u, err := f.st.Users().GetByUsername("jdupont")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")))
}

func TestUserCreate_UsernameUnico(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewUserUseCase(f.st.Users(), f.st.Groups(), f.st, "members")

	_, err := uc.Create(context.Background(), createRequest("jdupont"))
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), createRequest("jdupont"))
	assert.ErrorIs(t, err, domain.ErrUsernameExists)

	_, err = uc.Create(context.Background(), createRequest(entity.ReservedUsername))
	assert.ErrorIs(t, err, domain.ErrUsernameExists, "admin está reservado")
}

var errAltaGrupo = errors.New("alta en grupo rechazada")

// flakyMembers falla el alta en el segundo grupo dentro de la transacción.
type flakyMembers struct{ st *memory.Store }

type flakyGroups struct {
	repository.GroupRepository
	calls int
}

func (g *flakyGroups) AddMember(groupID, userID int64) error {
	g.calls++
	if g.calls > 1 {
		return errAltaGrupo
	}
	return g.GroupRepository.AddMember(groupID, userID)
}

func (m flakyMembers) RunMembers(ctx context.Context, fn func(repository.UserRepository, repository.GroupRepository) error) error {
	return m.st.RunMembers(ctx, func(users repository.UserRepository, groups repository.GroupRepository) error {
		return fn(users, &flakyGroups{GroupRepository: groups})
	})
}

func TestUserCreate_AltaAtomicaConSusGrupos(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewUserUseCase(f.st.Users(), f.st.Groups(), flakyMembers{f.st}, "members")
	members, err := f.st.Groups().GetByName("members")
	require.NoError(t, err)
	presidents, err := f.st.Groups().GetByName(entity.GroupPresidents)
	require.NoError(t, err)

	before, err := f.st.Groups().Members(members.ID)
	require.NoError(t, err)

	in := createRequest("jdupont")
	in.Groups = []int64{members.ID, presidents.ID}
	_, err = uc.Create(context.Background(), in)
	require.ErrorIs(t, err, errAltaGrupo)

	u, err := f.st.Users().GetByUsername("jdupont")
	require.NoError(t, err)
	assert.Nil(t, u, "sin membresías completas no queda el usuario")
	after, err := f.st.Groups().Members(members.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after, "la primera membresía se deshace")
}

func TestUserGet_AdminNoSeExpone(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewUserUseCase(f.st.Users(), f.st.Groups(), f.st, "members")

	admin, err := f.st.Users().GetByUsername(entity.ReservedUsername)
	require.NoError(t, err)
	_, err = uc.Get(admin.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserUpdate_NoTocaSaldo(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewUserUseCase(f.st.Users(), f.st.Groups(), f.st, "members")
	u := f.user(t, "rich", "50.00", "members")

	phone := "0600000000"
	out, err := uc.Update(u.ID, dto.UpdateUserRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, out.Phone)
	assert.Equal(t, "50.00", out.Balance.StringFixed(2))
}

// ─── Deactivate ──────────────────────────────────────────────────────────────

func TestUserDeactivate_Permisos(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewUserUseCase(f.st.Users(), f.st.Groups(), f.st, "members")
	member := f.user(t, "m1", "0", "members")
	other := f.user(t, "m2", "0", "members")
	president := f.user(t, "p1", "0", entity.GroupPresidents)

	_, err := uc.Deactivate(f.subject(t, member), other.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden, "un miembro no da de baja a otro")

	out, err := uc.Deactivate(f.subject(t, member), member.ID)
	require.NoError(t, err, "darse de baja a sí mismo siempre está permitido")
	assert.False(t, out.IsActive)

	out, err = uc.Deactivate(f.subject(t, president), other.ID)
	require.NoError(t, err)
	assert.False(t, out.IsActive)
}
