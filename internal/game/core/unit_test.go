package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnit(t *testing.T) {
	u := newTestUnit("scout", 1)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, 10, u.HP)
	assert.Equal(t, 2, u.ActionPoints)
	assert.True(t, u.CanAct())
	assert.NotEqual(t, u.ID, newTestUnit("scout", 1).ID)
}

func TestUnit_TakeDamage(t *testing.T) {
	u := newTestUnit("grunt", 0)

	assert.False(t, u.TakeDamage(4))
	assert.Equal(t, 6, u.HP)
	assert.False(t, u.TakeDamage(0))

	assert.True(t, u.TakeDamage(20))
	assert.Equal(t, 0, u.HP)
	assert.False(t, u.Alive())
	assert.False(t, u.CanAct())

	assert.False(t, u.TakeDamage(5), "already dead")
}

func TestUnit_ActionPoints(t *testing.T) {
	u := newTestUnit("grunt", 0)

	require.NoError(t, u.SpendActionPoints(2))
	err := u.SpendActionPoints(1)
	assert.True(t, errors.Is(err, ErrNoActionPoints))

	u.Played = true
	u.ResetTurn()
	assert.False(t, u.Played)
	assert.Equal(t, 2, u.ActionPoints)
}

func TestUnit_Ammo(t *testing.T) {
	u := newTestUnit("grunt", 0)

	require.NoError(t, u.ConsumeAmmo())
	require.NoError(t, u.ConsumeAmmo())
	assert.True(t, errors.Is(u.ConsumeAmmo(), ErrOutOfAmmo))

	u.Reload()
	assert.Equal(t, 2, u.Weapon.Ammo)

	u.Weapon.Ammo = UnlimitedAmmo
	for i := 0; i < 5; i++ {
		require.NoError(t, u.ConsumeAmmo())
	}
	assert.Equal(t, UnlimitedAmmo, u.Weapon.Ammo)
}

func TestParseWeaponKind(t *testing.T) {
	for _, k := range []WeaponKind{Melee, Ranged, AnythingInView} {
		got, err := ParseWeaponKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseWeaponKind("laser")
	assert.Error(t, err)
}

func TestTeam_LivingUnits(t *testing.T) {
	a, b := newTestUnit("a", 0), newTestUnit("b", 0)
	team := &Team{ID: 0, Name: "red", Units: []*Unit{a, b}}

	assert.True(t, team.HasLivingUnits())
	a.TakeDamage(100)
	assert.Equal(t, []*Unit{b}, team.LivingUnits())
	b.TakeDamage(100)
	assert.False(t, team.HasLivingUnits())
	assert.Empty(t, team.LivingUnits())
	assert.True(t, a.IsAllyOf(b))
}
