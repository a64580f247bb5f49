package core

import (
	"fmt"

	"github.com/google/uuid"
)

// WeaponKind selects the targeting rule of a weapon
type WeaponKind uint8

const (
	Melee WeaponKind = iota
	Ranged
	AnythingInView
)

func (k WeaponKind) String() string {
	switch k {
	case Melee:
		return "melee"
	case Ranged:
		return "ranged"
	case AnythingInView:
		return "anything_in_view"
	default:
		return fmt.Sprintf("WeaponKind(%d)", uint8(k))
	}
}

// ParseWeaponKind converts a weapon kind name into its WeaponKind
func ParseWeaponKind(name string) (WeaponKind, error) {
	switch name {
	case "melee":
		return Melee, nil
	case "ranged":
		return Ranged, nil
	case "anything_in_view", "view":
		return AnythingInView, nil
	}
	return 0, fmt.Errorf("unknown weapon kind %q", name)
}

// UnlimitedAmmo marks a weapon that never needs reloading
const UnlimitedAmmo = -1

// Weapon holds the attack attributes of a unit
type Weapon struct {
	Name      string
	Kind      WeaponKind
	Precision int // base hit chance in percent
	Range     int // exclusive upper bound on line length, ranged only
	Damage    int
	Modifier  int // flat precision bonus or malus
	Ammo      int
	MaxAmmo   int
	APCost    int
}

// HasAmmo reports whether the weapon can fire once more
func (w Weapon) HasAmmo() bool {
	return w.Ammo == UnlimitedAmmo || w.Ammo > 0
}

// Stats are the static attributes of a unit
type Stats struct {
	SightRange      int
	MovementRange   int
	MaxHP           int
	MaxActionPoints int
}

// Unit is a combatant. Its position is owned by the Grid.
type Unit struct {
	ID           string
	Name         string
	Team         int
	Stats        Stats
	Weapon       Weapon
	HP           int
	ActionPoints int
	Played       bool

	pos    Coordinate
	placed bool
}

// NewUnit creates a unit at full health and action points
func NewUnit(name string, team int, stats Stats, weapon Weapon) *Unit {
	return &Unit{
		ID:           uuid.NewString(),
		Name:         name,
		Team:         team,
		Stats:        stats,
		Weapon:       weapon,
		HP:           stats.MaxHP,
		ActionPoints: stats.MaxActionPoints,
	}
}

// Position returns where the unit stands
func (u *Unit) Position() Coordinate {
	return u.pos
}

// IsPlaced reports whether the unit is on a grid
func (u *Unit) IsPlaced() bool {
	return u.placed
}

func (u *Unit) Alive() bool {
	return u.HP > 0
}

// CanAct reports whether the unit is alive and still available this turn
func (u *Unit) CanAct() bool {
	return u.Alive() && !u.Played
}

// IsAllyOf reports whether both units fight for the same team
func (u *Unit) IsAllyOf(other *Unit) bool {
	return other != nil && u.Team == other.Team
}

// SpendActionPoints removes n action points
func (u *Unit) SpendActionPoints(n int) error {
	if n > u.ActionPoints {
		return fmt.Errorf("need %d, have %d: %w", n, u.ActionPoints, ErrNoActionPoints)
	}
	u.ActionPoints -= n
	return nil
}

// TakeDamage lowers HP and reports whether this hit killed the unit
func (u *Unit) TakeDamage(amount int) bool {
	if !u.Alive() || amount <= 0 {
		return false
	}
	u.HP -= amount
	if u.HP < 0 {
		u.HP = 0
	}
	return u.HP == 0
}

// ResetTurn makes the unit available again with full action points
func (u *Unit) ResetTurn() {
	u.Played = false
	u.ActionPoints = u.Stats.MaxActionPoints
}

// ConsumeAmmo spends one round, leaving unlimited weapons untouched
func (u *Unit) ConsumeAmmo() error {
	if !u.Weapon.HasAmmo() {
		return ErrOutOfAmmo
	}
	if u.Weapon.Ammo != UnlimitedAmmo {
		u.Weapon.Ammo--
	}
	return nil
}

// Reload refills the weapon
func (u *Unit) Reload() {
	if u.Weapon.Ammo != UnlimitedAmmo {
		u.Weapon.Ammo = u.Weapon.MaxAmmo
	}
}

func (u *Unit) String() string {
	return fmt.Sprintf("%s[team %d @ %v]", u.Name, u.Team, u.pos)
}

// Team is an ordered group of units sharing a turn
type Team struct {
	ID    int
	Name  string
	AI    bool
	Units []*Unit
}

// LivingUnits returns the team's living units in team order
func (t *Team) LivingUnits() []*Unit {
	out := make([]*Unit, 0, len(t.Units))
	for _, u := range t.Units {
		if u.Alive() {
			out = append(out, u)
		}
	}
	return out
}

// HasLivingUnits reports whether any unit of the team is alive
func (t *Team) HasLivingUnits() bool {
	for _, u := range t.Units {
		if u.Alive() {
			return true
		}
	}
	return false
}
