package combat

import (
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
)

// Roller produces uniform integers in [0,n). *rand.Rand satisfies it.
type Roller interface {
	Intn(n int) int
}

// Decision is the synchronous first phase of an attack
type Decision struct {
	Attacker *core.Unit
	Target   *core.Unit
	Weapon   core.Weapon
	Chance   int
	Roll     int
	Hit      bool
}

// Decide computes the hit chance and rolls against it
func (r *Resolver) Decide(attacker, target *core.Unit, roller Roller) Decision {
	w := attacker.Weapon
	chance := r.ChanceToHit(attacker, target, w)
	roll := roller.Intn(100)
	return Decision{
		Attacker: attacker,
		Target:   target,
		Weapon:   w,
		Chance:   chance,
		Roll:     roll,
		Hit:      roll < chance,
	}
}

// Result is what resolving an attack did
type Result struct {
	Hit    bool
	Damage int
	Killed bool
}

// Attack is a decided attack waiting for its damage to be applied
type Attack struct {
	Decision
	resolved bool
	result   Result
}

// NewAttack wraps a decision
func NewAttack(d Decision) *Attack {
	return &Attack{Decision: d}
}

// Resolve applies the damage of a hit. Only the first call has an effect;
// later calls return the first result and ErrAlreadyResolved.
func (a *Attack) Resolve() (Result, error) {
	if a.resolved {
		return a.result, core.ErrAlreadyResolved
	}
	a.resolved = true
	a.result = Result{Hit: a.Hit}
	if a.Hit {
		a.result.Damage = a.Weapon.Damage
		a.result.Killed = a.Target.TakeDamage(a.Weapon.Damage)
	}
	return a.result, nil
}

// IsResolved reports whether damage has been applied
func (a *Attack) IsResolved() bool {
	return a.resolved
}
