package components

// Pool is a regenerating resource such as health, mana or stamina.
type Pool struct {
	Current float64
	Max     float64
	Regen   float64 // Points per second
	Delay   float64 // Seconds without use before regeneration resumes
	idle    float64
}

// NewPool creates a full pool.
func NewPool(max, regen, delay float64) Pool {
	return Pool{Current: max, Max: max, Regen: regen, Delay: delay, idle: delay}
}

// Spend removes amount if available. It returns false and leaves the pool
// unchanged when there is not enough.
func (p *Pool) Spend(amount float64) bool {
	if amount < 0 || p.Current < amount {
		return false
	}
	p.Current -= amount
	p.idle = 0
	return true
}

// Damage removes amount, flooring at zero.
func (p *Pool) Damage(amount float64) {
	if amount <= 0 {
		return
	}
	p.Current -= amount
	if p.Current < 0 {
		p.Current = 0
	}
	p.idle = 0
}

// Restore adds amount up to Max and returns how much was applied.
func (p *Pool) Restore(amount float64) float64 {
	if amount <= 0 || p.Current >= p.Max {
		return 0
	}
	before := p.Current
	p.Current += amount
	if p.Current > p.Max {
		p.Current = p.Max
	}
	return p.Current - before
}

// Regenerate advances the idle timer and restores Regen*dt once the pool has
// been idle for Delay seconds.
func (p *Pool) Regenerate(dt float64) {
	if dt <= 0 {
		return
	}
	p.idle += dt
	if p.idle < p.Delay || p.Regen <= 0 {
		return
	}
	p.Restore(p.Regen * dt)
}

// SetMax changes the maximum and clamps the current value.
func (p *Pool) SetMax(max float64) {
	if max < 0 {
		max = 0
	}
	p.Max = max
	if p.Current > p.Max {
		p.Current = p.Max
	}
}

// Fill restores the pool to Max.
func (p *Pool) Fill() {
	p.Current = p.Max
}

// Fraction returns Current/Max in [0,1].
func (p *Pool) Fraction() float64 {
	if p.Max <= 0 {
		return 0
	}
	return p.Current / p.Max
}

// IsEmpty reports whether nothing is left.
func (p *Pool) IsEmpty() bool {
	return p.Current <= 0
}

// HealthComponent tracks hit points
type HealthComponent struct{ Pool }

// ManaComponent tracks spell resource
type ManaComponent struct{ Pool }

// StaminaComponent tracks sprint/swing resource
type StaminaComponent struct{ Pool }

// PoolOf returns the pool stored under one of Health, Mana or Stamina.
func PoolOf(comp interface{}) (*Pool, bool) {
	switch c := comp.(type) {
	case *HealthComponent:
		return &c.Pool, true
	case *ManaComponent:
		return &c.Pool, true
	case *StaminaComponent:
		return &c.Pool, true
	}
	return nil, false
}
