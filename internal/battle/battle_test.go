package battle

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/battlecore/internal/action"
	"github.com/samdwyer/battlecore/internal/battlelog"
	"github.com/samdwyer/battlecore/internal/buff"
	"github.com/samdwyer/battlecore/internal/preview"
	"github.com/samdwyer/battlecore/internal/skill"
	"github.com/samdwyer/battlecore/internal/unit"
	"github.com/samdwyer/battlecore/internal/world"
)

type skillMap map[string]*skill.Data

func (m skillMap) GetByID(id string) *skill.Data { return m[id] }

var testSkills = skillMap{
	"strike": {
		ID: "strike", Name: "Strike", Kind: skill.KindActive, Target: skill.TargetEnemySingle,
		StaminaCost: 2, MaxRange: 2, Effects: []skill.Effect{skill.Damage{Base: 5}},
	},
	"snipe": {
		ID: "snipe", Name: "Snipe", Kind: skill.KindActive, Target: skill.TargetEnemySingle,
		StaminaCost: 3, Effects: []skill.Effect{skill.Damage{Base: 10}},
	},
	"rally": {
		ID: "rally", Name: "Rally", Kind: skill.KindCommanderActive, Target: skill.TargetAllyAll,
		StaminaCost: 4, OneTime: true,
		Effects: []skill.Effect{skill.ApplyBuff{Buffs: []buff.Definition{{Kind: buff.Shield, Magnitude: 10}}}},
	},
	"banner": {
		ID: "banner", Name: "Banner", Kind: skill.KindCommanderPassive, Target: skill.TargetPassiveAllAllies,
		Effects: []skill.Effect{skill.ApplyBuff{Aura: true, Buffs: []buff.Definition{{Kind: buff.AttackValueUp, Magnitude: 2}}}},
	},
	"poison": {
		ID: "poison", Name: "Poison", Kind: skill.KindActive, Target: skill.TargetEnemySingle,
		StaminaCost: 1,
		Effects: []skill.Effect{skill.ApplyBuff{Buffs: []buff.Definition{{Kind: buff.DamageOverTime, Magnitude: 3, Duration: 2}}}},
	},
	"bash": {
		ID: "bash", Name: "Bash", Kind: skill.KindActive, Target: skill.TargetEnemySingle,
		StaminaCost: 2, MaxRange: 2,
		Effects: []skill.Effect{skill.ApplyBuff{Buffs: []buff.Definition{{Kind: buff.Stun, Magnitude: 1, Duration: 2}}}},
	},
}

type fixture struct {
	b       *Battle
	log     *battlelog.Log
	marshal *unit.Unit // left commander at (1,1)
	warden  *unit.Unit // left vanguard at (2,0)
	archer  *unit.Unit // right striker at (3,0)
	sentry  *unit.Unit // right vanguard at (3,1)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := battlelog.NewDiscard()
	b := New(world.NewField(6, 3), testSkills, log, Options{RestStamina: 3})

	f := &fixture{
		b:       b,
		log:     log,
		marshal: unit.New("marshal", "Marshal", world.SideLeft, unit.RoleCommander, unit.Stats{Life: 50, Stamina: 10, Attack: 10, Defense: 4, Speed: 3}, log),
		warden:  unit.New("warden", "Warden", world.SideLeft, unit.RoleVanguard, unit.Stats{Life: 40, Stamina: 6, Attack: 8, Defense: 5, Speed: 5}, log),
		archer:  unit.New("archer", "Archer", world.SideRight, unit.RoleStriker, unit.Stats{Life: 30, Stamina: 8, Attack: 9, Defense: 2, Speed: 7}, log),
		sentry:  unit.New("sentry", "Sentry", world.SideRight, unit.RoleVanguard, unit.Stats{Life: 45, Stamina: 6, Attack: 7, Defense: 6, Speed: 1}, log),
	}
	f.marshal.SetSkills([]string{"strike", "rally", "banner", "poison"})
	f.warden.SetSkills([]string{"strike", "bash"})
	f.archer.SetSkills([]string{"strike", "snipe"})
	f.sentry.SetSkills([]string{"strike"})

	require.NoError(t, b.AddUnit(f.marshal, world.Position{Col: 1, Row: 1}))
	require.NoError(t, b.AddUnit(f.warden, world.Position{Col: 2, Row: 0}))
	require.NoError(t, b.AddUnit(f.archer, world.Position{Col: 3, Row: 0}))
	require.NoError(t, b.AddUnit(f.sentry, world.Position{Col: 3, Row: 1}))
	return f
}

func attack(src, tgt *unit.Unit, phase int) action.Plan {
	return action.NewTargeted(src, tgt, action.KindAttack, phase, src.Role())
}

func cast(src, tgt *unit.Unit, id string, phase int) action.Plan {
	var target unit.ReadOnly
	if tgt != nil {
		target = tgt
	}
	return action.NewSkill(src, target, testSkills[id], phase, src.Role())
}

func messagesContaining(log *battlelog.Log, substr string) []string {
	var out []string
	for _, m := range log.Messages() {
		if strings.Contains(m, substr) {
			out = append(out, m)
		}
	}
	return out
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected string
	}{
		{PhaseSetup, "setup"},
		{PhasePlanning, "planning"},
		{PhaseResolving, "resolving"},
		{PhaseFinished, "finished"},
		{Phase(99), "unknown"},
	}

	for _, tt := range tests {
		got := tt.phase.String()
		if got != tt.expected {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.expected)
		}
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome  Outcome
		expected string
	}{
		{OutcomeOngoing, "ongoing"},
		{OutcomeLeftWins, "left_wins"},
		{OutcomeRightWins, "right_wins"},
		{OutcomeDraw, "draw"},
		{Outcome(99), "unknown"},
	}

	for _, tt := range tests {
		got := tt.outcome.String()
		if got != tt.expected {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.outcome, got, tt.expected)
		}
	}
}

func TestAddUnit(t *testing.T) {
	f := newFixture(t)
	extra := unit.New("extra", "Extra", world.SideLeft, unit.RoleSupport, unit.Stats{Life: 10}, nil)

	err := f.b.AddUnit(extra, world.Position{Col: 4, Row: 0})
	assert.Error(t, err, "left unit on the right side")

	err = f.b.AddUnit(extra, world.Position{Col: 2, Row: 0})
	assert.ErrorIs(t, err, world.ErrOccupied)

	dup := unit.New("warden", "Twin", world.SideLeft, unit.RoleSupport, unit.Stats{Life: 10}, nil)
	assert.Error(t, f.b.AddUnit(dup, world.Position{Col: 0, Row: 2}))

	require.NoError(t, f.b.AddUnit(extra, world.Position{Col: 0, Row: 2}))
	assert.Equal(t, world.Position{Col: 0, Row: 2}, extra.Position())
	assert.Equal(t, "extra", f.b.Field().At(world.Position{Col: 0, Row: 2}))
	assert.Same(t, extra, f.b.Unit("extra"))
}

func TestLatestSnapshot(t *testing.T) {
	f := newFixture(t)

	_, ok := f.b.LatestSnapshot()
	assert.False(t, ok, "no snapshot before the first planning phase")
	assert.Equal(t, PhaseSetup, f.b.Phase())

	f.b.BeginPlanning(context.Background())

	snap, ok := f.b.LatestSnapshot()
	require.True(t, ok)
	assert.Equal(t, PhasePlanning, f.b.Phase())
	assert.Len(t, snap.Entries, 4)
	e, ok := snap.Find("archer")
	require.True(t, ok)
	assert.Equal(t, world.Position{Col: 3, Row: 0}, e.Position)
	assert.Equal(t, 8, e.Stamina)
	assert.Equal(t, unit.RoleStriker, e.Role)
}

func TestBeginPlanningReappliesAuras(t *testing.T) {
	f := newFixture(t)
	f.sentry.Buffs().Apply(buff.Definition{Kind: buff.Shield, Magnitude: 12}, nil)

	f.b.BeginPlanning(context.Background())
	f.b.BeginPlanning(context.Background())

	assert.Equal(t, 12, f.marshal.Attack(), "banner applies to the commander")
	assert.Equal(t, 10, f.warden.Attack(), "banner applies once, not per planning phase")
	assert.Equal(t, 9, f.archer.Attack(), "enemies are unaffected")
	assert.Zero(t, f.sentry.Shield(), "shields clear at planning")
	assert.Len(t, f.warden.Buffs().Auras(), 1)
	assert.Empty(t, f.warden.Buffs().Active())
}

func TestBeginPlanningDropsAurasOfFallenCommander(t *testing.T) {
	f := newFixture(t)
	f.b.BeginPlanning(context.Background())
	require.Equal(t, 10, f.warden.Attack())

	f.marshal.LoseLife(100)
	f.b.BeginPlanning(context.Background())

	assert.Equal(t, 8, f.warden.Attack())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture)
		plan  func(f *fixture) action.Plan
		want  error
	}{
		{
			name: "placeholder",
			plan: func(*fixture) action.Plan { return action.Empty(0, unit.RoleSupport) },
		},
		{
			name: "attack enemy",
			plan: func(f *fixture) action.Plan { return attack(f.warden, f.archer, 0) },
		},
		{
			name: "attack ally",
			plan: func(f *fixture) action.Plan { return attack(f.warden, f.marshal, 0) },
			want: ErrIllegalTarget,
		},
		{
			name: "skill in range",
			plan: func(f *fixture) action.Plan { return cast(f.warden, f.archer, "strike", 0) },
		},
		{
			name: "skill out of range",
			plan: func(f *fixture) action.Plan { return cast(f.marshal, f.archer, "strike", 0) },
			want: ErrOutOfRange,
		},
		{
			name: "unlimited range",
			plan: func(f *fixture) action.Plan { return cast(f.marshal, f.archer, "poison", 0) },
		},
		{
			name: "unknown skill",
			plan: func(f *fixture) action.Plan { return cast(f.warden, f.archer, "snipe", 0) },
			want: ErrIllegalTarget,
		},
		{
			name: "passive skill",
			plan: func(f *fixture) action.Plan { return cast(f.marshal, nil, "banner", 0) },
			want: ErrIllegalTarget,
		},
		{
			name: "commander skill by vanguard",
			plan: func(f *fixture) action.Plan { return cast(f.warden, nil, "rally", 0) },
			want: ErrRoleMismatch,
		},
		{
			name: "plan for another role",
			plan: func(f *fixture) action.Plan {
				return action.NewSkill(f.warden, f.archer, testSkills["strike"], 0, unit.RoleStriker)
			},
			want: ErrRoleMismatch,
		},
		{
			name:  "one-time skill spent",
			setup: func(f *fixture) { f.marshal.MarkSkillUsed("rally") },
			plan:  func(f *fixture) action.Plan { return cast(f.marshal, nil, "rally", 0) },
			want:  ErrSkillSpent,
		},
		{
			name:  "insufficient stamina",
			setup: func(f *fixture) { f.warden.SpendStamina(5) },
			plan:  func(f *fixture) action.Plan { return cast(f.warden, f.archer, "strike", 0) },
			want:  ErrInsufficientStamina,
		},
		{
			name:  "stunned source",
			setup: func(f *fixture) { f.warden.Buffs().Apply(buff.Definition{Kind: buff.Stun, Magnitude: 1, Duration: 1}, nil) },
			plan:  func(f *fixture) action.Plan { return attack(f.warden, f.archer, 0) },
			want:  ErrSourceUnavailable,
		},
		{
			name:  "defeated source",
			setup: func(f *fixture) { f.archer.LoseLife(100) },
			plan:  func(f *fixture) action.Plan { return attack(f.archer, f.warden, 0) },
			want:  ErrSourceUnavailable,
		},
		{
			name: "exchange on own side",
			plan: func(f *fixture) action.Plan {
				return action.NewAtPosition(f.warden, world.Position{Col: 0, Row: 0}, action.KindExchange, 0, f.warden.Role())
			},
		},
		{
			name: "exchange onto enemy side",
			plan: func(f *fixture) action.Plan {
				return action.NewAtPosition(f.warden, world.Position{Col: 4, Row: 0}, action.KindExchange, 0, f.warden.Role())
			},
			want: ErrIllegalTarget,
		},
		{
			name: "item plan without item",
			plan: func(f *fixture) action.Plan {
				return action.NewUntargeted(f.warden, action.KindItem, 0, f.warden.Role())
			},
			want: ErrIllegalTarget,
		},
		{
			name: "rest",
			plan: func(f *fixture) action.Plan {
				return action.NewUntargeted(f.warden, action.KindRest, 0, f.warden.Role())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.b.BeginPlanning(context.Background())
			if tt.setup != nil {
				tt.setup(f)
			}

			err := f.b.Validate(tt.plan(f))

			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestDeclare(t *testing.T) {
	f := newFixture(t)
	q := action.NewQueue()

	assert.ErrorIs(t, f.b.Declare(q, cast(f.warden, f.archer, "strike", 0)), ErrNotPlanning)

	f.b.BeginPlanning(context.Background())
	assert.ErrorIs(t, f.b.Declare(nil, cast(f.warden, f.archer, "strike", 0)), ErrNoQueue)

	for phase := 0; phase < 3; phase++ {
		require.NoError(t, f.b.Declare(q, cast(f.warden, f.archer, "strike", phase)))
	}
	err := f.b.Declare(q, cast(f.warden, f.archer, "strike", 3))
	assert.ErrorIs(t, err, ErrInsufficientStamina, "stamina committed by queued plans counts")
	assert.Equal(t, 3, q.Len())

	require.NoError(t, f.b.Declare(q, cast(f.marshal, nil, "rally", 0)))
	assert.ErrorIs(t, f.b.Declare(q, cast(f.marshal, nil, "rally", 1)), ErrSkillSpent)

	q.RemoveSource("warden")
	assert.NoError(t, f.b.Declare(q, cast(f.warden, f.archer, "strike", 0)))
}

func TestResolveTurnOrdersByPhaseThenSpeed(t *testing.T) {
	f := newFixture(t)
	f.b.BeginPlanning(context.Background())
	q := action.NewQueue()
	require.NoError(t, f.b.Declare(q, attack(f.sentry, f.warden, 0)))
	require.NoError(t, f.b.Declare(q, attack(f.archer, f.warden, 1)))
	require.NoError(t, f.b.Declare(q, attack(f.warden, f.archer, 0)))

	outcome := f.b.ResolveTurn(context.Background(), q)

	assert.Equal(t, OutcomeOngoing, outcome)
	assert.Equal(t, []string{
		"Warden attacks Archer for 8 damage",
		"Sentry attacks Warden for 2 damage",
		"Archer attacks Warden for 4 damage",
	}, messagesContaining(f.log, " attacks "))
	assert.Equal(t, 22, f.archer.Life())
	assert.Equal(t, 34, f.warden.Life())
}

func TestResolveDefendAndRest(t *testing.T) {
	f := newFixture(t)
	f.b.BeginPlanning(context.Background())
	f.warden.SpendStamina(4)
	q := action.NewQueue()
	q.Add(action.NewUntargeted(f.warden, action.KindDefend, 0, f.warden.Role()))
	q.Add(attack(f.archer, f.warden, 1))
	q.Add(action.NewUntargeted(f.warden, action.KindRest, 2, f.warden.Role()))

	f.b.ResolveTurn(context.Background(), q)

	assert.Equal(t, 39, f.warden.Life(), "guard doubles defense: max(1, 9-10)")
	assert.Equal(t, 5, f.warden.Stamina(), "rest restores 3")
	assert.Equal(t, 5, f.warden.Defense(), "guard wears off at the end of the turn")
}

func TestResolveSkipsStunnedSource(t *testing.T) {
	f := newFixture(t)
	f.b.BeginPlanning(context.Background())
	q := action.NewQueue()
	require.NoError(t, f.b.Declare(q, cast(f.warden, f.archer, "bash", 0)))
	require.NoError(t, f.b.Declare(q, attack(f.archer, f.warden, 1)))

	f.b.ResolveTurn(context.Background(), q)

	assert.Equal(t, 40, f.warden.Life())
	assert.Contains(t, f.log.Messages(), "Archer is stunned and cannot act")
	assert.Equal(t, 4, f.warden.Stamina())

	f.b.BeginPlanning(context.Background())
	assert.ErrorIs(t, f.b.Validate(attack(f.archer, f.warden, 0)), ErrSourceUnavailable,
		"a two-turn stun still holds on the next planning phase")
}

func TestResolveSkillSpendsStaminaAndOneTimeUse(t *testing.T) {
	f := newFixture(t)
	f.b.BeginPlanning(context.Background())
	q := action.NewQueue()
	require.NoError(t, f.b.Declare(q, cast(f.marshal, nil, "rally", 0)))
	require.NoError(t, f.b.Declare(q, attack(f.archer, f.warden, 1)))

	f.b.ResolveTurn(context.Background(), q)

	assert.Equal(t, 6, f.marshal.Stamina())
	assert.True(t, f.marshal.SkillUsed("rally"))
	assert.Equal(t, 40, f.warden.Life(), "rally shield absorbs the attack")
	assert.Equal(t, 6.0, f.warden.Shield())
	assert.Equal(t, 10.0, f.marshal.Shield())
	assert.Zero(t, f.archer.Shield())

	f.b.BeginPlanning(context.Background())
	assert.Zero(t, f.marshal.Shield())
	assert.ErrorIs(t, f.b.Validate(cast(f.marshal, nil, "rally", 0)), ErrSkillSpent)
}

func TestResolveSkillRecheckedAtResolution(t *testing.T) {
	f := newFixture(t)
	f.b.BeginPlanning(context.Background())
	q := action.NewQueue()
	require.NoError(t, f.b.Declare(q, cast(f.archer, f.warden, "snipe", 0)))
	f.archer.SpendStamina(7)

	f.b.ResolveTurn(context.Background(), q)

	assert.Equal(t, 40, f.warden.Life())
	assert.Equal(t, 1, f.archer.Stamina())
	assert.NotEmpty(t, messagesContaining(f.log, "Archer cannot act"))
}

func TestResolveExchange(t *testing.T) {
	f := newFixture(t)
	f.b.BeginPlanning(context.Background())
	q := action.NewQueue()
	corner := world.Position{Col: 0, Row: 0}
	require.NoError(t, f.b.Declare(q, action.NewAtPosition(f.warden, corner, action.KindExchange, 0, f.warden.Role())))
	require.NoError(t, f.b.Declare(q, action.NewAtPosition(f.marshal, corner, action.KindExchange, 1, f.marshal.Role())))

	f.b.ResolveTurn(context.Background(), q)

	field := f.b.Field()
	assert.Equal(t, corner, f.marshal.Position())
	assert.Equal(t, world.Position{Col: 1, Row: 1}, f.warden.Position())
	assert.Equal(t, "marshal", field.At(corner))
	assert.Equal(t, "warden", field.At(world.Position{Col: 1, Row: 1}))
	assert.Empty(t, field.At(world.Position{Col: 2, Row: 0}))
	assert.Equal(t, unit.RoleVanguard, f.marshal.Role(), "swapping units trade roles")
	assert.Equal(t, unit.RoleCommander, f.warden.Role())

	snap, ok := f.b.LatestSnapshot()
	require.True(t, ok)
	e, _ := snap.Find("marshal")
	assert.Equal(t, corner, e.Position, "snapshot taken after resolution")
}

func TestExchangeTradesRolesBetweenSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.b.BeginPlanning(ctx)
	before, ok := f.b.LatestSnapshot()
	require.True(t, ok)

	q := action.NewQueue()
	require.NoError(t, f.b.Declare(q, action.NewAtPosition(f.warden, f.marshal.Position(), action.KindExchange, 0, f.warden.Role())))
	f.b.ResolveTurn(ctx, q)

	assert.Equal(t, world.Position{Col: 1, Row: 1}, f.warden.Position())
	assert.Equal(t, world.Position{Col: 2, Row: 0}, f.marshal.Position())
	assert.Equal(t, unit.RoleCommander, f.warden.Role())
	assert.Equal(t, unit.RoleVanguard, f.marshal.Role())
	assert.NotEmpty(t, messagesContaining(f.log, "Warden takes the Commander role"))

	after, _ := f.b.LatestSnapshot()
	e, _ := after.Find("warden")
	assert.Equal(t, unit.RoleCommander, e.Role)

	// The pre-exchange snapshot still previews the old roles over the new state.
	p := preview.Project(f.b.LiveUnits(), &before, nil)
	v, ok := p.View("warden")
	require.True(t, ok)
	assert.Equal(t, unit.RoleVanguard, v.Role)
	assert.Equal(t, world.Position{Col: 2, Row: 0}, v.Position)
	assert.True(t, v.Previewed)

	// Commander passives follow the role, not the unit.
	f.b.BeginPlanning(ctx)
	assert.Zero(t, f.warden.BuffValue(buff.AttackValueUp))
	assert.Zero(t, f.marshal.BuffValue(buff.AttackValueUp))
}

func TestResolveTurnWithoutQueue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.b.BeginPlanning(ctx)
	f.sentry.Buffs().Apply(buff.Definition{Kind: buff.DamageOverTime, Magnitude: 3, Duration: 2}, f.marshal)

	var outcome Outcome
	require.NotPanics(t, func() { outcome = f.b.ResolveTurn(ctx, nil) })

	assert.Equal(t, OutcomeOngoing, outcome)
	assert.Equal(t, 1, f.b.Turn())
	assert.Equal(t, 42, f.sentry.Life(), "buffs still tick on an empty turn")
	snap, ok := f.b.LatestSnapshot()
	require.True(t, ok)
	assert.Equal(t, 1, snap.Turn)
}

func TestResolveTurnTicksBuffsAndAdvances(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.b.BeginPlanning(ctx)
	q := action.NewQueue()
	require.NoError(t, f.b.Declare(q, cast(f.marshal, f.sentry, "poison", 0)))

	f.b.ResolveTurn(ctx, q)
	assert.Equal(t, 42, f.sentry.Life())
	assert.Equal(t, 1, f.b.Turn())

	f.b.BeginPlanning(ctx)
	f.b.ResolveTurn(ctx, action.NewQueue())
	assert.Equal(t, 39, f.sentry.Life(), "damage over time fires on its expiring tick")
	assert.False(t, f.sentry.HasBuff(buff.DamageOverTime))

	f.b.BeginPlanning(ctx)
	f.b.ResolveTurn(ctx, action.NewQueue())
	assert.Equal(t, 39, f.sentry.Life())
	assert.Equal(t, 3, f.b.Turn())

	snap, ok := f.b.LatestSnapshot()
	require.True(t, ok)
	assert.Equal(t, 3, snap.Turn)
	e, _ := snap.Find("marshal")
	assert.Equal(t, 9, e.Stamina)
}

func TestResolveTurnVictory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.b.BeginPlanning(ctx)
	f.archer.LoseLife(29)
	f.sentry.LoseLife(44)
	q := action.NewQueue()
	require.NoError(t, f.b.Declare(q, attack(f.warden, f.archer, 0)))
	require.NoError(t, f.b.Declare(q, cast(f.marshal, f.sentry, "strike", 0)))

	outcome := f.b.ResolveTurn(ctx, q)

	assert.Equal(t, OutcomeLeftWins, outcome)
	assert.Equal(t, OutcomeLeftWins, f.b.Outcome())
	assert.Equal(t, PhaseFinished, f.b.Phase())
	assert.Equal(t, "Victory for the left side!", f.log.Last())
	assert.False(t, f.archer.Position().IsValid(), "fallen units leave the field")
	assert.Empty(t, f.b.Field().At(world.Position{Col: 3, Row: 0}))
	assert.Len(t, f.b.LiveUnits(), 2)

	f.b.BeginPlanning(ctx)
	assert.ErrorIs(t, f.b.Declare(action.NewQueue(), attack(f.warden, f.archer, 0)), ErrNotPlanning)
	assert.Equal(t, OutcomeLeftWins, f.b.ResolveTurn(ctx, action.NewQueue()))
}

func TestPreviewReadsBattleSnapshot(t *testing.T) {
	f := newFixture(t)
	sim := preview.NewSimulator(f.b, f.b, f.log)

	sim.ShowTemporaryStaminaPreview(f.warden, 2)
	assert.Empty(t, sim.Projection().Views, "no snapshot before planning")

	f.b.BeginPlanning(context.Background())
	plan := cast(f.warden, f.archer, "strike", 0)
	sim.ShowTemporaryStaminaPreview(plan.Source(), plan.StaminaCost())

	v, ok := sim.Projection().View("warden")
	require.True(t, ok)
	assert.Equal(t, 4, v.Stamina)
	assert.Equal(t, 6, f.warden.Stamina())

	sim.ClearTemporaryPreviews()
	v, _ = sim.Projection().View("warden")
	assert.Equal(t, 6, v.Stamina)
}
