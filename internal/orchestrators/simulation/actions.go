package simulation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/cultivation-sim/internal/engine/progression"
	"github.com/KirkDiggler/cultivation-sim/internal/entities"
	"github.com/KirkDiggler/cultivation-sim/internal/errors"
	"github.com/KirkDiggler/cultivation-sim/internal/journal"
)

// act runs fn against the loaded player under the lock and publishes what
// it collected afterwards.
func (o *orchestrator) act(ctx context.Context, fn func(p *entities.Player) []notice) error {
	o.mu.Lock()
	if o.player == nil {
		o.mu.Unlock()
		return errors.FailedPrecondition(errNotLoaded)
	}
	notices := fn(o.player)
	o.mu.Unlock()

	o.publish(ctx, notices)
	return nil
}

// outcome runs a simple action and saves when it went through
func (o *orchestrator) outcome(ctx context.Context, fn func(p *entities.Player) progression.Outcome) (*OutcomeOutput, error) {
	out := &OutcomeOutput{}
	err := o.act(ctx, func(p *entities.Player) []notice {
		out.Outcome = fn(p)
		if !out.Outcome.Success {
			return nil
		}
		o.saveAsyncLocked()
		return []notice{logNotice("%s", capitalize(out.Outcome.Reason))}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (o *orchestrator) Breakthrough(ctx context.Context, _ *BreakthroughInput) (*BreakthroughOutput, error) {
	out := &BreakthroughOutput{}
	err := o.act(ctx, func(p *entities.Player) []notice {
		out.Result = o.ledger.Breakthrough(p)
		out.Realm = p.Realm
		if out.Result.Transition == progression.TransitionNone {
			return nil
		}
		o.saveAsyncLocked()
		return []notice{{
			eventType: journal.EventBreakthrough,
			message:   capitalize(out.Result.Reason),
			fields: map[string]any{
				"transition": string(out.Result.Transition),
				"tier":       p.Realm.Tier,
				"level":      p.Realm.Level,
			},
		}}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (o *orchestrator) SellEquipment(ctx context.Context, input *SellEquipmentInput) (*SellOutput, error) {
	if input == nil || input.EquipmentID == "" {
		return nil, errors.InvalidArgument("equipment ID is required")
	}
	return o.sell(ctx, func(p *entities.Player) progression.SaleResult {
		return o.ledger.SellEquipment(p, input.EquipmentID)
	})
}

func (o *orchestrator) SellSkill(ctx context.Context, input *SellSkillInput) (*SellOutput, error) {
	if input == nil || input.SkillID == "" {
		return nil, errors.InvalidArgument("skill ID is required")
	}
	return o.sell(ctx, func(p *entities.Player) progression.SaleResult {
		return o.ledger.SellSkill(p, input.SkillID)
	})
}

func (o *orchestrator) sell(ctx context.Context, fn func(p *entities.Player) progression.SaleResult) (*SellOutput, error) {
	out := &SellOutput{}
	err := o.act(ctx, func(p *entities.Player) []notice {
		out.Result = fn(p)
		out.Currency = p.Resources.Currency
		if !out.Result.Success {
			return nil
		}
		o.saveAsyncLocked()
		return []notice{logNotice("%s", capitalize(out.Result.Reason))}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (o *orchestrator) Enhance(ctx context.Context, input *EnhanceInput) (*EnhanceOutput, error) {
	if input == nil || input.EquipmentID == "" {
		return nil, errors.InvalidArgument("equipment ID is required")
	}

	out := &EnhanceOutput{}
	err := o.act(ctx, func(p *entities.Player) []notice {
		out.Result = o.ledger.Enhance(p, input.EquipmentID)
		if eq, ok := p.FindEquipment(input.EquipmentID); ok {
			out.Next = o.ledger.EnhancePreview(eq)
		}
		if !out.Result.Attempted {
			return nil
		}
		o.saveAsyncLocked()
		return []notice{{
			eventType: journal.EventEnhance,
			message:   capitalize(out.Result.Reason),
			fields: map[string]any{
				"equipment_id": input.EquipmentID,
				"success":      out.Result.Success,
				"level":        out.Result.Level,
				"downgraded":   out.Result.Downgraded,
			},
		}}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (o *orchestrator) EnhancePreview(_ context.Context, input *EnhancePreviewInput) (*EnhancePreviewOutput, error) {
	if input == nil || input.EquipmentID == "" {
		return nil, errors.InvalidArgument("equipment ID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player == nil {
		return nil, errors.FailedPrecondition(errNotLoaded)
	}
	eq, ok := o.player.FindEquipment(input.EquipmentID)
	if !ok {
		return nil, errors.NotFoundf("equipment %s not found", input.EquipmentID)
	}

	return &EnhancePreviewOutput{
		Equipment: eq.Clone(),
		Quote:     o.ledger.EnhancePreview(eq),
		SellPrice: o.ledger.EquipmentPrice(eq),
	}, nil
}

func (o *orchestrator) DropRates(_ context.Context, input *DropRatesInput) (*DropRatesOutput, error) {
	o.mu.Lock()
	if o.player == nil {
		o.mu.Unlock()
		return nil, errors.FailedPrecondition(errNotLoaded)
	}
	index := o.player.Battle.MapIndex
	o.mu.Unlock()

	if input != nil && input.MapIndex != nil {
		index = *input.MapIndex
	}
	m, ok := o.game.Map(index)
	if !ok {
		return nil, errors.InvalidArgumentf("unknown map %d", index)
	}

	out := &DropRatesOutput{MapIndex: index, Map: m}
	for _, monster := range o.game.MonstersOn(index) {
		out.Monsters = append(out.Monsters, MonsterDrops{
			Monster: monster,
			Drops:   progression.DropRates(monster),
		})
	}
	return out, nil
}

func (o *orchestrator) ApplyOffline(ctx context.Context, _ *ApplyOfflineInput) (*ApplyOfflineOutput, error) {
	out := &ApplyOfflineOutput{}
	err := o.act(ctx, func(p *entities.Player) []notice {
		out.Projection = o.projector.Apply(p, o.clock.Now())
		if out.Projection.Empty() {
			return nil
		}
		o.saveAsyncLocked()
		return []notice{{
			eventType: journal.EventOfflineSummary,
			message: fmt.Sprintf("Offline for %s: +%d cultivation, +%d currency",
				out.Projection.Elapsed.Round(time.Second), out.Projection.Cultivation, out.Projection.Currency),
			fields: map[string]any{
				"elapsed":     out.Projection.Elapsed,
				"cultivation": out.Projection.Cultivation,
				"currency":    out.Projection.Currency,
			},
		}}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (o *orchestrator) Equip(ctx context.Context, input *EquipInput) (*OutcomeOutput, error) {
	if input == nil || input.EquipmentID == "" {
		return nil, errors.InvalidArgument("equipment ID is required")
	}
	return o.outcome(ctx, func(p *entities.Player) progression.Outcome {
		return o.ledger.Equip(p, input.EquipmentID)
	})
}

func (o *orchestrator) Unequip(ctx context.Context, input *UnequipInput) (*OutcomeOutput, error) {
	if input == nil || !input.Slot.Valid() {
		return nil, errors.InvalidArgument("a valid slot is required")
	}
	return o.outcome(ctx, func(p *entities.Player) progression.Outcome {
		return o.ledger.Unequip(p, input.Slot)
	})
}

func (o *orchestrator) LearnSkill(ctx context.Context, input *LearnSkillInput) (*OutcomeOutput, error) {
	if input == nil || input.SkillID == "" {
		return nil, errors.InvalidArgument("skill ID is required")
	}
	return o.outcome(ctx, func(p *entities.Player) progression.Outcome {
		return o.ledger.LearnSkill(p, input.SkillID)
	})
}

func (o *orchestrator) SelectMap(ctx context.Context, input *SelectMapInput) (*OutcomeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.outcome(ctx, func(p *entities.Player) progression.Outcome {
		return o.ledger.SelectMap(p, input.MapIndex)
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
