package simulation

import (
	"context"
	"fmt"
	"strings"

	"github.com/KirkDiggler/cultivation-sim/internal/engine/combat"
	"github.com/KirkDiggler/cultivation-sim/internal/engine/progression"
)

// notice is a journal entry collected under the lock and published after
// it is released, so bus handlers may call back into the service. An empty
// eventType is a plain battle log line.
type notice struct {
	eventType string
	message   string
	fields    map[string]any
}

func logNotice(format string, args ...any) notice {
	return notice{message: fmt.Sprintf(format, args...)}
}

func (o *orchestrator) publish(ctx context.Context, notices []notice) {
	for _, n := range notices {
		if n.eventType == "" {
			o.journal.Log(ctx, "%s", n.message)
			continue
		}
		o.journal.Publish(ctx, n.eventType, n.message, n.fields)
	}
}

func (o *orchestrator) meditationTick(epoch uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.epoch != epoch || o.player == nil {
		return
	}
	o.ledger.Meditate(o.player)
}

func (o *orchestrator) battleTick(epoch uint64) {
	o.mu.Lock()
	notices := o.battleLocked(epoch)
	o.mu.Unlock()

	o.publish(context.Background(), notices)
}

// battleLocked fights one encounter on the current map
func (o *orchestrator) battleLocked(epoch uint64) []notice {
	p := o.player
	if o.epoch != epoch || p == nil || p.Attributes.HP <= 0 {
		return nil
	}

	monster := o.resolver.PickMonster(o.game.MonstersOn(p.Battle.MapIndex))
	if monster == nil {
		return nil
	}

	res := o.resolver.Resolve(&combat.ResolveInput{
		Player:  p.TotalAttributes(),
		Skills:  p.Skills.Active,
		Monster: monster,
	})
	progression.RecordBattle(p, res)

	notices := make([]notice, 0, len(res.Log)+2)
	for _, line := range res.Log {
		notices = append(notices, logNotice("%s", line))
	}

	switch res.Outcome {
	case combat.OutcomeWin:
		reward := o.ledger.GenerateReward(monster, p.Realm.Tier)
		applied := progression.ApplyReward(p, reward)
		notices = append(notices, logNotice("%s", rewardLine(reward)))
		if dropped := applied.DroppedEquipment + applied.DroppedSkillBooks; dropped > 0 {
			notices = append(notices, logNotice("Inventory full, %d item(s) discarded", dropped))
		}
	case combat.OutcomeLoss:
		o.scheduleReviveLocked()
	}

	o.saveAsyncLocked()
	return notices
}

func rewardLine(r *progression.Reward) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Gained %d currency, %d experience", r.Currency, r.Experience)
	if r.Comprehension > 0 {
		fmt.Fprintf(&b, ", %d comprehension", r.Comprehension)
	}
	if r.EnhanceStones > 0 {
		fmt.Fprintf(&b, ", %d enhance stones", r.EnhanceStones)
	}
	for _, eq := range r.Equipment {
		fmt.Fprintf(&b, ", [%s]", eq.Name)
	}
	for _, book := range r.SkillBooks {
		fmt.Fprintf(&b, ", book [%s]", book.Name)
	}
	return b.String()
}

// scheduleReviveLocked arms the one-shot revive unless one is pending
func (o *orchestrator) scheduleReviveLocked() {
	if o.revive != nil {
		return
	}
	o.reviveSeq++
	seq := o.reviveSeq
	o.revive = o.sched.After(o.game.Combat.ReviveDelay, func() { o.reviveTick(seq) })
}

func (o *orchestrator) reviveTick(seq uint64) {
	o.mu.Lock()
	if seq != o.reviveSeq || o.revive == nil || o.player == nil {
		o.mu.Unlock()
		return
	}
	o.revive = nil
	progression.Revive(o.player)
	o.mu.Unlock()

	o.publish(context.Background(), []notice{logNotice("Revived")})
}
