package missions

import (
	"fmt"
	"strings"

	"github.com/apex-intel/apex/internal/authority"
)

// minJustificationLen is the shortest accepted pivot justification
// after trimming whitespace.
const minJustificationLen = 10

// PivotDecision is the outcome of an admitted pivot check: the
// resolved lanes and the policy rule authorizing the transition.
type PivotDecision struct {
	Current authority.Authority
	Target  authority.Authority
	Rule    authority.PivotRule
}

// CheckPivot runs the pivot guard chain without touching storage. The
// checks run in a fixed order so each rejection names its specific
// reason: unknown current lane, unknown target lane, no-op transition,
// insufficient justification, unmodeled transition, then a transition
// the policy explicitly blocks.
func CheckPivot(currentAuthority, targetAuthority, justification string) (*PivotDecision, error) {
	current, ok := authority.Parse(currentAuthority)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAuthority, currentAuthority)
	}

	target, ok := authority.Parse(targetAuthority)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAuthority, targetAuthority)
	}

	if target == current {
		return nil, fmt.Errorf("%w: %s", ErrPivotNoOp, target)
	}

	if len(strings.TrimSpace(justification)) < minJustificationLen {
		return nil, ErrJustificationTooShort
	}

	rule, ok := authority.PivotRuleFor(current, target)
	if !ok {
		return nil, fmt.Errorf("%w: %s → %s", ErrNoPivotRule, current, target)
	}
	if !rule.Allowed {
		return nil, fmt.Errorf("%w: %s", ErrPivotBlocked, strings.Join(rule.Conditions, " "))
	}

	return &PivotDecision{Current: current, Target: target, Rule: rule}, nil
}
