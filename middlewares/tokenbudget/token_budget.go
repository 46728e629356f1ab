package tokenbudget

import (
	"context"

	mw "mudabbir/internal/middleware"
)

func init() {
	// Registered for the chain via middlewares/autoload.
	mw.Register(BudgetLimiter{})
}

// BudgetLimiter caps the backend's MaxTokens when Event.Context["token_budget"]
// carries a positive int. It keeps the smaller of the existing limit and the
// budget.
type BudgetLimiter struct{}

func (BudgetLimiter) ID() string    { return "token_budget" }
func (BudgetLimiter) Priority() int { return 90 }

func (BudgetLimiter) OnEvent(_ context.Context, e *mw.Event) (mw.Decision, error) {
	if e == nil || e.Name != mw.EventBeforeAgentRun {
		return mw.Decision{}, nil
	}
	budget, ok := e.Context[mw.CtxTokenBudget].(int)
	if !ok || budget <= 0 {
		return mw.Decision{}, nil
	}

	// Copy so the caller's params are not mutated behind its back.
	params := &mw.RunParams{}
	if e.Params != nil {
		*params = *e.Params
	}
	if params.MaxTokens != 0 && params.MaxTokens <= budget {
		return mw.Decision{}, nil
	}
	params.MaxTokens = budget
	return mw.Decision{
		OverrideParams: params,
		Reason:         "token_budget: capped MaxTokens",
	}, nil
}
