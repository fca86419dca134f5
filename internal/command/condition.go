package command

import "github.com/aio-labs/aio/internal/pins"

// Decision is the result of evaluating a delete condition.
type Decision struct {
	Proceed    bool
	UnknownPin bool
	Rule       string // name of the rule that skipped the delete, if any
	State      pins.State
}

// conditionRule skips a delete when its pin holds skipWhen.
type conditionRule struct {
	name     string
	pin      string
	skipWhen pins.State
}

// conditionRules is the decision table for known pins. The no-delete and
// always-delete rows react to opposite states and stay separate entries.
var conditionRules = []conditionRule{
	{name: "deploy-success", pin: pins.DeploySuccess, skipWhen: pins.Negative},
	{name: "no-delete", pin: pins.NoDelete, skipWhen: pins.Affirmative},
	{name: "always-delete", pin: pins.AlwaysDelete, skipWhen: pins.Negative},
}

// Evaluate decides whether a delete gated on pin may run. An empty pin always
// proceeds. A pin missing from table proceeds and is flagged UnknownPin. Known
// pins without a rule proceed.
func Evaluate(pin string, table pins.Table) Decision {
	if pin == "" {
		return Decision{Proceed: true}
	}
	state, ok := table.Lookup(pin)
	if !ok {
		return Decision{Proceed: true, UnknownPin: true}
	}
	pin = pins.Canonical(pin)
	for _, r := range conditionRules {
		if r.pin != pin {
			continue
		}
		if state == r.skipWhen {
			return Decision{Proceed: false, Rule: r.name, State: state}
		}
		break
	}
	return Decision{Proceed: true, State: state}
}
