package plan

import (
	"github.com/google/uuid"
)

// Sink is the destination descriptor of a terminal output. The core treats
// the destination as opaque: an external source/sink resolver interprets it
// when the plan is compiled.
type Sink struct {
	// ID is the opaque sink identifier, also used as the branch-naming key.
	ID string `json:"id"`
	// Destination is resolved by the external source/sink resolver.
	Destination string `json:"destination"`
	// Params carries resolver-specific settings.
	Params map[string]any `json:"params,omitempty"`
	// Branch is the identifier of the branch the sink was registered on,
	// recorded during Write.
	Branch string `json:"branch,omitempty"`
}

// Trap is the error-destination descriptor of a branch. Failures of
// transforms executed inside the trap's branch, nested branches included,
// are routed to the destination by the execution engine. Transforms before
// entry or after exit are not covered.
type Trap struct {
	ID          string         `json:"id"`
	Destination string         `json:"destination"`
	Params      map[string]any `json:"params,omitempty"`
	Branch      string         `json:"branch,omitempty"`
}

// newBranchID mints a globally unique branch identifier so recursive branch
// entry/exit can never collide with a sibling or ancestor branch.
func newBranchID(label string) string {
	return label + "-" + uuid.NewString()
}

// Branch runs fn against an isolated, uniquely named section of the plan:
// the cursor is renamed into the section on entry and renamed again to a
// fresh anonymous construction point on exit, so subsequent operators
// attach after the branch rather than inside it. Entry and exit always pair
// up, nested branches included; fn may recursively open further branches as
// long as they fully nest.
func (p Plan) Branch(label string, fn func(Plan) (Plan, error)) (ret Plan, err error) {
	token := newBranchID(label)
	inner := p.enterBranch(token)
	defer func() {
		if err != nil {
			ret = Plan{}
			return
		}
		if ret.cursor == nil {
			err = NewBranchScopeError(token, "")
			return
		}
		ret, err = ret.exitBranch(token)
	}()
	ret, err = fn(inner)
	return
}

// Write finalizes the current line into a terminal output: it enters a
// branch named by the sink's identifier, appends the cursor to the tails,
// registers the sink and exits back to the main line.
func (p Plan) Write(sink Sink) (Plan, error) {
	return p.Branch(sink.ID, func(q Plan) (Plan, error) {
		sink.Branch = q.currentScope()
		q = q.addTail(q.cursor)
		q.log.V(1).Info("sink registered", "sink", sink.ID, "destination", sink.Destination)
		return q.registerSink(sink)
	})
}

// Trap registers an error destination for a branch and runs the
// continuation inside it. Every transform the continuation applies is
// covered by the trap until exit.
func (p Plan) Trap(trap Trap, fn func(Plan) (Plan, error)) (Plan, error) {
	return p.Branch(trap.ID, func(q Plan) (Plan, error) {
		trap.Branch = q.currentScope()
		q, err := q.registerTrap(trap)
		if err != nil {
			return Plan{}, err
		}
		q.log.V(1).Info("trap registered", "trap", trap.ID, "destination", trap.Destination)
		return fn(q)
	})
}

// enterBranch renames the cursor into an isolated construction point named
// by the branch identifier and pushes the identifier on the scope stack.
func (p Plan) enterBranch(token string) Plan {
	q := p
	q.scopes = append(append([]string{}, p.scopes...), token)
	q.cursor = q.newNode(KindBranch, token, nil, p.cursor)
	q.log.V(2).Info("branch entered", "branch", token)
	return q
}

// exitBranch pops the branch scope and renames the cursor to a fresh
// anonymous construction point on the enclosing line.
func (p Plan) exitBranch(token string) (Plan, error) {
	if p.currentScope() != token {
		return Plan{}, NewBranchScopeError(token, p.currentScope())
	}
	q := p
	q.scopes = p.scopes[:len(p.scopes)-1]
	q.cursor = q.newNode(KindRejoin, newBranchID("rejoin"), nil, p.cursor)
	q.log.V(2).Info("branch exited", "branch", token)
	return q, nil
}

// currentScope returns the innermost branch identifier, or "".
func (p Plan) currentScope() string {
	if len(p.scopes) == 0 {
		return ""
	}
	return p.scopes[len(p.scopes)-1]
}
