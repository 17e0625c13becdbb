package application

// TransitionPolicy decides which status moves are allowed
type TransitionPolicy interface {
	Allows(from, to ApplicationStatus) bool
	Name() string
}

// PermissivePolicy allows any declared status from any status
type PermissivePolicy struct{}

func (PermissivePolicy) Allows(_, to ApplicationStatus) bool { return to.IsValid() }
func (PermissivePolicy) Name() string                        { return "permissive" }

// ForwardOnlyPolicy allows staying put or moving to a later stage. HIRED and
// REJECTED are terminal, and REJECTED is reachable from every open stage.
type ForwardOnlyPolicy struct{}

func (ForwardOnlyPolicy) Allows(from, to ApplicationStatus) bool {
	if !to.IsValid() {
		return false
	}
	if from == to {
		return true
	}
	if from.IsTerminal() {
		return false
	}
	return to.Order() > from.Order()
}

func (ForwardOnlyPolicy) Name() string { return "forward-only" }

// PolicyFor selects the policy by configuration
func PolicyFor(forwardOnly bool) TransitionPolicy {
	if forwardOnly {
		return ForwardOnlyPolicy{}
	}
	return PermissivePolicy{}
}
