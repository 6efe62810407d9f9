package wiring_test

import (
	"testing"

	"github.com/grindlemire/graft"
)

// TestGraftDependencies checks the adapter and app nodes against their
// declared dependencies: every graft.Dep call must be declared, and every
// declaration must be used.
func TestGraftDependencies(t *testing.T) {
	graft.AssertDepsValid(t, "../../internal")
}
