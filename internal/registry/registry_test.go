package registry

import (
	"testing"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register("zz-stub", func() Game { return &stubGame{id: "zz-stub"} })

	if !Exists("zz-stub") {
		t.Fatal("registered game should exist")
	}

	g, err := Create("zz-stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz-stub" {
		t.Errorf("ID() = %q", g.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz-stub" {
			found = info.Title == "Stub zz-stub"
		}
	}
	if !found {
		t.Error("List() should include the stub with its title")
	}
	if got := Title("zz-stub"); got != "Stub zz-stub" {
		t.Errorf("Title() = %q", got)
	}
	if got := Title("zz-missing"); got != "zz-missing" {
		t.Errorf("Title() of an unknown game = %q", got)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does-not-exist"); err == nil {
		t.Error("Create() of an unknown game should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-dup", func() Game { return &stubGame{id: "zz-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz-dup", func() Game { return &stubGame{id: "zz-dup"} })
}

func TestLookup(t *testing.T) {
	Register("zz-lookup", func() Game { return &stubGame{id: "zz-lookup"} })

	info, ok := Lookup("zz-lookup")
	if !ok || info != (GameInfo{ID: "zz-lookup", Title: "Stub zz-lookup"}) {
		t.Errorf("Lookup() = %+v, %v", info, ok)
	}
	if _, ok := Lookup("zz-nope"); ok {
		t.Error("Lookup() of an unknown game should fail")
	}
}

func TestRegisterMismatchedIDPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("factory building another id should panic")
		}
	}()
	Register("zz-alias", func() Game { return &stubGame{id: "zz-other"} })
}
