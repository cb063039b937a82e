package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/collabboard/internal/board"
)

func TestProjectDrag(t *testing.T) {
	f := newFixture(t)
	f.s.SetSelectedIDs(f.note, f.arrow)
	f.down(t, client(150, 150), Target{Kind: TargetObject, ID: f.note}, ModNone)
	f.c.PointerMove(PointerMove{PointerID: 1, Client: client(160, 155)})

	objs := f.c.Objects()
	require.Len(t, objs, 3)
	assert.Equal(t, 110.0, objs[0].Base().X)
	assert.Equal(t, 400.0, objs[1].Base().X)
	a := objs[2].(board.Arrow)
	assert.Equal(t, 110.0, a.X)
	assert.Equal(t, 290.0, a.X2)
	assert.Equal(t, 475.0, a.Y2)

	// Stored board is untouched.
	assert.Equal(t, 100.0, f.object(t, f.note).Base().X)
}

func TestProjectResize(t *testing.T) {
	f := newFixture(t)
	f.s.SetSelectedIDs(f.note)
	f.down(t, client(310, 250), Target{Kind: TargetResizeHandle, ID: f.note}, ModNone)
	f.c.PointerMove(PointerMove{PointerID: 1, Client: client(350, 250)})

	n := f.c.Project(f.object(t, f.note)).(board.Note)
	assert.Equal(t, 260.0, n.Width)
	assert.Equal(t, 160.0, n.Height)

	r := f.c.Project(f.object(t, f.rect))
	assert.Equal(t, f.object(t, f.rect), r)
}

func TestResolve(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, Target{Kind: TargetCanvas}, f.c.Resolve(client(800, 800)))
	assert.Equal(t, Target{Kind: TargetObject, ID: f.note}, f.c.Resolve(client(120, 120)))
	assert.Equal(t, Target{Kind: TargetObject, ID: f.arrow}, f.c.Resolve(client(200, 395)))

	// The handle is only live on a selected note.
	assert.Equal(t, Target{Kind: TargetObject, ID: f.note}, f.c.Resolve(client(310, 250)))
	f.s.SetSelectedIDs(f.note)
	assert.Equal(t, Target{Kind: TargetResizeHandle, ID: f.note}, f.c.Resolve(client(310, 250)))
}
