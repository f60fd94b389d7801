package portal

import (
	"github.com/playground/spacesim/internal/component"
	"github.com/playground/spacesim/internal/core/ecs"
)

type moteBody struct{ p *Portal }

func (b *moteBody) Construct(at Point) ecs.EntityID {
	p := b.p
	id := p.world.CreateEntity()
	p.transforms.Set(id, &component.Transform{})
	p.visibility.Set(id, &component.Visibility{})
	p.motes.Set(id, &component.PortalMote{})
	b.Activate(id, at)
	return id
}

func (b *moteBody) Activate(id ecs.EntityID, at Point) {
	p := b.p
	tf := p.transforms.MustGet(id)
	tf.X, tf.Y = at.X, at.Y
	p.motes.MustGet(id).SinceTrail = 0
	p.visibility.MustGet(id).Visible = true
}

func (b *moteBody) Deactivate(id ecs.EntityID) {
	b.p.visibility.MustGet(id).Visible = false
}

type trailBody struct{ p *Portal }

func (b *trailBody) Construct(at Point) ecs.EntityID {
	p := b.p
	id := p.world.CreateEntity()
	p.transforms.Set(id, &component.Transform{})
	p.visibility.Set(id, &component.Visibility{})
	p.trails.Set(id, &component.Trail{})
	b.Activate(id, at)
	return id
}

func (b *trailBody) Activate(id ecs.EntityID, at Point) {
	p := b.p
	tf := p.transforms.MustGet(id)
	tf.X, tf.Y = at.X, at.Y
	p.trails.MustGet(id).Age = 0
	p.visibility.MustGet(id).Visible = true
}

func (b *trailBody) Deactivate(id ecs.EntityID) {
	b.p.visibility.MustGet(id).Visible = false
}
