package depict

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/jsamuelsen11/guise/internal/adapters/web/platform"
	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/component"
	"github.com/jsamuelsen11/guise/internal/domain/property"
)

// Renderer depicts the component tree of one frame for one session.
type Renderer struct {
	registry *Registry
	platform *platform.Platform
	root     component.Component
	basePath string
	indent   bool

	mu        sync.Mutex
	installed map[int64]*installation
	dirty     map[int64]component.Component
}

type installation struct {
	comp component.Component
	d    Depictor
	sub  *property.Subscription
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithBasePath sets the path relative resource URIs are resolved against.
func WithBasePath(p string) Option {
	return func(r *Renderer) { r.basePath = p }
}

// WithIndent formats markup one element per line.
func WithIndent(indent bool) Option {
	return func(r *Renderer) { r.indent = indent }
}

// NewRenderer returns a renderer for the tree rooted at root.
func NewRenderer(reg *Registry, p *platform.Platform, root component.Component, opts ...Option) *Renderer {
	r := &Renderer{
		registry:  reg,
		platform:  p,
		root:      root,
		basePath:  "/",
		installed: make(map[int64]*installation),
		dirty:     make(map[int64]component.Component),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) Root() component.Component     { return r.root }
func (r *Renderer) Platform() *platform.Platform { return r.platform }

// ResolveURI resolves a resource URI against the base path. Absolute paths
// and URIs with a scheme are returned unchanged.
func (r *Renderer) ResolveURI(uri string) string {
	if uri == "" || strings.HasPrefix(uri, "/") || strings.Contains(uri, "://") {
		return uri
	}
	return path.Join(r.basePath, uri)
}

// depictor returns the depictor of c, installing one on first use.
func (r *Renderer) depictor(c component.Component) (Depictor, error) {
	r.mu.Lock()
	inst, ok := r.installed[c.ID()]
	r.mu.Unlock()
	if ok {
		return inst.d, nil
	}

	f, err := r.registry.Lookup(c.Class())
	if err != nil {
		return nil, err
	}
	d := f()
	d.Install(r, c)
	inst = &installation{comp: c, d: d}
	inst.sub = c.Support().OnAny(func(property.Event) { r.markDirty(c) })

	r.mu.Lock()
	r.installed[c.ID()] = inst
	r.mu.Unlock()
	return d, nil
}

func (r *Renderer) markDirty(c component.Component) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dirty[c.ID()] = c
}

// DepictChild writes the markup of c into dc. Depictors call it for the
// components they contain.
func (r *Renderer) DepictChild(dc *Context, c component.Component) error {
	d, err := r.depictor(c)
	if err != nil {
		return err
	}
	return d.Depict(dc)
}

// RenderComponent returns the markup of c and its descendants.
func (r *Renderer) RenderComponent(c component.Component) (string, error) {
	dc := NewContext(r.indent)
	if err := r.DepictChild(dc, c); err != nil {
		return "", fmt.Errorf("depicting %s: %w", component.Path(c), err)
	}
	return dc.String(), nil
}

// TakeDirtyRoots returns the components that changed since the last call,
// reduced to the topmost ones still in the tree, and forgets them. Depicting
// the returned components brings the whole page up to date.
func (r *Renderer) TakeDirtyRoots() []component.Component {
	r.mu.Lock()
	dirty := r.dirty
	r.dirty = make(map[int64]component.Component)
	r.mu.Unlock()

	var roots []component.Component
	for _, c := range dirty {
		if component.Root(c) != r.root || hasDirtyAncestor(c, dirty) {
			continue
		}
		roots = append(roots, c)
	}
	slices.SortFunc(roots, func(a, b component.Component) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return roots
}

func hasDirtyAncestor(c component.Component, dirty map[int64]component.Component) bool {
	for p := c.Parent(); p != nil; p = p.Parent() {
		if _, ok := dirty[p.ID()]; ok {
			return true
		}
	}
	return false
}

// ClearDirty forgets every change, typically after a full page render.
func (r *Renderer) ClearDirty() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.dirty)
}

// Prune uninstalls the depictors of components no longer in the tree.
func (r *Renderer) Prune() int {
	r.mu.Lock()
	var gone []*installation
	for id, inst := range r.installed {
		if component.Root(inst.comp) != r.root {
			gone = append(gone, inst)
			delete(r.installed, id)
			delete(r.dirty, id)
		}
	}
	r.mu.Unlock()
	for _, inst := range gone {
		inst.sub.Unsubscribe()
		inst.d.Uninstall()
	}
	return len(gone)
}

// Close uninstalls every depictor.
func (r *Renderer) Close() {
	r.mu.Lock()
	all := r.installed
	r.installed = make(map[int64]*installation)
	r.mu.Unlock()
	for _, inst := range all {
		inst.sub.Unsubscribe()
		inst.d.Uninstall()
	}
}

// Installed reports the number of installed depictors.
func (r *Renderer) Installed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.installed)
}

// ProcessEvent delivers a browser event. Targeted events go to the depictor
// of their target; form events go to every depicted component of the page.
func (r *Renderer) ProcessEvent(ctx context.Context, ev platform.Event) error {
	if id := ev.Target(); id != 0 {
		c, ok := component.Find(r.root, id)
		if !ok {
			return fmt.Errorf("component %s: %w", platform.FormatDepictID(id), domain.ErrNotFound)
		}
		d, err := r.depictor(c)
		if err != nil {
			return err
		}
		return d.ProcessEvent(ctx, ev)
	}
	if _, ok := ev.(platform.FormEvent); !ok {
		return nil
	}

	var (
		errs   []error
		values []*installation
		acts   []*installation
	)
	walkDepicted(r.root, func(c component.Component) {
		d, err := r.depictor(c)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", component.Path(c), err))
			return
		}
		inst := &installation{comp: c, d: d}
		if _, ok := d.(actor); ok {
			acts = append(acts, inst)
		} else {
			values = append(values, inst)
		}
	})
	// Values are applied before any action runs against them.
	for _, inst := range append(values, acts...) {
		if err := inst.d.ProcessEvent(ctx, ev); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", component.Path(inst.comp), err))
		}
	}
	return errors.Join(errs...)
}

// actor is implemented by depictors whose form events trigger actions.
type actor interface{ acts() }

func (*buttonDepictor) acts()    {}
func (*tabDepictor) acts()       {}
func (*cardPanelDepictor) acts() {}
func (*tableDepictor) acts()     {}

// walkDepicted visits the components that appear on the page: displayed
// components, and of a card panel only the selected card.
func walkDepicted(c component.Component, fn func(component.Component)) {
	if !c.Displayed() {
		return
	}
	fn(c)
	if p, ok := c.(cardSelector); ok {
		if card := p.Selected(); card != nil {
			walkDepicted(card, fn)
		}
		return
	}
	if comp, ok := c.(component.Composite); ok {
		for _, child := range comp.Children() {
			walkDepicted(child, fn)
		}
	}
}
