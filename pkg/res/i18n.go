package res

import (
	"sync/atomic"

	"github.com/matzehuels/resloader/pkg/errors"
)

// i18nPolicy is the shared strict internationalization switch consulted by
// the view, menu and preference loaders. It may be toggled after
// initialization, so it is read atomically.
type i18nPolicy struct {
	strict atomic.Bool
}

// check rejects a literal value of a translatable attribute when strict
// mode is on. Empty values, references and theme references pass.
func (p *i18nPolicy) check(document, attr, value string) error {
	if p == nil || !p.strict.Load() {
		return nil
	}
	if value == "" || IsReference(value) || IsThemeReference(value) {
		return nil
	}
	return errors.I18nViolation(document, attr, value)
}

// checkNode applies check to every listed attribute of n and its descendants.
func (p *i18nPolicy) checkNode(document string, n *Node, attrs map[string]bool) error {
	return n.Walk(func(el *Node) error {
		for _, a := range el.Attrs {
			if !attrs[a.Name] {
				continue
			}
			if err := p.check(document, a.Name, a.Value); err != nil {
				return err
			}
		}
		return nil
	})
}
