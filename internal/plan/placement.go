package plan

import (
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"wrapper-generator/internal/diagnostic"
	"wrapper-generator/internal/model"
	"wrapper-generator/internal/naming"
)

// Placement keeps qualified class names unique after synthesis.
type Placement struct {
	m         *model.Model
	log       *zap.Logger
	result    *Result
	maxSuffix int
}

// NewPlacement creates a placement resolver recording into result.
func NewPlacement(m *model.Model, log *zap.Logger, result *Result, maxSuffix int) *Placement {
	if log == nil {
		log = zap.NewNop()
	}

	return &Placement{m: m, log: log, result: result, maxSuffix: maxSuffix}
}

// Resolve walks the classes in model order; the first class seen with a
// qualified name keeps it and later classes with the same name, original or
// synthesized, are renamed.
func (pl *Placement) Resolve() error {
	seen := make(map[string]*model.Class, len(pl.m.Classes))

	for _, c := range pl.m.Classes {
		name := c.QualifiedName()

		if _, taken := seen[name]; !taken {
			seen[name] = c
			continue
		}

		if !c.IsWrapper() {
			pl.result.Diagnostics.AddWarning(diagnostic.CodeDuplicateClass,
				"class name declared more than once", name, "")
		}

		err := pl.rename(c)
		if err != nil {
			return err
		}

		seen[c.QualifiedName()] = c
	}

	return nil
}

// rename gives class w the smallest free suffixed name and updates every
// place that refers to it by name. Episode entries follow wrappers only: an
// original class shares its old name with the class that keeps it.
func (pl *Placement) rename(w *model.Class) error {
	oldQualified := w.QualifiedName()
	oldName := w.ID.Name

	taken := lo.Filter(pl.m.ScopeNames(w.ID.Package, w.Outer), func(n string, _ int) bool { return n != oldName })
	scopeName := w.ID.Package
	if w.Outer != nil {
		scopeName = w.Outer.QualifiedName()
	}

	scope := naming.NewScope(scopeName, append(taken, oldName), pl.maxSuffix)

	newName, err := scope.Claim(oldName)
	if err != nil {
		return fmt.Errorf("failed to place %s: %w", oldQualified, err)
	}

	pl.m.RenameClass(w, newName)
	if w.IsWrapper() {
		pl.m.RenameEpisode(oldQualified, w.QualifiedName())
	}

	if w.ValueObject != nil {
		pl.m.RenameFactoryMethod(w.ID.Package, oldName, newName)
		pl.m.UpdateClass(w, func(c *model.Class) {
			c.ValueObject = &model.ValueObject{
				Interface: newName,
				Impl:      c.ValueObject.ImplFor(oldName, newName),
			}
		})
	}

	for _, p := range pl.m.Properties() {
		if p.Type.Class == w {
			pl.m.UpdateProperty(p, func(p *model.Property) {
				p.Type.Name = newName
				p.ValueObject = w.ValueObject
			})
		}
	}

	pl.result.Summary.AddRename(oldQualified, w.QualifiedName(), "duplicate qualified name")
	pl.result.Diagnostics.AddWarning(diagnostic.CodeRenamed,
		fmt.Sprintf("%s renamed to %s: duplicate qualified name", oldQualified, w.QualifiedName()), w.QualifiedName(), "")

	pl.log.Debug("renamed class",
		zap.String("from", oldQualified),
		zap.String("to", w.QualifiedName()),
	)

	return nil
}
