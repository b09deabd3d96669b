package buildorder

import (
	"slices"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/node"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/pkgname"
)

// validateConstraints checks every package except the virtual top level and
// stops at the first package with an invalid or conflicting pin.
func validateConstraints(order *Order) error {
	for _, p := range order.packages {
		if p.IsTopLevel() {
			continue
		}
		if err := checkConstraintTargets(order, p); err != nil {
			return err
		}
		if err := walkConstraints(order, p); err != nil {
			return err
		}
	}
	return nil
}

// checkConstraintTargets validates the pins of every sealed edge of p, flavor
// option and flavor extension edges included. Owners are already defaulted.
func checkConstraintTargets(order *Order, p *OrderedPackage) error {
	for _, dep := range p.Dependencies {
		for _, sel := range dep.Constraints {
			owner, ok := order.index[sel.Owner]
			if !ok {
				return &ConstraintTargetError{Package: p.Name, Selection: sel, Unknown: "package"}
			}
			flavor, ok := owner.Package.Flavor(sel.Flavor)
			if !ok {
				return &ConstraintTargetError{Package: p.Name, Selection: sel, Unknown: "flavor"}
			}
			if !flavor.HasOption(sel.Option) {
				return &ConstraintTargetError{Package: p.Name, Selection: sel, Unknown: "option", ValidOptions: flavor.OptionNames()}
			}
		}
	}
	return nil
}

// pinRecord collects the pins on one flavor in the order they were met.
type pinRecord struct {
	flavor  model.FlavorID
	options []string
	pins    []tracedPin
}

// tracedPin is a pin together with the flavor options chosen on the way to
// it. Two pins reached through different options of one flavor can never be
// active in the same configuration.
type tracedPin struct {
	ConstraintPin
	via []node.FlavorTag
}

func (a tracedPin) compatible(b tracedPin) bool {
	for _, x := range a.via {
		for _, y := range b.via {
			if x.Flavor == y.Flavor && x.Option != y.Option {
				return false
			}
		}
	}
	return true
}

type walkFrame struct {
	pkg  *OrderedPackage
	next int
	// tag is the flavor option of the edge that entered this frame.
	tag *node.FlavorTag
}

// walkConstraints follows every dependency path below p, flavor option edges
// included, with an explicit stack and records each pin together with the
// path that reached it.
func walkConstraints(order *Order, p *OrderedPackage) error {
	var records []*pinRecord
	byFlavor := make(map[model.FlavorID]*pinRecord)
	record := func(sel model.FlavorSelection, pin tracedPin) {
		id := model.FlavorID{Owner: sel.Owner, Name: sel.Flavor}
		rec, ok := byFlavor[id]
		if !ok {
			rec = &pinRecord{flavor: id}
			byFlavor[id] = rec
			records = append(records, rec)
		}
		if !slices.Contains(rec.options, sel.Option) {
			rec.options = append(rec.options, sel.Option)
		}
		rec.pins = append(rec.pins, pin)
	}

	stack := []walkFrame{{pkg: p}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.pkg.Dependencies) {
			stack = stack[:len(stack)-1]
			continue
		}
		dep := top.pkg.Dependencies[top.next]
		top.next++

		if len(dep.Constraints) > 0 {
			path := make([]string, 0, len(stack)+1)
			var via []node.FlavorTag
			for _, frame := range stack {
				path = append(path, frame.pkg.Name)
				if frame.tag != nil {
					via = append(via, *frame.tag)
				}
			}
			path = append(path, dep.Target)
			if dep.Flavor != nil {
				via = append(via, *dep.Flavor)
			}
			for _, sel := range dep.Constraints {
				record(sel, tracedPin{ConstraintPin: ConstraintPin{Option: sel.Option, Path: path}, via: via})
			}
		}

		target, ok := order.index[dep.Target]
		if !ok {
			continue
		}
		stack = append(stack, walkFrame{pkg: target, tag: dep.Flavor})
	}

	var conflicts []ConstraintConflict
	for _, rec := range records {
		if len(rec.options) < 2 {
			continue
		}
		if conflict, ok := rec.conflict(); ok {
			conflicts = append(conflicts, conflict)
		}
	}
	if len(conflicts) > 0 {
		return &ConstraintConflictError{Package: p.Name, Conflicts: conflicts}
	}
	return nil
}

// conflict returns every pin that disagrees with a compatible pin of the
// same flavor, grouped by option.
func (rec *pinRecord) conflict() (ConstraintConflict, bool) {
	involved := make([]bool, len(rec.pins))
	found := false
	for i := range rec.pins {
		for j := i + 1; j < len(rec.pins); j++ {
			a, b := rec.pins[i], rec.pins[j]
			if a.Option == b.Option || !a.compatible(b) {
				continue
			}
			involved[i], involved[j] = true, true
			found = true
		}
	}
	if !found {
		return ConstraintConflict{}, false
	}

	conflict := ConstraintConflict{Flavor: rec.flavor}
	options := slices.Clone(rec.options)
	pkgname.Sort(options)
	for _, option := range options {
		for i, pin := range rec.pins {
			if involved[i] && pin.Option == option {
				conflict.Pins = append(conflict.Pins, pin.ConstraintPin)
			}
		}
	}
	return conflict, true
}
