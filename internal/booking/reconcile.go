// internal/booking/reconcile.go
package booking

// CourtSpec describes a court the reconciler wants created.
type CourtSpec struct {
	Name       string
	PriceCents int64
	SortOrder  int64
}

// Plan is the minimal set of court operations needed to retarget a
// reservation to a new court count. At most one of Add and Remove is
// non-empty; both empty means only scalar field edits apply.
type Plan struct {
	Add    []CourtSpec
	Remove []int64
}

func (p Plan) IsEmpty() bool {
	return len(p.Add) == 0 && len(p.Remove) == 0
}

// PlanCourtChange computes the court create/remove set for a reservation
// edit requesting newCount courts.
//
// Growing is strictly additive and always legal: new names continue the
// sequence of the last existing court (or fall back to "Court N" when none
// remain) and each new court takes the edited price. Shrinking removes the
// trailing courts in sequence order, but is rejected as a whole if any court
// in the removal set still holds players; the caller must relocate them
// first. Player placement is never touched here.
func PlanCourtChange(v View, newCount int, priceCents int64) (Plan, error) {
	if newCount < 1 {
		return Plan{}, validationf("court count must be at least 1")
	}
	current := len(v.Courts)

	switch {
	case newCount > current:
		lastName := ""
		if current > 0 {
			lastName = v.Courts[current-1].Name
		}
		names := ExtendNames(lastName, current, newCount-current)
		add := make([]CourtSpec, len(names))
		for i, name := range names {
			add[i] = CourtSpec{
				Name:       name,
				PriceCents: priceCents,
				SortOrder:  int64(current + i),
			}
		}
		return Plan{Add: add}, nil

	case newCount < current:
		removal := v.Courts[newCount:]
		for _, c := range removal {
			if len(c.Players) > 0 {
				return Plan{}, validation(ErrNonEmptyCourtRemoval)
			}
		}
		remove := make([]int64, len(removal))
		for i, c := range removal {
			remove[i] = c.ID
		}
		return Plan{Remove: remove}, nil
	}

	return Plan{}, nil
}
