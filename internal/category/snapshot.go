package category

// snapshot is a deep copy of the classifier's mutable state: per-category
// member lists, the uncategorized set, and pending display renames. Stack
// entries share nothing with live state or each other.
type snapshot struct {
	members       map[string][]member
	uncategorized map[string]int
	renames       map[string]string
}

func (c *Classifier) capture() *snapshot {
	snap := &snapshot{
		members:       make(map[string][]member, len(c.categories)),
		uncategorized: make(map[string]int, len(c.uncategorized)),
		renames:       make(map[string]string, len(c.renames)),
	}
	for _, cat := range c.categories {
		copied := make([]member, len(cat.members))
		copy(copied, cat.members)
		snap.members[cat.def.Name] = copied
	}
	for tag, count := range c.uncategorized {
		snap.uncategorized[tag] = count
	}
	for tag, display := range c.renames {
		snap.renames[tag] = display
	}
	return snap
}

func (c *Classifier) restore(snap *snapshot) {
	for _, cat := range c.categories {
		saved := snap.members[cat.def.Name]
		cat.members = make([]member, len(saved))
		copy(cat.members, saved)
	}
	c.uncategorized = make(map[string]int, len(snap.uncategorized))
	for tag, count := range snap.uncategorized {
		c.uncategorized[tag] = count
	}
	c.renames = make(map[string]string, len(snap.renames))
	for tag, display := range snap.renames {
		c.renames[tag] = display
	}
}

// beginMutation pushes the current state onto the undo stack and clears the
// redo stack. Call before every mutating action.
func (c *Classifier) beginMutation() {
	c.undo = append(c.undo, c.capture())
	c.redo = nil
}
