package grid

// synchronize derives parent checkbox state bottom-up: a month is checked
// iff all its visible days are, a year iff all its visible months are, and
// select-all iff all visible top-level options are. A parent without any
// visible child keeps its current state.
func (c *column) synchronize() {
	if c.isDate() {
		for _, yi := range c.roots {
			if c.nodes[yi].level != levelYear {
				continue
			}
			for _, mi := range c.nodes[yi].children {
				c.derive(mi)
			}
			c.derive(yi)
		}
	}

	all, seen := true, false
	for _, r := range c.roots {
		n := &c.nodes[r]
		if !n.visible() {
			continue
		}
		seen = true
		if !n.checked {
			all = false
			break
		}
	}
	if seen {
		c.selectAll.checked = all
	}
}

func (c *column) derive(i int) {
	all, seen := true, false
	for _, ch := range c.nodes[i].children {
		n := &c.nodes[ch]
		if !n.visible() {
			continue
		}
		seen = true
		if !n.checked {
			all = false
			break
		}
	}
	if seen {
		c.nodes[i].checked = all
	}
}
