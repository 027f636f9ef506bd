package dict

// Clone helpers produce deep copies so that a merge can grow the base tree
// without aliasing the overlay's nodes.

func cloneMembers(members []Member) []Member {
	if members == nil {
		return nil
	}
	out := make([]Member, len(members))
	for i, m := range members {
		out[i] = m
		out[i].Members = cloneMembers(m.Members)
	}
	return out
}

func (f *Field) Clone() *Field {
	out := *f
	out.Values = append([]EnumValue(nil), f.Values...)
	return &out
}

func (c *Component) Clone() *Component {
	return &Component{Name: c.Name, Members: cloneMembers(c.Members)}
}

func (m *Message) Clone() *Message {
	out := *m
	out.Members = cloneMembers(m.Members)
	return &out
}
