package retained

import "sync"

// flowMembersPool holds scratch slices for validateFlowGroup, which runs
// once per parent whose auto-flow children moved.
var flowMembersPool = sync.Pool{
	New: func() any {
		s := make([]*element, 0, 16)
		return &s
	},
}

// maxPooledMembers keeps parents with very many children from pinning
// large slices in the pool.
const maxPooledMembers = 256

// flowMembers returns the auto-positioned children of p, hidden ones
// included, in sibling order. Pass the slice to releaseFlowMembers when
// done with it.
func flowMembers(p *element) *[]*element {
	sp := flowMembersPool.Get().(*[]*element)
	for c := p.firstChild; c != nil; c = c.nextSibling {
		if c.isAuto() {
			*sp = append(*sp, c)
		}
	}
	return sp
}

func releaseFlowMembers(sp *[]*element) {
	members := *sp
	if cap(members) > maxPooledMembers {
		return
	}
	clear(members) // no pooled references to deleted elements
	*sp = members[:0]
	flowMembersPool.Put(sp)
}
