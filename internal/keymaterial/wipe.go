package keymaterial

import (
	"nulltrace/internal/domain"
	"nulltrace/internal/util/memzero"
)

// WipeMember zeroes every secret a Member holds. The struct remains usable
// afterward only as a zero value; callers must not keep it as a live
// identity once wiped.
func WipeMember(m *domain.Member) {
	if m == nil {
		return
	}
	memzero.Zero(m.IDPriv[:])
	memzero.Zero(m.XPriv[:])
	memzero.Zero(m.PQPriv)
}

// WipeGroupState zeroes the group key and every pairwise key a GroupState
// holds, and drops its pending buffers.
func WipeGroupState(g *domain.GroupState) {
	if g == nil {
		return
	}
	if g.GroupKey != nil {
		memzero.Zero(g.GroupKey[:])
		g.GroupKey = nil
	}
	for cid, k := range g.Members {
		if k != nil {
			memzero.Zero(k[:])
		}
		delete(g.Members, cid)
	}
	g.Pending = nil
	g.PendingGK = make(map[domain.CID]domain.Frame)
}

// WipeSymmetricKey zeroes a single key in place.
func WipeSymmetricKey(k *domain.SymmetricKey) {
	if k == nil {
		return
	}
	memzero.Zero(k[:])
}
