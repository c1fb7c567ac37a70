package memreg

import (
	"sort"
	"sync"

	"github.com/patchforge/oreg/lib/registry"
)

// --------------------------------------------------------------------------
// Message Partition (per (version, category) registry partition)
// --------------------------------------------------------------------------

// partitionKey identifies a message partition. Each (version, category)
// pair owns an independent id space.
type partitionKey struct {
	version  uint32
	category uint32
}

// msgPartition is structurally a rowTable with a different id domain:
// message ids start at 1 because 0 is reserved as the insert failure
// sentinel of the flat API.
type msgPartition struct {
	mu     sync.RWMutex
	msgs   map[uint32]registry.MsgData
	nextID uint32
}

func newMsgPartition() *msgPartition {
	return &msgPartition{
		msgs:   make(map[uint32]registry.MsgData),
		nextID: 1,
	}
}

func (p *msgPartition) size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.msgs)
}

// --------------------------------------------------------------------------
// Message Operations (docu see registry/interface.go)
// --------------------------------------------------------------------------

func (r *registryImpl) GetMsg(version, category, id uint32) (registry.MsgData, bool) {
	p, ok := r.partitions.Load(partitionKey{version, category})
	if !ok {
		return nil, r.metrics.getMsg.observe(false)
	}

	p.mu.RLock()
	data, ok := p.msgs[id]
	p.mu.RUnlock()

	return data, r.metrics.getMsg.observe(ok)
}

func (r *registryImpl) InsertMsg(version, category uint32, data registry.MsgData) (uint32, bool) {
	if data == nil {
		r.metrics.insertMsg.observe(false)
		return 0, false
	}

	key := partitionKey{version, category}
	p, loaded := r.partitions.LoadOrCompute(key, newMsgPartition)
	if !loaded {
		Logger.Debugf("created message partition (version %d, category %d)", version, category)
	}

	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.msgs[id] = data
	p.mu.Unlock()

	r.metrics.insertMsg.observe(true)
	return id, true
}

func (r *registryImpl) ReplaceMsg(version, category, id uint32, data registry.MsgData) (registry.MsgData, bool) {
	if data == nil {
		return nil, r.metrics.replaceMsg.observe(false)
	}

	p, ok := r.partitions.Load(partitionKey{version, category})
	if !ok {
		return nil, r.metrics.replaceMsg.observe(false)
	}

	p.mu.Lock()
	old, ok := p.msgs[id]
	if ok {
		p.msgs[id] = data
	}
	p.mu.Unlock()

	return old, r.metrics.replaceMsg.observe(ok)
}

func (r *registryImpl) DeleteMsg(version, category, id uint32) (registry.MsgData, bool) {
	p, ok := r.partitions.Load(partitionKey{version, category})
	if !ok {
		return nil, r.metrics.deleteMsg.observe(false)
	}

	p.mu.Lock()
	old, ok := p.msgs[id]
	if ok {
		delete(p.msgs, id)
	}
	p.mu.Unlock()

	return old, r.metrics.deleteMsg.observe(ok)
}

// --------------------------------------------------------------------------
// Enumeration (read-only, never creates partitions)
// --------------------------------------------------------------------------

func (r *registryImpl) Categories(version uint32) []uint32 {
	var categories []uint32

	r.partitions.Range(func(key partitionKey, _ *msgPartition) bool {
		if key.version == version {
			categories = append(categories, key.category)
		}
		return true
	})

	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	return categories
}

func (r *registryImpl) Messages(version, category uint32) []registry.MsgEntry {
	p, ok := r.partitions.Load(partitionKey{version, category})
	if !ok {
		return nil
	}

	p.mu.RLock()
	entries := make([]registry.MsgEntry, 0, len(p.msgs))
	for id, data := range p.msgs {
		entries = append(entries, registry.MsgEntry{ID: id, Data: data})
	}
	p.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	return entries
}
