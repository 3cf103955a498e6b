package store

import "github.com/vk/idfgo/internal/object"

// Entry is what the store holds for one type: a Singleton or a Many.
type Entry interface {
	// All returns the objects of the entry in insertion order.
	All() []*object.Object
	isEntry()
}

// Singleton is the entry of a unique type.
type Singleton struct {
	Object *object.Object
}

// All implements Entry.
func (s Singleton) All() []*object.Object { return []*object.Object{s.Object} }

func (Singleton) isEntry() {}

// Many is the entry of a non-unique type.
type Many struct {
	Objects []*object.Object
}

// All implements Entry.
func (m Many) All() []*object.Object {
	out := make([]*object.Object, len(m.Objects))
	copy(out, m.Objects)
	return out
}

func (Many) isEntry() {}

// slot is the mutable storage behind an Entry. unique is taken from the
// definition when the slot is created and never changes.
type slot struct {
	unique  bool
	objects []*object.Object
}

func (sl *slot) entry() Entry {
	if sl.unique {
		return Singleton{Object: sl.objects[0]}
	}
	return Many{Objects: append([]*object.Object(nil), sl.objects...)}
}

// find returns the position of the object with the given identity. The
// object of a singleton slot is also addressed by the empty identity.
func (sl *slot) find(id string) int {
	for i, obj := range sl.objects {
		if obj.MatchesID(id) || (sl.unique && id == "") {
			return i
		}
	}
	return -1
}
