package storage

// ModifyType is the smallest unit of mutation of the committed state.
type ModifyType int64

const (
	ModifyTypePut    ModifyType = 1
	ModifyTypeDelete ModifyType = 2
)

type Put struct {
	Key   []byte
	Value []byte
}

type Delete struct {
	Key []byte
}

type Modify struct {
	Type ModifyType
	Data interface{}
}

// Key returns the key the modification applies to.
func (m *Modify) Key() []byte {
	switch data := m.Data.(type) {
	case Put:
		return data.Key
	case Delete:
		return data.Key
	}
	return nil
}
