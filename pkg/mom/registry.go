package mom

import (
	"strconv"
	"sync"

	"github.com/pkg/errors"
)

// CodeSet is a bidirectional mapping between one-byte protocol codes and
// their names. Sets are built once from an explicit table and cached, so
// lookups on the receive path never allocate.
type CodeSet struct {
	name   string
	byName map[string]byte
	byCode map[byte]string
}

var (
	codeSetMx sync.Mutex
	codeSets  = make(map[string]*CodeSet)
)

// RegisterCodeSet builds a code set from its name table and caches it.
// Registering the same set name twice returns the cached set.
func RegisterCodeSet(name string, byName map[string]byte) *CodeSet {
	codeSetMx.Lock()
	defer codeSetMx.Unlock()
	if set, ok := codeSets[name]; ok {
		return set
	}
	set := &CodeSet{
		name:   name,
		byName: make(map[string]byte, len(byName)),
		byCode: make(map[byte]string, len(byName)),
	}
	for codeName, code := range byName {
		set.byName[codeName] = code
		set.byCode[code] = codeName
	}
	codeSets[name] = set
	return set
}

// NameOf resolves a code to its name. Unregistered codes resolve to a
// placeholder instead of failing: codes on the wire may originate from a
// newer or older peer version.
func (s *CodeSet) NameOf(code byte) string {
	if name, ok := s.byCode[code]; ok {
		return name
	}
	return "_Undefined(" + strconv.Itoa(int(code)) + ")_"
}

// CodeOf resolves a name to its code. Names come from our own code, so an
// unknown name is a programming error and fails strictly.
func (s *CodeSet) CodeOf(name string) (byte, error) {
	if code, ok := s.byName[name]; ok {
		return code, nil
	}
	return 0, errors.New("unregistered name " + name + " in code set " + s.name)
}
