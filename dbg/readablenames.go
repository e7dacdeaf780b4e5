package dbg

import (
	"fmt"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
)

// Turns arbitrary comparable keys (simplex handles, edge labels) into random
// readable names, generated lazily and memoized forever. Much easier to
// follow in debug output than bare slot numbers, especially once slots get
// recycled. Names are nondeterministic between runs as a reminder that they
// carry no identity across processes.

var memo map[interface{}]string

func init() {
	memo = make(map[interface{}]string)
	petname.NonDeterministicMode()
}

func Name(key interface{}) string {
	if key == nil {
		return "Ø"
	}
	if r, ok := memo[key]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	memo[key] = r
	return r
}
